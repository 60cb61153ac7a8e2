package parser

import "github.com/m-mizutani/emolens/pkg/model"

// Profile assembles the six-channel emotion profile from a completion.
// Each channel is extracted independently and defaults to 0 on its own;
// a malformed channel never affects the others.
func Profile(text string) model.EmotionProfile {
	return model.EmotionProfile{
		Happiness: Score(text, "Happiness"),
		Sadness:   Score(text, "Sadness"),
		Anger:     Score(text, "Anger"),
		Fear:      Score(text, "Fear"),
		Surprise:  Score(text, "Surprise"),
		Disgust:   Score(text, "Disgust"),
	}
}
