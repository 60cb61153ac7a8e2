package analysis

import "strings"

// Instructions are phrased so the completion comes back in the loose
// "SENTIMENT: x" / "Happiness=20" shape that pkg/parser expects.
const (
	textInstruction = "Analyze the emotional tone of the following text. " +
		"Return: SENTIMENT, and SCORES for Happiness, Sadness, Anger, Fear, Surprise, Disgust. " +
		"Use format Happiness=20."

	audioInstruction = "Analyze audio tone. " +
		"Return: TRANSCRIPT, SENTIMENT, and SCORES for Happiness, Sadness, Anger, Fear, Surprise, Disgust. " +
		"Use format Happiness=20."
)

func buildTextPrompt(corrections *Corrections, input string) string {
	var sb strings.Builder
	if corrections != nil {
		if preamble := corrections.PromptContext(); preamble != "" {
			sb.WriteString(preamble)
			sb.WriteString("\n")
		}
	}
	sb.WriteString(textInstruction)
	sb.WriteString("\n\nText: ")
	sb.WriteString(input)
	return sb.String()
}

func buildAudioPrompt(corrections *Corrections) string {
	var sb strings.Builder
	if corrections != nil {
		if preamble := corrections.PromptContext(); preamble != "" {
			sb.WriteString(preamble)
			sb.WriteString("\n")
		}
	}
	sb.WriteString(audioInstruction)
	return sb.String()
}
