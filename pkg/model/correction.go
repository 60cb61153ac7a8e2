package model

import "time"

// Correction is a user-supplied relabeling that biases subsequent analyses.
type Correction struct {
	OriginalText string    `firestore:"originalText" json:"original_text" yaml:"text"`
	CorrectLabel string    `firestore:"correctLabel" json:"correct_label" yaml:"label"`
	CreatedAt    time.Time `firestore:"createdAt" json:"created_at" yaml:"-"`
}
