package model

import (
	"time"

	"github.com/google/uuid"
)

type RecordID string

// NewRecordID generates a new unique RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// EmotionProfile is the six-channel intensity breakdown of a single analysis.
// Channels are conventionally in [0,100] but the model output is not enforced,
// and channels do not sum to anything in particular.
type EmotionProfile struct {
	Happiness int `firestore:"happiness" json:"happiness"`
	Sadness   int `firestore:"sadness" json:"sadness"`
	Anger     int `firestore:"anger" json:"anger"`
	Fear      int `firestore:"fear" json:"fear"`
	Surprise  int `firestore:"surprise" json:"surprise"`
	Disgust   int `firestore:"disgust" json:"disgust"`
}

// AnalysisRecord is one completed sentiment analysis. Immutable once created.
type AnalysisRecord struct {
	ID        RecordID       `firestore:"id" json:"id"`
	Input     string         `firestore:"input" json:"input"`
	Sentiment string         `firestore:"sentiment" json:"sentiment"`
	Profile   EmotionProfile `firestore:"profile" json:"profile"`

	// CreatedAt is the ordering field for history queries
	CreatedAt   time.Time `firestore:"createdAt" json:"created_at"`
	DisplayDate string    `firestore:"displayDate" json:"display_date"`
	DisplayTime string    `firestore:"displayTime" json:"display_time"`
}

// NewAnalysisRecord builds a record for the given analysis result, stamped at now.
func NewAnalysisRecord(input, sentiment string, profile EmotionProfile, now time.Time) *AnalysisRecord {
	return &AnalysisRecord{
		ID:          NewRecordID(),
		Input:       input,
		Sentiment:   sentiment,
		Profile:     profile,
		CreatedAt:   now,
		DisplayDate: now.Format("Jan 02, 2006"),
		DisplayTime: now.Format("03:04 PM"),
	}
}
