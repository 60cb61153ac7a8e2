package repository

import (
	"context"

	"github.com/m-mizutani/emolens/pkg/model"
)

// Repository defines the interface for per-user document persistence.
// All data is namespaced by the user ID; there is no cross-user access.
type Repository interface {
	// PutRecord saves an analysis record under the user's history, keyed by record ID
	PutRecord(ctx context.Context, uid string, record *model.AnalysisRecord) error

	// ListRecords retrieves history records ordered newest-first.
	// limit <= 0 means no limit.
	ListRecords(ctx context.Context, uid string, limit int) ([]*model.AnalysisRecord, error)

	// DeleteRecord removes a single history record
	DeleteRecord(ctx context.Context, uid string, id model.RecordID) error

	// GetProfile retrieves the user's profile. Returns (nil, nil) when the
	// profile document does not exist yet.
	GetProfile(ctx context.Context, uid string) (*model.UserProfile, error)

	// SaveProfile writes the profile with merge-update semantics
	SaveProfile(ctx context.Context, uid string, profile *model.UserProfile) error

	// PutCorrection appends a teaching correction for the user
	PutCorrection(ctx context.Context, uid string, correction *model.Correction) error

	// ListCorrections retrieves corrections ordered oldest-first.
	// limit <= 0 means no limit.
	ListCorrections(ctx context.Context, uid string, limit int) ([]*model.Correction, error)
}
