// Package history maintains the bounded per-user sequence of analysis
// records: the newest 10 survive, anything older is pruned from the backing
// store after each append.
package history

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/repository"
	"github.com/m-mizutani/emolens/pkg/utils/logging"
)

// DefaultLimit is the number of records retained per user
const DefaultLimit = 10

// Store is the bounded history store
type Store struct {
	repo  repository.Repository
	limit int
}

// Option is a functional option for Store
type Option func(*Store)

// WithLimit overrides the retention cap
func WithLimit(limit int) Option {
	return func(s *Store) {
		s.limit = limit
	}
}

// New creates a bounded history store over the given repository
func New(repo repository.Repository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		limit: DefaultLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Append writes the record and prunes everything beyond the retention cap.
// The prune pass is fire-and-forget: individual delete failures are logged
// and never roll back the append.
func (s *Store) Append(ctx context.Context, uid string, record *model.AnalysisRecord) error {
	if err := s.repo.PutRecord(ctx, uid, record); err != nil {
		return goerr.Wrap(err, "failed to append record", goerr.V("record_id", record.ID))
	}

	records, err := s.repo.ListRecords(ctx, uid, 0)
	if err != nil {
		logging.From(ctx).Warn("failed to re-read history for pruning",
			"uid", uid, "error", err)
		return nil
	}

	for _, old := range s.overflow(records) {
		if err := s.repo.DeleteRecord(ctx, uid, old.ID); err != nil {
			logging.From(ctx).Warn("failed to prune history record",
				"uid", uid, "record_id", old.ID, "error", err)
		}
	}

	return nil
}

// List returns up to the retention cap of records, newest-first. Retrieval
// failures degrade to an empty history rather than an error.
func (s *Store) List(ctx context.Context, uid string) []*model.AnalysisRecord {
	records, err := s.repo.ListRecords(ctx, uid, s.limit)
	if err != nil {
		logging.From(ctx).Warn("failed to list history", "uid", uid, "error", err)
		return nil
	}
	return records
}

func (s *Store) overflow(records []*model.AnalysisRecord) []*model.AnalysisRecord {
	if len(records) <= s.limit {
		return nil
	}
	return records[s.limit:]
}
