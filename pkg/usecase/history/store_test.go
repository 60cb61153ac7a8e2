package history_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/usecase/history"
)

// mockRepository keeps records in memory and reproduces the descending
// createdAt ordering of the Firestore query.
type mockRepository struct {
	records map[string]map[model.RecordID]*model.AnalysisRecord

	listErr   error
	deleteErr error
	deleted   []model.RecordID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		records: make(map[string]map[model.RecordID]*model.AnalysisRecord),
	}
}

func (m *mockRepository) PutRecord(ctx context.Context, uid string, record *model.AnalysisRecord) error {
	if m.records[uid] == nil {
		m.records[uid] = make(map[model.RecordID]*model.AnalysisRecord)
	}
	m.records[uid][record.ID] = record
	return nil
}

func (m *mockRepository) ListRecords(ctx context.Context, uid string, limit int) ([]*model.AnalysisRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	var records []*model.AnalysisRecord
	for _, r := range m.records[uid] {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *mockRepository) DeleteRecord(ctx context.Context, uid string, id model.RecordID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.records[uid], id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepository) GetProfile(ctx context.Context, uid string) (*model.UserProfile, error) {
	return nil, nil
}

func (m *mockRepository) SaveProfile(ctx context.Context, uid string, profile *model.UserProfile) error {
	return nil
}

func (m *mockRepository) PutCorrection(ctx context.Context, uid string, correction *model.Correction) error {
	return nil
}

func (m *mockRepository) ListCorrections(ctx context.Context, uid string, limit int) ([]*model.Correction, error) {
	return nil, nil
}

func newRecord(n int, base time.Time) *model.AnalysisRecord {
	return model.NewAnalysisRecord(
		fmt.Sprintf("input %d", n),
		"Neutral",
		model.EmotionProfile{Happiness: n},
		base.Add(time.Duration(n)*time.Second),
	)
}

func TestStoreBoundedAppend(t *testing.T) {
	base := time.Now()

	// For every append count N, the surviving history is exactly the
	// min(N, 10) most recent records in descending recency order.
	for n := 0; n <= 25; n++ {
		t.Run(fmt.Sprintf("appends=%d", n), func(t *testing.T) {
			repo := newMockRepository()
			store := history.New(repo)
			ctx := context.Background()

			var appended []*model.AnalysisRecord
			for i := 0; i < n; i++ {
				record := newRecord(i, base)
				appended = append(appended, record)
				gt.NoError(t, store.Append(ctx, "user-1", record))
			}

			listed := store.List(ctx, "user-1")

			want := n
			if want > 10 {
				want = 10
			}
			gt.A(t, listed).Length(want)

			for i, record := range listed {
				gt.Equal(t, record.ID, appended[n-1-i].ID)
			}
		})
	}
}

func TestStorePrunesBackingStore(t *testing.T) {
	repo := newMockRepository()
	store := history.New(repo)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 12; i++ {
		gt.NoError(t, store.Append(ctx, "user-1", newRecord(i, base)))
	}

	// The repository itself holds only 10, not just the listed view
	all, err := repo.ListRecords(ctx, "user-1", 0)
	gt.NoError(t, err)
	gt.A(t, all).Length(10)
	gt.A(t, repo.deleted).Length(2)
}

func TestStoreCustomLimit(t *testing.T) {
	repo := newMockRepository()
	store := history.New(repo, history.WithLimit(3))
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		gt.NoError(t, store.Append(ctx, "user-1", newRecord(i, base)))
	}

	gt.A(t, store.List(ctx, "user-1")).Length(3)
}

func TestStoreDeleteFailureIsBestEffort(t *testing.T) {
	repo := newMockRepository()
	store := history.New(repo)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 10; i++ {
		gt.NoError(t, store.Append(ctx, "user-1", newRecord(i, base)))
	}

	repo.deleteErr = goerr.New("permission denied")

	// Append succeeds even though the prune pass cannot delete
	gt.NoError(t, store.Append(ctx, "user-1", newRecord(10, base)))

	all, err := repo.ListRecords(ctx, "user-1", 0)
	gt.NoError(t, err)
	gt.A(t, all).Length(11)
}

func TestStoreListFailureDegradesToEmpty(t *testing.T) {
	repo := newMockRepository()
	store := history.New(repo)
	ctx := context.Background()

	gt.NoError(t, store.Append(ctx, "user-1", newRecord(0, time.Now())))

	repo.listErr = goerr.New("unavailable")
	gt.A(t, store.List(ctx, "user-1")).Length(0)
}

func TestStoreIsolatesUsers(t *testing.T) {
	repo := newMockRepository()
	store := history.New(repo)
	ctx := context.Background()
	base := time.Now()

	gt.NoError(t, store.Append(ctx, "user-1", newRecord(0, base)))
	gt.NoError(t, store.Append(ctx, "user-2", newRecord(1, base)))

	gt.A(t, store.List(ctx, "user-1")).Length(1)
	gt.A(t, store.List(ctx, "user-2")).Length(1)
}
