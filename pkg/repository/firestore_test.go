package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/repository"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	return repo
}

func testUID() string {
	return "test-" + uuid.New().String()
}

func TestFirestorePutAndListRecords(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()
	uid := testUID()

	now := time.Now()
	records := []*model.AnalysisRecord{
		model.NewAnalysisRecord("first entry", "Neutral", model.EmotionProfile{}, now.Add(-2*time.Hour)),
		model.NewAnalysisRecord("second entry", "Positive", model.EmotionProfile{Happiness: 70}, now.Add(-time.Hour)),
		model.NewAnalysisRecord("third entry", "Negative", model.EmotionProfile{Sadness: 60}, now),
	}

	for _, record := range records {
		gt.NoError(t, repo.PutRecord(ctx, uid, record))
	}

	retrieved, err := repo.ListRecords(ctx, uid, 10)
	gt.NoError(t, err)
	gt.A(t, retrieved).Length(3)

	// Newest-first by createdAt
	gt.Equal(t, retrieved[0].ID, records[2].ID)
	gt.Equal(t, retrieved[1].ID, records[1].ID)
	gt.Equal(t, retrieved[2].ID, records[0].ID)
	gt.Equal(t, retrieved[0].Sentiment, "Negative")
	gt.Equal(t, retrieved[0].Profile.Sadness, 60)
}

func TestFirestoreListRecordsLimit(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()
	uid := testUID()

	now := time.Now()
	for i := 0; i < 5; i++ {
		record := model.NewAnalysisRecord("entry", "Neutral", model.EmotionProfile{}, now.Add(time.Duration(i)*time.Minute))
		gt.NoError(t, repo.PutRecord(ctx, uid, record))
	}

	retrieved, err := repo.ListRecords(ctx, uid, 2)
	gt.NoError(t, err)
	gt.A(t, retrieved).Length(2)
}

func TestFirestoreDeleteRecord(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()
	uid := testUID()

	record := model.NewAnalysisRecord("to be deleted", "Neutral", model.EmotionProfile{}, time.Now())
	gt.NoError(t, repo.PutRecord(ctx, uid, record))
	gt.NoError(t, repo.DeleteRecord(ctx, uid, record.ID))

	retrieved, err := repo.ListRecords(ctx, uid, 10)
	gt.NoError(t, err)
	gt.A(t, retrieved).Length(0)
}

func TestFirestoreProfile(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()
	uid := testUID()

	t.Run("missing profile returns nil", func(t *testing.T) {
		profile, err := repo.GetProfile(ctx, uid)
		gt.NoError(t, err)
		gt.V(t, profile).Nil()
	})

	t.Run("save and get", func(t *testing.T) {
		profile := &model.UserProfile{Name: "Alice", Email: "alice@example.com"}
		profile.SetEmoji("😀")
		gt.NoError(t, repo.SaveProfile(ctx, uid, profile))

		retrieved, err := repo.GetProfile(ctx, uid)
		gt.NoError(t, err)
		gt.V(t, retrieved).NotNil()
		gt.Equal(t, retrieved.Name, "Alice")
		gt.Equal(t, retrieved.AvatarEmoji, "😀")
		gt.Equal(t, retrieved.ImageURI, "")
	})
}

func TestFirestoreCorrections(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()
	uid := testUID()

	now := time.Now()
	inputs := []*model.Correction{
		{OriginalText: "meh", CorrectLabel: "Neutral", CreatedAt: now.Add(-time.Minute)},
		{OriginalText: "this rules", CorrectLabel: "Positive", CreatedAt: now},
	}
	for _, c := range inputs {
		gt.NoError(t, repo.PutCorrection(ctx, uid, c))
	}

	corrections, err := repo.ListCorrections(ctx, uid, 10)
	gt.NoError(t, err)
	gt.A(t, corrections).Length(2)

	// Oldest-first so prompt context keeps teaching order
	gt.Equal(t, corrections[0].OriginalText, "meh")
	gt.Equal(t, corrections[1].OriginalText, "this rules")
}
