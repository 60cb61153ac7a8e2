package analysis_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/usecase/analysis"
)

func TestCorrectionsAccumulate(t *testing.T) {
	c := analysis.NewCorrections()
	now := time.Now()

	c.Add("this rules", "Positive", now)
	c.Add("this rules", "Positive", now) // no dedup
	c.Add("meh", "Neutral", now)

	gt.A(t, c.Items()).Length(3)
}

func TestCorrectionsCap(t *testing.T) {
	c := analysis.NewCorrections(analysis.WithCorrectionLimit(3))
	now := time.Now()

	for i := 0; i < 5; i++ {
		c.Add(fmt.Sprintf("text %d", i), "Positive", now)
	}

	items := c.Items()
	gt.A(t, items).Length(3)
	// Oldest dropped first
	gt.Equal(t, items[0].OriginalText, "text 2")
	gt.Equal(t, items[2].OriginalText, "text 4")
}

func TestCorrectionsPromptContext(t *testing.T) {
	t.Run("empty context renders nothing", func(t *testing.T) {
		gt.Equal(t, analysis.NewCorrections().PromptContext(), "")
	})

	t.Run("renders one line per correction", func(t *testing.T) {
		c := analysis.NewCorrections()
		now := time.Now()
		c.Add("meh", "Neutral", now)
		c.Add("this rules", "Positive", now)

		out := c.PromptContext()
		gt.True(t, strings.Contains(out, "\"meh\" should be labeled Neutral."))
		gt.True(t, strings.Contains(out, "\"this rules\" should be labeled Positive."))
	})
}

func TestTeach(t *testing.T) {
	repo := newMockRepository()
	c := analysis.NewCorrections()
	ctx := context.Background()

	t.Run("persists and accumulates", func(t *testing.T) {
		gt.NoError(t, analysis.Teach(ctx, repo, "user-1", c, "meh", "Neutral"))
		gt.A(t, c.Items()).Length(1)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		gt.Error(t, analysis.Teach(ctx, repo, "user-1", c, "  ", "Neutral"))
	})

	t.Run("rejects blank label", func(t *testing.T) {
		gt.Error(t, analysis.Teach(ctx, repo, "user-1", c, "meh", ""))
	})
}

func TestLoadCorrections(t *testing.T) {
	repo := newMockRepository()
	repo.corrections = []*model.Correction{
		{OriginalText: "meh", CorrectLabel: "Neutral", CreatedAt: time.Now()},
	}

	c, err := analysis.LoadCorrections(context.Background(), repo, "user-1")
	gt.NoError(t, err)
	gt.A(t, c.Items()).Length(1)
	gt.Equal(t, c.Items()[0].CorrectLabel, "Neutral")
}

func TestLoadCorrectionsKeepsNewestBeyondCap(t *testing.T) {
	repo := newMockRepository()
	base := time.Now()
	for i := 0; i < 25; i++ {
		repo.corrections = append(repo.corrections, &model.Correction{
			OriginalText: fmt.Sprintf("text %d", i),
			CorrectLabel: "Positive",
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
		})
	}

	c, err := analysis.LoadCorrections(context.Background(), repo, "user-1")
	gt.NoError(t, err)

	items := c.Items()
	gt.A(t, items).Length(analysis.DefaultCorrectionLimit)
	// The oldest five were dropped, not the newest
	gt.Equal(t, items[0].OriginalText, "text 5")
	gt.Equal(t, items[len(items)-1].OriginalText, "text 24")
}
