package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/repository"
)

// Teach records a relabeling in the live correction context and persists it
// under the user's account so future sessions pick it up.
func Teach(ctx context.Context, repo repository.Repository, uid string, corrections *Corrections, originalText, correctLabel string) error {
	if strings.TrimSpace(originalText) == "" {
		return goerr.New("correction text is required")
	}
	if strings.TrimSpace(correctLabel) == "" {
		return goerr.New("correction label is required")
	}

	correction := corrections.Add(originalText, correctLabel, time.Now())
	if err := repo.PutCorrection(ctx, uid, correction); err != nil {
		return goerr.Wrap(err, "failed to persist correction", goerr.V("uid", uid))
	}

	return nil
}
