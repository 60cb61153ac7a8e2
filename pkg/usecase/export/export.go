// Package export archives the current history window to BigQuery. Firestore
// only retains the 10 most recent records per user; exporting before they
// rotate out keeps the full stream queryable.
package export

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/adapter"
	"github.com/m-mizutani/emolens/pkg/usecase/history"
)

// Run exports the user's current history window and returns the number of
// exported records.
func Run(ctx context.Context, store *history.Store, bq adapter.BigQuery, uid string) (int, error) {
	records := store.List(ctx, uid)
	if len(records) == 0 {
		return 0, nil
	}

	if err := bq.InsertRecords(ctx, uid, records); err != nil {
		return 0, goerr.Wrap(err, "failed to export records", goerr.V("uid", uid))
	}

	return len(records), nil
}
