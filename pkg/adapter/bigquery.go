package adapter

import (
	"context"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
)

// BigQuery archives analysis records beyond the 10-record history cap.
// Firestore keeps only the recent window; the full stream lands here.
type BigQuery interface {
	InsertRecords(ctx context.Context, uid string, records []*model.AnalysisRecord) error
}

type bigqueryClient struct {
	client  *bigquery.Client
	dataset string
	table   string
}

// NewBigQuery creates a BigQuery archive writing to projectID.dataset.table
func NewBigQuery(ctx context.Context, projectID, dataset, table string) (BigQuery, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client")
	}

	return &bigqueryClient{
		client:  client,
		dataset: dataset,
		table:   table,
	}, nil
}

type recordRow struct {
	UID       string    `bigquery:"uid"`
	RecordID  string    `bigquery:"record_id"`
	Input     string    `bigquery:"input"`
	Sentiment string    `bigquery:"sentiment"`
	Happiness int       `bigquery:"happiness"`
	Sadness   int       `bigquery:"sadness"`
	Anger     int       `bigquery:"anger"`
	Fear      int       `bigquery:"fear"`
	Surprise  int       `bigquery:"surprise"`
	Disgust   int       `bigquery:"disgust"`
	CreatedAt time.Time `bigquery:"created_at"`
}

func (bq *bigqueryClient) InsertRecords(ctx context.Context, uid string, records []*model.AnalysisRecord) error {
	rows := make([]*recordRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &recordRow{
			UID:       uid,
			RecordID:  string(r.ID),
			Input:     r.Input,
			Sentiment: r.Sentiment,
			Happiness: r.Profile.Happiness,
			Sadness:   r.Profile.Sadness,
			Anger:     r.Profile.Anger,
			Fear:      r.Profile.Fear,
			Surprise:  r.Profile.Surprise,
			Disgust:   r.Profile.Disgust,
			CreatedAt: r.CreatedAt,
		})
	}

	inserter := bq.client.Dataset(bq.dataset).Table(bq.table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return goerr.Wrap(err, "failed to insert records",
			goerr.V("uid", uid), goerr.V("count", len(rows)))
	}

	return nil
}
