package store

import (
	"context"
	"time"
)

// Collections holding persisted inference results. Rows are append-only,
// keyed by owner identity plus timestamp; the core never updates or deletes
// them.
const (
	CropCollection    = "crop_recommendations"
	DiseaseCollection = "disease_predictions"
)

const historyLimit = "20"

// Predictions persists inference results and serves per-user history.
type Predictions struct {
	client *Client
}

func NewPredictions(client *Client) *Predictions {
	return &Predictions{client: client}
}

// Save appends one result record to the given collection, stamping owner and
// creation time. An ErrUnavailable here means "computed but not recorded";
// the caller surfaces saved_to_database=false instead of failing.
func (p *Predictions) Save(ctx context.Context, collection, userID string, record Record) error {
	record["user_id"] = userID
	record["created_at"] = time.Now().UTC().Format(time.RFC3339)
	_, err := p.client.Insert(ctx, collection, record)
	return err
}

// History returns the caller's most recent 20 records, newest first.
func (p *Predictions) History(ctx context.Context, collection, userID string) ([]Record, error) {
	return p.client.Fetch(ctx, collection, map[string]string{
		"user_id": "eq." + userID,
		"order":   "created_at.desc",
		"limit":   historyLimit,
	})
}
