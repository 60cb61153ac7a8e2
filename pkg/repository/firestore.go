package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection       = "users"
	historyCollection     = "history"
	correctionsCollection = "corrections"
)

// Firestore implements Repository using Cloud Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) userDoc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

func (r *Firestore) PutRecord(ctx context.Context, uid string, record *model.AnalysisRecord) error {
	doc := r.userDoc(uid).Collection(historyCollection).Doc(string(record.ID))
	if _, err := doc.Set(ctx, record); err != nil {
		return goerr.Wrap(err, "failed to put record",
			goerr.V("uid", uid), goerr.V("record_id", record.ID))
	}
	return nil
}

func (r *Firestore) ListRecords(ctx context.Context, uid string, limit int) ([]*model.AnalysisRecord, error) {
	q := r.userDoc(uid).Collection(historyCollection).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var records []*model.AnalysisRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate records", goerr.V("uid", uid))
		}

		var record model.AnalysisRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode record", goerr.V("doc", doc.Ref.ID))
		}
		records = append(records, &record)
	}

	return records, nil
}

func (r *Firestore) DeleteRecord(ctx context.Context, uid string, id model.RecordID) error {
	doc := r.userDoc(uid).Collection(historyCollection).Doc(string(id))
	if _, err := doc.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete record",
			goerr.V("uid", uid), goerr.V("record_id", id))
	}
	return nil
}

func (r *Firestore) GetProfile(ctx context.Context, uid string) (*model.UserProfile, error) {
	snap, err := r.userDoc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("uid", uid))
	}

	var profile model.UserProfile
	if err := snap.DataTo(&profile); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("uid", uid))
	}
	return &profile, nil
}

func (r *Firestore) SaveProfile(ctx context.Context, uid string, profile *model.UserProfile) error {
	// MergeAll requires map data, so expand the struct by hand. Field names
	// must match the firestore tags on model.UserProfile.
	data := map[string]any{
		"name":              profile.Name,
		"email":             profile.Email,
		"imageUriString":    profile.ImageURI,
		"avatarEmoji":       profile.AvatarEmoji,
		"isGeneratedAvatar": profile.GeneratedAvatar,
	}

	if _, err := r.userDoc(uid).Set(ctx, data, firestore.MergeAll); err != nil {
		return goerr.Wrap(err, "failed to save profile", goerr.V("uid", uid))
	}
	return nil
}

func (r *Firestore) PutCorrection(ctx context.Context, uid string, correction *model.Correction) error {
	col := r.userDoc(uid).Collection(correctionsCollection)
	if _, _, err := col.Add(ctx, correction); err != nil {
		return goerr.Wrap(err, "failed to put correction", goerr.V("uid", uid))
	}
	return nil
}

func (r *Firestore) ListCorrections(ctx context.Context, uid string, limit int) ([]*model.Correction, error) {
	q := r.userDoc(uid).Collection(correctionsCollection).
		OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var corrections []*model.Correction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate corrections", goerr.V("uid", uid))
		}

		var c model.Correction
		if err := doc.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode correction", goerr.V("doc", doc.Ref.ID))
		}
		corrections = append(corrections, &c)
	}

	return corrections, nil
}
