package incident

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const defaultCollection = "incidents"

// FirestoreStore persists incidents in a Firestore collection. The
// document id and both timestamps are assigned server-side.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(ctx context.Context, projectID, collection string) (*FirestoreStore, error) {
	if collection == "" {
		collection = defaultCollection
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreStore{client: client, collection: collection}, nil
}

func (s *FirestoreStore) Save(ctx context.Context, w Write) (Incident, error) {
	if s == nil || s.client == nil {
		return Incident{}, fmt.Errorf("firestore store is nil")
	}
	doc := map[string]any{
		"title":       w.Title,
		"description": w.Description,
		"urgency":     w.Urgency,
		"ai_summary":  w.AISummary,
		"created_at":  firestore.ServerTimestamp,
	}
	if w.RequiresSupervisor {
		doc["requires_supervisor"] = true
		doc["server_timestamp"] = firestore.ServerTimestamp
	}
	ref := s.client.Collection(s.collection).NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return Incident{}, fmt.Errorf("save incident: %w", err)
	}
	// Read back so the returned record carries the resolved server timestamps.
	snap, err := ref.Get(ctx)
	if err != nil {
		return Incident{}, fmt.Errorf("read back incident %s: %w", ref.ID, err)
	}
	return fromSnapshot(snap)
}

func (s *FirestoreStore) FetchAll(ctx context.Context) ([]Incident, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("firestore store is nil")
	}
	iter := s.client.Collection(s.collection).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	out := make([]Incident, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch incidents: %w", err)
		}
		inc, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, nil
}

func (s *FirestoreStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (Incident, error) {
	var inc Incident
	if err := snap.DataTo(&inc); err != nil {
		return Incident{}, fmt.Errorf("decode incident %s: %w", snap.Ref.ID, err)
	}
	inc.ID = snap.Ref.ID
	return inc, nil
}
