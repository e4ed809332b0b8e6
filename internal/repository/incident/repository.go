package incident

import (
	"context"
	"errors"
	"time"
)

// Incident is the persisted record shape. RequiresSupervisor and
// ServerTimestamp are pointers so that the fields are entirely absent,
// not false/null, unless the urgency rule set them.
type Incident struct {
	ID                 string     `json:"id" firestore:"-"`
	Title              string     `json:"title" firestore:"title"`
	Description        string     `json:"description" firestore:"description"`
	Urgency            string     `json:"urgency" firestore:"urgency"`
	AISummary          string     `json:"ai_summary" firestore:"ai_summary"`
	CreatedAt          time.Time  `json:"created_at" firestore:"created_at"`
	RequiresSupervisor *bool      `json:"requires_supervisor,omitempty" firestore:"requires_supervisor,omitempty"`
	ServerTimestamp    *time.Time `json:"server_timestamp,omitempty" firestore:"server_timestamp,omitempty"`
}

// Write is the record handed to a Store. The store assigns id and
// created_at, and a server timestamp when RequiresSupervisor is set.
type Write struct {
	Title              string
	Description        string
	Urgency            string
	AISummary          string
	RequiresSupervisor bool
}

// Store defines operations for persisting incidents.
type Store interface {
	// Save appends a new incident and returns the persisted shape,
	// including the store-assigned id and timestamps.
	Save(ctx context.Context, w Write) (Incident, error)
	// FetchAll returns every incident, most recent first.
	FetchAll(ctx context.Context) ([]Incident, error)
}

var ErrNotFound = errors.New("incident not found")
