package incident

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps incidents in memory. Used when no document store or
// database is configured, and by tests.
type MemoryStore struct {
	mu        sync.RWMutex
	incidents []Incident

	// now is swappable so tests can control timestamp assignment.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		incidents: make([]Incident, 0, 16),
		now:       time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, w Write) (Incident, error) {
	if s == nil {
		return Incident{}, fmt.Errorf("store is nil")
	}
	ts := s.now().UTC()
	inc := Incident{
		ID:          newIncidentID(),
		Title:       w.Title,
		Description: w.Description,
		Urgency:     w.Urgency,
		AISummary:   w.AISummary,
		CreatedAt:   ts,
	}
	if w.RequiresSupervisor {
		v := true
		inc.RequiresSupervisor = &v
		t := ts
		inc.ServerTimestamp = &t
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, so ties on created_at keep reverse insertion order.
	s.incidents = append([]Incident{inc}, s.incidents...)
	return inc, nil
}

func (s *MemoryStore) FetchAll(_ context.Context) ([]Incident, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Incident, len(s.incidents))
	copy(out, s.incidents)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func newIncidentID() string {
	var b [10]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("inc-%d", time.Now().UnixNano())
	}
	return "inc-" + hex.EncodeToString(b[:])
}
