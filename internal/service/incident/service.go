// Package incident implements the ingestion and listing pipeline:
// summarize the description, build the write record, persist, return.
package incident

import (
	"context"
	"strings"

	incidentrepo "incidentdesk/internal/repository/incident"
	"incidentdesk/internal/summarizer"
)

// highUrgency is the one urgency label that flags an incident for
// supervisor review. Compared case-insensitively.
const highUrgency = "alta"

type Service struct {
	store      incidentrepo.Store
	summarizer summarizer.Summarizer
}

func New(store incidentrepo.Store, s summarizer.Summarizer) *Service {
	return &Service{store: store, summarizer: s}
}

// Create runs the whole ingestion pipeline. Inputs are assumed already
// validated by the handler. If the summarizer fails, nothing is
// persisted and the error propagates unchanged.
func (s *Service) Create(ctx context.Context, title, description, urgency string) (incidentrepo.Incident, error) {
	summary, err := s.summarizer.Summarize(ctx, description)
	if err != nil {
		return incidentrepo.Incident{}, err
	}
	w := incidentrepo.Write{
		Title:              title,
		Description:        description,
		Urgency:            urgency,
		AISummary:          summary,
		RequiresSupervisor: strings.EqualFold(urgency, highUrgency),
	}
	return s.store.Save(ctx, w)
}

// List returns every incident, most recent first.
func (s *Service) List(ctx context.Context) ([]incidentrepo.Incident, error) {
	return s.store.FetchAll(ctx)
}
