package handler

import (
	"encoding/json"
	"log"
	"net/http"

	incidentsvc "incidentdesk/internal/service/incident"
)

const (
	msgMissingFields = "title, description and urgency are required"
	msgInternalError = "Internal server error"
)

type IncidentHandler struct {
	svc *incidentsvc.Service
}

func NewIncidentHandler(svc *incidentsvc.Service) *IncidentHandler {
	return &IncidentHandler{svc: svc}
}

// HandleCreate accepts a JSON incident report, validates the required
// fields and runs the create pipeline. Downstream failures come back as
// a generic 500; detail is only logged.
func (h *IncidentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Urgency     string `json:"urgency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if in.Title == "" || in.Description == "" || in.Urgency == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	saved, err := h.svc.Create(r.Context(), in.Title, in.Description, in.Urgency)
	if err != nil {
		log.Printf("create incident: %v", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleList returns every incident, most recent first.
func (h *IncidentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	incidents, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("list incidents: %v", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, incidents)
}

// HandleHealth is a liveness probe.
func (h *IncidentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
