package server

import (
	"net/http"

	"incidentdesk/internal/handler"
	"incidentdesk/internal/middleware"
)

func NewMux(incidentHandler *handler.IncidentHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/incidents/create-incident", incidentHandler.HandleCreate)
	mux.HandleFunc("/incidents/get-incidents", incidentHandler.HandleList)
	mux.HandleFunc("/healthz", incidentHandler.HandleHealth)

	return middleware.CORS(mux)
}
