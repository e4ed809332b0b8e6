package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	incidentrepo "incidentdesk/internal/repository/incident"
	incidentsvc "incidentdesk/internal/service/incident"
)

type stubSummarizer struct {
	out   string
	err   error
	calls int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.out, s.err
}

type countingStore struct {
	incidentrepo.Store
	saves int
}

func (c *countingStore) Save(ctx context.Context, w incidentrepo.Write) (incidentrepo.Incident, error) {
	c.saves++
	return c.Store.Save(ctx, w)
}

type failingStore struct{}

func (failingStore) Save(context.Context, incidentrepo.Write) (incidentrepo.Incident, error) {
	return incidentrepo.Incident{}, errors.New("write failed")
}

func (failingStore) FetchAll(context.Context) ([]incidentrepo.Incident, error) {
	return nil, errors.New("read failed")
}

func newTestHandler(store incidentrepo.Store, sum *stubSummarizer) *IncidentHandler {
	return NewIncidentHandler(incidentsvc.New(store, sum))
}

func postCreate(h *IncidentHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/incidents/create-incident", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	return rec
}

func TestCreateMissingFieldsReturns400(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"title":"t"}`,
		`{"title":"t","description":"d"}`,
		`{"description":"d","urgency":"Alta"}`,
		`{"title":"","description":"x","urgency":"Baja"}`,
		`{"title":"t","description":"","urgency":"Baja"}`,
		`{"title":"t","description":"d","urgency":""}`,
		`not json`,
	}
	for _, body := range bodies {
		store := &countingStore{Store: incidentrepo.NewMemoryStore()}
		sum := &stubSummarizer{out: "resumen"}
		rec := postCreate(newTestHandler(store, sum), body)

		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "title, description and urgency are required", resp["message"])
		require.Zero(t, store.saves, "store must not be invoked for body: %s", body)
		require.Zero(t, sum.calls, "summarizer must not be invoked for body: %s", body)
	}
}

func TestCreateHighUrgencyIncident(t *testing.T) {
	store := &countingStore{Store: incidentrepo.NewMemoryStore()}
	sum := &stubSummarizer{out: "Database connectivity failure"}
	rec := postCreate(newTestHandler(store, sum),
		`{"title":"Server down","description":"DB unreachable","urgency":"Alta"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["id"])
	require.Equal(t, "Server down", resp["title"])
	require.Equal(t, "DB unreachable", resp["description"])
	require.Equal(t, "Alta", resp["urgency"])
	require.Equal(t, "Database connectivity failure", resp["ai_summary"])
	require.NotEmpty(t, resp["created_at"])
	require.Equal(t, true, resp["requires_supervisor"])
	require.NotEmpty(t, resp["server_timestamp"])
	require.Equal(t, 1, store.saves)
}

func TestCreateLowUrgencyOmitsSupervisorFields(t *testing.T) {
	store := &countingStore{Store: incidentrepo.NewMemoryStore()}
	rec := postCreate(newTestHandler(store, &stubSummarizer{out: "resumen"}),
		`{"title":"Lights flicker","description":"hallway","urgency":"Baja"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, hasFlag := resp["requires_supervisor"]
	require.False(t, hasFlag, "requires_supervisor must be absent, not false")
	_, hasTS := resp["server_timestamp"]
	require.False(t, hasTS, "server_timestamp must be absent")
}

func TestCreateSummarizerFailureReturns500(t *testing.T) {
	store := &countingStore{Store: incidentrepo.NewMemoryStore()}
	sum := &stubSummarizer{err: errors.New("provider unavailable")}
	rec := postCreate(newTestHandler(store, sum),
		`{"title":"t","description":"d","urgency":"Alta"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Internal server error", resp["message"])
	require.Zero(t, store.saves, "nothing persisted when the summarizer fails")
}

func TestCreateStoreFailureReturns500(t *testing.T) {
	rec := postCreate(newTestHandler(failingStore{}, &stubSummarizer{out: "resumen"}),
		`{"title":"t","description":"d","urgency":"Alta"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, map[string]string{"message": "Internal server error"}, resp,
		"response body carries no incident data")
}

func TestCreateRejectsNonPost(t *testing.T) {
	h := newTestHandler(incidentrepo.NewMemoryStore(), &stubSummarizer{out: "resumen"})
	req := httptest.NewRequest(http.MethodGet, "/incidents/create-incident", nil)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListReturnsIncidentsNewestFirst(t *testing.T) {
	store := incidentrepo.NewMemoryStore()
	h := newTestHandler(store, &stubSummarizer{out: "resumen"})

	for _, body := range []string{
		`{"title":"first","description":"d","urgency":"Baja"}`,
		`{"title":"second","description":"d","urgency":"Alta"}`,
	} {
		require.Equal(t, http.StatusCreated, postCreate(h, body).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/incidents/get-incidents", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "second", resp[0]["title"])
	require.Equal(t, "first", resp[1]["title"])
	require.Equal(t, true, resp[0]["requires_supervisor"])
	_, hasFlag := resp[1]["requires_supervisor"]
	require.False(t, hasFlag)
}

func TestListEmptyReturnsJSONArray(t *testing.T) {
	h := newTestHandler(incidentrepo.NewMemoryStore(), &stubSummarizer{out: "resumen"})
	req := httptest.NewRequest(http.MethodGet, "/incidents/get-incidents", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListStoreFailureReturns500(t *testing.T) {
	h := newTestHandler(failingStore{}, &stubSummarizer{out: "resumen"})
	req := httptest.NewRequest(http.MethodGet, "/incidents/get-incidents", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Internal server error", resp["message"])
}
