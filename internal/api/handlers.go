// Package api exposes the run form and the JSON runs API over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/auth"
	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/observability"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service     *domain.Service
	logger      *zap.Logger
	requireAuth bool
	now         func() time.Time
}

// Option configures optional behaviour for the Handler.
type Option func(*Handler)

// WithLogger overrides the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithAuth makes the JSON API demand bearer claims with runs scopes. It must
// be paired with auth.Middleware.
func WithAuth(enabled bool) Option {
	return func(h *Handler) {
		h.requireAuth = enabled
	}
}

// WithClock overrides the clock used for the form's default date.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.index)
	mux.HandleFunc("/v1/runs", h.runs)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) runs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.recordRun(w, r)
	case http.MethodGet:
		h.listRuns(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) recordRun(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.ScopeRunsWrite) {
		return
	}

	var req RecordRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	sub, err := req.Submission()
	if err != nil {
		observability.RecordSubmission("invalid")
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	page, err := h.service.Evaluate(r.Context(), &sub)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "connection_failed", err.Error())
		return
	}
	if page.InsertErr != nil {
		writeError(w, http.StatusBadGateway, "insert_failed", page.InsertErr.Error())
		return
	}

	resp := RecordRunResponse{
		Run:          toRunView(*page.Entry),
		HistoryCount: page.History.Len(),
	}
	if page.LoadErr != nil {
		resp.HistoryError = page.LoadErr.Error()
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.ScopeRunsRead, auth.ScopeRunsWrite) {
		return
	}

	page, err := h.service.Evaluate(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "connection_failed", err.Error())
		return
	}
	if page.LoadErr != nil {
		writeError(w, http.StatusBadGateway, "load_failed", page.LoadErr.Error())
		return
	}

	records := page.History.Records
	if records == nil {
		records = []domain.Record{}
	}
	columns := page.History.Columns
	if columns == nil {
		columns = []string{}
	}
	writeJSON(w, http.StatusOK, ListRunsResponse{Columns: columns, Records: records})
}

// authorize accepts the request when auth is disabled or the claims carry any
// of the given scopes.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, scopes ...string) bool {
	if !h.requireAuth {
		return true
	}
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	for _, scope := range scopes {
		if claims.HasScope(scope) {
			return true
		}
	}
	writeError(w, http.StatusForbidden, "forbidden", "scope "+scopes[0]+" required")
	return false
}

// RecordRunRequest is the payload for POST /v1/runs.
type RecordRunRequest struct {
	Date       string  `json:"date"`
	DistanceKm float64 `json:"distance_km"`
	Hours      int     `json:"hours"`
	Minutes    int     `json:"minutes"`
	Seconds    int     `json:"seconds"`
	WeightKg   float64 `json:"weight_kg"`
}

// Validate ensures request correctness.
func (r RecordRunRequest) Validate() error {
	_, err := r.Submission()
	return err
}

// Submission converts the request into a validated domain submission.
func (r RecordRunRequest) Submission() (domain.Submission, error) {
	if strings.TrimSpace(r.Date) == "" {
		return domain.Submission{}, errors.New("date is required")
	}
	date, err := time.Parse(domain.DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return domain.Submission{}, errors.New("date must be YYYY-MM-DD")
	}
	sub := domain.Submission{
		Date:       date,
		DistanceKm: r.DistanceKm,
		Hours:      r.Hours,
		Minutes:    r.Minutes,
		Seconds:    r.Seconds,
		WeightKg:   r.WeightKg,
	}
	if err := sub.Validate(); err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

// RunView is the JSON shape of a recorded run.
type RunView struct {
	Date       string  `json:"date"`
	DistanceKm float64 `json:"distance_km"`
	Duration   string  `json:"duration"`
	WeightKg   float64 `json:"weight_kg"`
	Pace       string  `json:"pace"`
}

// RecordRunResponse describes the response body for POST /v1/runs.
type RecordRunResponse struct {
	Run          RunView `json:"run"`
	HistoryCount int     `json:"history_count"`
	HistoryError string  `json:"history_error,omitempty"`
}

// ListRunsResponse packages the history for GET /v1/runs.
type ListRunsResponse struct {
	Columns []string        `json:"columns"`
	Records []domain.Record `json:"records"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toRunView(entry domain.WorkoutEntry) RunView {
	return RunView{
		Date:       entry.Date.Format(domain.DateLayout),
		DistanceKm: entry.DistanceKm,
		Duration:   domain.FormatDuration(entry.Duration),
		WeightKg:   entry.WeightKg,
		Pace:       entry.Pace,
	}
}
