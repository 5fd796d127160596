// Package http exposes the engine over a chi router: the gateway
// callback, menu authoring endpoints, analytics, health and metrics.
// The carrier-side wire contract (sessionId, phoneNumber, text) is an
// adapter concern; the engine underneath only sees the decision call.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sautiflow/sauti"
	"github.com/sautiflow/sauti/internal/logging"
	"github.com/sautiflow/sauti/internal/validator"
	"github.com/sautiflow/sauti/pkg/analytics"
	"github.com/sautiflow/sauti/pkg/domain"
)

// Server holds the handler dependencies.
type Server struct {
	engine *sauti.Engine
	logger *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler builds the HTTP handler for the engine.
func NewHandler(engine *sauti.Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/ussd", s.ussd)
	r.Route("/applications/{id}", func(r chi.Router) {
		r.Get("/menu", s.getMenu)
		r.Put("/menu", s.putMenu)
		r.Get("/menu/issues", s.menuIssues)
		r.Get("/analytics", s.analytics)
	})
	return r
}

// ussdRequest is the typical gateway callback shape.
type ussdRequest struct {
	SessionID     string `json:"sessionId"`
	ApplicationID string `json:"applicationId"`
	PhoneNumber   string `json:"phoneNumber"`
	Text          string `json:"text"`
}

func (s *Server) ussd(w http.ResponseWriter, r *http.Request) {
	var req ussdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" || req.ApplicationID == "" {
		http.Error(w, "sessionId and applicationId are required", http.StatusBadRequest)
		return
	}

	reply, err := s.engine.Handle(r.Context(), req.ApplicationID, req.SessionID, req.PhoneNumber, req.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, reply)
}

func (s *Server) getMenu(w http.ResponseWriter, r *http.Request) {
	graph, err := s.engine.Graphs().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, graph)
}

// putMenuResponse reports the save together with the validator's
// advisory findings. Saving never fails on structural issues.
type putMenuResponse struct {
	Saved  bool              `json:"saved"`
	Issues []validator.Issue `json:"issues"`
}

func (s *Server) putMenu(w http.ResponseWriter, r *http.Request) {
	var graph domain.MenuGraph
	if err := json.NewDecoder(r.Body).Decode(&graph); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	graph.ApplicationID = chi.URLParam(r, "id")

	if err := s.engine.Graphs().Save(r.Context(), &graph); err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, putMenuResponse{
		Saved:  true,
		Issues: validator.Validate(&graph),
	})
}

func (s *Server) menuIssues(w http.ResponseWriter, r *http.Request) {
	graph, err := s.engine.Graphs().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, validator.Validate(graph))
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r.URL.Query().Get("since"), r.URL.Query().Get("until"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := s.engine.Report(r.Context(), chi.URLParam(r, "id"), win)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, report)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func parseWindow(since, until string) (analytics.Window, error) {
	var win analytics.Window
	if since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return win, fmt.Errorf("invalid since: %v", err)
		}
		win.Since = t
	}
	if until != "" {
		t, err := time.Parse(time.RFC3339, until)
		if err != nil {
			return win, fmt.Errorf("invalid until: %v", err)
		}
		win.Until = t
	}
	return win, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// fail maps engine errors to status codes. Missing graphs and sessions
// are hard failures for the request; there is no retry-and-succeed path
// at this level.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGraphNotFound), errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEmptyGraph):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.logger.Error("request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
