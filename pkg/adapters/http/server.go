// Package http exposes the onboarding session to a presentation layer over
// HTTP. The surface mirrors the engine's command set: snapshot, submit,
// retry, reset, complete. No storage or wire format of the backend leaks
// through this layer.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lingokit/onboard/pkg/domain"
)

// Session is the engine surface the HTTP layer drives.
type Session interface {
	Snapshot() domain.Snapshot
	Start(ctx context.Context) error
	Submit(ctx context.Context, questionID string, resp domain.Response) error
	Retry(ctx context.Context) error
	Complete(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Server routes presentation commands to the session.
type Server struct {
	session Session
	logger  *slog.Logger
}

type handlerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(c *handlerConfig) { c.logger = l }
}

// WithMetrics mounts /metrics for the given gatherer.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) { c.gatherer = g }
}

// NewHandler creates the HTTP handler for one onboarding session.
func NewHandler(session Session, opts ...HandlerOption) http.Handler {
	cfg := &handlerConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{session: session, logger: cfg.logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.handleSnapshot)
		r.Post("/start", s.command(Session.Start))
		r.Post("/answers", s.handleSubmit)
		r.Post("/retry", s.command(Session.Retry))
		r.Post("/complete", s.command(Session.Complete))
		r.Post("/reset", s.command(Session.Reset))
	})

	return enableCORS(r)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeSnapshot(w)
}

// submitRequest is the wire shape for an answer submission.
type submitRequest struct {
	QuestionID string          `json:"question_id"`
	Response   domain.Response `json:"response"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.QuestionID == "" {
		http.Error(w, "question_id is required", http.StatusBadRequest)
		return
	}
	if err := s.session.Submit(r.Context(), req.QuestionID, req.Response); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSnapshot(w)
}

// command adapts a no-payload session operation to a handler.
func (s *Server) command(op func(Session, context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op(s.session, r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeSnapshot(w)
	}
}

func (s *Server) writeSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.session.Snapshot()); err != nil {
		s.logger.Error("failed to encode snapshot", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEngineBusy), errors.Is(err, domain.ErrNotAwaiting):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("session command failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
