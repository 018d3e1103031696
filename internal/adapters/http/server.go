// Package http exposes the carbondash service as a JSON API with an
// embedded browser dashboard.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carbondash/carbondash/internal/logging"
	"github.com/carbondash/carbondash/internal/observability"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Service defines the query surface the HTTP adapter exposes.
type Service interface {
	Areas() []string
	Series(ctx context.Context, areas []string) ([]domain.Series, error)
	Heatmap(ctx context.Context, areas []string) (*domain.Heatmap, error)
	Summary() domain.Summary
	Reload(ctx context.Context) error
	Watch(ctx context.Context) (<-chan string, error)
}

// Server wires a Service into a chi router.
type Server struct {
	svc     Service
	logger  *slog.Logger
	metrics *observability.Metrics
	limit   *rateLimitConfig
}

// Option configures the Server.
type Option func(*Server)

// WithLogger enables request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation and the /metrics endpoint.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithRateLimit bounds the request rate across all clients.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limit = &rateLimitConfig{rps: rps, burst: burst}
	}
}

// NewHandler creates the HTTP handler for the service.
func NewHandler(svc Service, opts ...Option) http.Handler {
	s := &Server{
		svc:    svc,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if s.metrics != nil {
		r.Use(s.instrument)
	}
	if s.limit != nil && s.limit.rps > 0 {
		r.Use(rateLimiter(s.limit.rps, s.limit.burst))
	}

	r.Get("/", s.GetDashboard)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)

	r.Get("/openapi.yaml", s.GetOpenAPISpec)
	r.Get("/swagger", s.GetSwaggerUI)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/areas", s.GetAreas)
		r.Get("/series", s.GetSeries)
		r.Get("/heatmap", s.GetHeatmap)
		r.Get("/summary", s.GetSummary)
		r.Post("/reload", s.PostReload)
	})

	return enableCORS(r)
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

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, err := s.svc.Watch(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "watch failed")
		s.logger.Error("watch failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	writeSSE(w, "ping", "connected")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			writeSSE(w, "", event)
			flusher.Flush()
		}
	}
}
