// Package server is the JSON surface over the extraction core. It stays
// thin: decode, validate, call the pipeline or builder, respond. Everything
// the compliance logic needs lives below it.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	playground "github.com/go-playground/validator/v10"

	"github.com/supercpe/cpe-tracker/internal/broker"
	"github.com/supercpe/cpe-tracker/internal/export"
	"github.com/supercpe/cpe-tracker/internal/pipeline"
	"github.com/supercpe/cpe-tracker/internal/repository"
)

// Service wires the core into HTTP handlers.
type Service struct {
	logger      *slog.Logger
	pipeline    *pipeline.Pipeline
	builder     *broker.Builder
	brokerCtx   broker.Context
	exporter    *export.Service
	submissions repository.SubmissionRepository // nil when running without a database
	validate    *playground.Validate
}

func NewService(
	logger *slog.Logger,
	p *pipeline.Pipeline,
	b *broker.Builder,
	brokerCtx broker.Context,
	exporter *export.Service,
	submissions repository.SubmissionRepository,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:      logger,
		pipeline:    p,
		builder:     b,
		brokerCtx:   brokerCtx,
		exporter:    exporter,
		submissions: submissions,
		validate:    playground.New(),
	}
}

// Router builds the HTTP routing table.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Post("/extract", s.handleExtract)
		r.Get("/submissions", s.handleListSubmissions)
		r.Get("/export.xlsx", s.handleExportXLSX)
	})
	return r
}

// accessLog logs one line per request with status and latency.
func (s *Service) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
