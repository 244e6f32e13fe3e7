package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/doctoc/internal/config"
	"github.com/dgallion1/doctoc/internal/metrics"
	"github.com/dgallion1/doctoc/internal/pipeline"
	"github.com/dgallion1/doctoc/internal/toc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for doctoc.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	transformer  *toc.Transformer
	metrics      *metrics.Recorder
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. The synchronous endpoints
// share the orchestrator's transformer.
func NewServer(orch *pipeline.Orchestrator, rec *metrics.Recorder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		transformer:  orch.Transformer(),
		metrics:      rec,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/toc", s.handleTransform)
		r.Post("/api/toc/batch", s.handleBatchTransform)

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents/{jobID}", s.handleUploadStatus)

		r.Get("/api/stats/transform", s.handleTransformStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
