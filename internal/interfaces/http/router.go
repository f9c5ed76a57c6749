package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NyayVandan/internal/interfaces/http/handlers"
	"github.com/turtacn/NyayVandan/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware required to construct
// the complete HTTP route tree.
type RouterConfig struct {
	AnalyzeHandler *handlers.AnalyzeHandler
	HealthHandler  *handlers.HealthHandler

	CORS    middleware.CORSConfig
	Logging middleware.LoggingConfig

	Logger  logging.Logger
	Metrics *prometheus.Metrics
}

// NewRouter wires global middleware, probe endpoints, and the API v1 group
// into a single handler suitable for http.Server.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.HTTPMiddleware())
	}

	// Probe endpoints stay outside /api/v1 so orchestrators can reach them
	// without version awareness.
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.AnalyzeHandler != nil {
			api.Post("/analyze", cfg.AnalyzeHandler.Analyze)
			api.Get("/stats", cfg.AnalyzeHandler.Stats)
		}
	})

	return r
}
