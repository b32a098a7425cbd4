package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/DarkMK69/PTsTest/internal/handler"
	"github.com/DarkMK69/PTsTest/internal/metrics"
	"github.com/DarkMK69/PTsTest/internal/middleware"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	EntityHandler  *handler.EntityHandler
	ExportHandler  *handler.ExportHandler
	Logger         *zap.Logger
	Recorder       metrics.Recorder
	MetricsHandler http.Handler
	ExportLimiter  func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, cfg.Recorder))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		r.Route("/entities", func(r chi.Router) {
			if cfg.EntityHandler != nil {
				r.Get("/", cfg.EntityHandler.List)
				r.Post("/", cfg.EntityHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.EntityHandler.Get)
					r.Put("/", cfg.EntityHandler.Update)
					r.Delete("/", cfg.EntityHandler.Delete)
				})
			}

			if cfg.ExportHandler != nil {
				if cfg.ExportLimiter != nil {
					r.With(cfg.ExportLimiter).Post("/export", cfg.ExportHandler.Export)
				} else {
					r.Post("/export", cfg.ExportHandler.Export)
				}
			}
		})
	})

	return r
}
