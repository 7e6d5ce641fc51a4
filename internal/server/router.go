package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/server/handler"
)

// NewRouter creates and configures the HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, gateway handler.Submitter, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(recoverJSON(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(requestScopedLogger(logger))
	r.Use(middleware.Timeout(cfg.Gemini.Timeout + 30*time.Second))

	healthHandler := handler.NewHealthHandler(cfg.CORS.AllowedOrigins)
	r.Get(api.HealthPath, healthHandler.Handle)

	reviewHandler := handler.NewReviewHandler(gateway, logger)
	r.Post(api.ReviewPath, reviewHandler.Handle)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	return r
}
