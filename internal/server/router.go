// Package server wires the dashboard and JSON API routes.
package server

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tensorstack/llmdeck/internal/logging"
	"github.com/tensorstack/llmdeck/internal/server/handlers"
	"github.com/tensorstack/llmdeck/internal/server/middleware"
	"github.com/tensorstack/llmdeck/internal/tracking"
	"gorm.io/gorm"
)

// NewRouter builds the application router.
func NewRouter(database *gorm.DB, tracker *tracking.Tracker) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(logging.RequestID)

	// Dashboard
	r.Get("/", handlers.DashboardHandler())
	r.Get("/version", handlers.VersionHandler())

	// Dashboard-facing API. Open like the dashboard itself: the Clear button
	// sends no credentials, so its route cannot sit behind the API key.
	r.Get("/api/providers", handlers.ProvidersHandler())
	r.Get("/api/providers/resolve", handlers.ProviderResolveHandler())
	r.Get("/api/providers/{id}", handlers.ProviderHandler())
	r.Get("/api/status-colors", handlers.StatusColorsHandler())
	r.Get("/api/status-colors/{status}", handlers.StatusColorHandler())
	r.Get("/api/stats", handlers.StatsHandler(tracker))
	r.Get("/api/runs", handlers.RunsHandler(tracker))
	r.Get("/api/runs/history", handlers.RunHistoryHandler(tracker))
	r.Get("/api/runs/{id}", handlers.RunHandler(tracker))
	r.Delete("/api/runs", handlers.ClearRunsHandler(tracker))

	// Ingestion API (API key required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(database))
		r.Post("/api/runs", handlers.CreateRunHandler(tracker))
		r.Post("/api/runs/{id}/status", handlers.UpdateRunStatusHandler(tracker))
		r.Post("/api/providers/reload", handlers.ReloadProvidersHandler())
	})

	return r
}
