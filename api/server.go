/*
server.go - HTTP router and middleware configuration

Wires URLs to handlers with chi. The middleware stack is request logging
(slog via httplog), panic recovery, and CORS for a local frontend.
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		// Query surface
		r.Get("/balance", h.GetBalance)
		r.Get("/summary", h.GetSummary)
		r.Get("/paydays", h.GetPaydays)
		r.Route("/forecast", func(r chi.Router) {
			r.Get("/", h.GetForecast)
			r.Get("/split", h.GetSplitForecast)
			r.Get("/csv", h.GetForecastCSV)
		})

		// Configuration
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.PutSettings)

		// Ledger mutations
		r.Route("/leave", func(r chi.Router) {
			r.Get("/", h.ListLeave)
			r.Post("/", h.CreateLeave)
			r.Delete("/{index}", h.DeleteLeave)
		})
		r.Route("/credits", func(r chi.Router) {
			r.Get("/", h.ListCredits)
			r.Post("/", h.CreateCredit)
			r.Delete("/{index}", h.DeleteCredit)
		})

		// Interchange
		r.Get("/export", h.ExportState)
		r.Post("/import", h.ImportState)
	})

	return r
}
