package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/isoline/internal/runs"
)

func SetupRoutes(handler *Handler, runHandlers *runs.RunHandlers) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Image renderings set their own content type
		r.Get("/contours.svg", handler.GetContoursSVG)
		r.Get("/contours.png", handler.GetContoursPNG)

		r.Group(func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))

			r.Get("/contours", handler.GetContours)
			r.Get("/cases", handler.GetCases)

			// Stored runs
			runHandlers.RegisterRoutes(r)
		})
	})

	return r
}
