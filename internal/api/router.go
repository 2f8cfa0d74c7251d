// Filmoteka - Media Catalog Admin and Curation Service
// Copyright 2026 Filmoteka contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmoteka/filmoteka

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filmoteka/filmoteka/internal/middleware"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
}

// NewRouter creates a router around the given handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// Setup configures all routes and the global middleware stack.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	cfg := router.handler.cfg

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health probes get a permissive rate limit of their own so
	// monitoring cannot be starved by API traffic.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, cfg.Security.RateLimitWindow))
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Catalog and registry endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		if !cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", router.handler.MoviesList)
			r.Post("/", router.handler.MovieCreate)
			r.Post("/duplicates", router.handler.MoviesDuplicates)
			r.Get("/{title}", router.handler.MovieGet)
			r.Put("/{title}", router.handler.MovieUpdate)
			r.Delete("/{title}", router.handler.MovieDelete)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", router.handler.TagsList)
			r.Post("/", router.handler.TagCreate)
			r.Put("/{id}", router.handler.TagRename)
		})

		r.Route("/dimensions", func(r chi.Router) {
			r.Get("/", router.handler.DimensionsList)
			r.Post("/", router.handler.DimensionCreate)
			r.Put("/{id}", router.handler.DimensionRename)
		})

		r.Post("/images", router.handler.ImageUpload)
	})

	// Stored image delivery. Not rate limited beyond CORS; responses
	// are immutable and cacheable.
	r.Get("/images/{filename}", router.handler.ImageServe)

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
