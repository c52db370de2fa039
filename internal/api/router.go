// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/middleware"
	"github.com/tomtom215/castmatch/internal/models"
)

// slowRequestThreshold promotes access log lines to WARN.
const slowRequestThreshold = time.Second

// Router binds handlers to routes.
type Router struct {
	handler *Handler
	logger  zerolog.Logger
}

// NewRouter creates a router over h.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(h *Handler, logger zerolog.Logger) *Router {
	return &Router{
		handler: h,
		logger:  logger.With().Str("component", "router").Logger(),
	}
}

// SetupChi configures every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler
	mw := h.middleware

	// Global middleware, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // global so OPTIONS preflight is answered everywhere
	r.Use(middleware.AccessLog(router.logger, slowRequestThreshold))
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeInvalidInput, "method not allowed", nil)
	})

	// Health is not rate limited so probes never see 429.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// The upgrade needs the raw connection, so /ws sits outside the
		// compressing group.
		r.With(mw.RateLimitWebSocket()).Get("/ws", h.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(APISecurityHeaders())
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Post("/recommend", h.Recommend)
			r.Post("/recommend/explain", h.ExplainRecommendation)

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", h.StartSession)
				r.Get("/{id}/summary", h.SessionSummary)
				r.Post("/{id}/feedback", h.SessionFeedback)
				r.Delete("/{id}", h.EndSession)
			})

			r.Post("/intent/classify", h.ClassifyIntent)
			r.Post("/intent/resolve", h.ResolveIntent)

			r.Post("/search", h.Search)
			r.Post("/search/explain", h.ExplainSearch)

			r.Get("/catalog", h.ListCatalog)
			r.Get("/catalog/{id}", h.GetCatalogItem)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
