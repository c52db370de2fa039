// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/castmatch/internal/models"
)

const healthProbeTimeout = 2 * time.Second

// breakerReporter is satisfied by session.BreakerStore.
type breakerReporter interface {
	State() string
}

// health probes the store and assembles the report. The status is
// "degraded" when the store cannot answer or its breaker is open.
func (h *Handler) health(ctx context.Context) models.HealthResponse {
	resp := models.HealthResponse{
		Status:      "healthy",
		CatalogSize: h.deps.Context.Catalog.Len(),
		Vocabulary:  h.deps.Context.Vocabulary.Len(),
		Store:       string(h.deps.StoreType),
		WebSockets:  h.deps.Hub.ClientCount(),
		Uptime:      time.Since(h.startTime).Seconds(),
	}
	if resp.Store == "" {
		resp.Store = "memory"
	}

	if br, ok := h.deps.Store.(breakerReporter); ok {
		resp.Breaker = br.State()
		if resp.Breaker == "open" {
			resp.Status = "degraded"
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	if _, err := h.deps.Store.Count(probeCtx); err != nil {
		resp.Status = "degraded"
		h.logger.Warn().Err(err).Msg("Session store health probe failed")
	}
	return resp
}

// Health handles GET /api/v1/health. It always answers 200 and reports
// store trouble as "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, h.health(r.Context()), start)
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "alive"}, start)
}

// HealthReady handles GET /api/v1/health/ready: 503 while the session
// store is unusable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := h.health(r.Context())
	if resp.Status != "healthy" {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeStoreUnavailable, "session store unavailable", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "ready"}, start)
}
