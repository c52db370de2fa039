// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"net/http"

	ws "github.com/tomtom215/castmatch/internal/websocket"
)

// checkWebSocketOrigin accepts origins on the CORS list. A missing Origin
// is accepted only under the "*" policy, since browsers always send one.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		if h.middleware.allowsOrigin("*") {
			return true
		}
		h.logger.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	if h.middleware.allowsOrigin(origin) {
		return true
	}
	h.logger.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// WebSocket handles GET /api/v1/ws. The optional session_id query
// parameter binds the connection to a session up front; otherwise the
// first recommend frame carrying a session_id binds it.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.deps.Hub, conn, h.recommendFrame, h.newLimiter(), h.logger)
	if sid := r.URL.Query().Get("session_id"); sid != "" && len(sid) <= 64 {
		client.Bind(sid)
	}
	h.deps.Hub.Register(client)
	client.Start()
}
