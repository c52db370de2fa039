// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/castmatch/internal/logging"
	"github.com/tomtom215/castmatch/internal/models"
	"github.com/tomtom215/castmatch/internal/session"
	ws "github.com/tomtom215/castmatch/internal/websocket"
)

// StartSession handles POST /api/v1/sessions.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.deps.Personal.StartSession(r.Context(), req.UserID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusCreated, models.StartSessionResponse{SessionID: id}, start)
}

// SessionSummary handles GET /api/v1/sessions/{id}/summary.
func (h *Handler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	summary, err := h.deps.Personal.Summary(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, summary, start)
}

// SessionFeedback handles POST /api/v1/sessions/{id}/feedback. WebSocket
// clients bound to the session receive the updated summary.
func (h *Handler) SessionFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	ctx := logging.ContextWithSessionID(r.Context(), id)

	var req models.FeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	fb, err := session.ParseFeedback(req.Feedback)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	if err := h.deps.Personal.ApplyFeedback(ctx, id, *req.InteractionIndex, fb); err != nil {
		respondDomainError(w, r, err)
		return
	}

	summary, err := h.deps.Personal.Summary(ctx, id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	h.deps.Hub.PublishSession(id, ws.MessageTypeSessionUpdated, summary)
	respondSuccess(w, r, http.StatusOK, summary, start)
}

// EndSession handles DELETE /api/v1/sessions/{id}. Ending an unknown
// session succeeds.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.deps.Personal.EndSession(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
