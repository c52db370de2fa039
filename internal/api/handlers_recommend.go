// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/castmatch/internal/logging"
	"github.com/tomtom215/castmatch/internal/models"
	"github.com/tomtom215/castmatch/internal/recommend"
)

const recommendTimeout = 5 * time.Second

func toRecommendRequest(req *models.RecommendRequest) recommend.Request {
	return recommend.Request{
		Query:     req.Query,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Hints:     req.Hints,
	}
}

// Recommend handles POST /api/v1/recommend. When session_id is set the
// selection is recorded and interaction_index is returned for feedback.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(logging.ContextWithSessionID(r.Context(), req.SessionID), recommendTimeout)
	defer cancel()

	rec, err := h.deps.Recommender.Recommend(ctx, toRecommendRequest(&req))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, rec, start)
}

// ExplainRecommendation handles POST /api/v1/recommend/explain: the same
// ranking with nothing recorded.
func (h *Handler) ExplainRecommendation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(logging.ContextWithSessionID(r.Context(), req.SessionID), recommendTimeout)
	defer cancel()

	rec, err := h.deps.Recommender.Explain(ctx, toRecommendRequest(&req))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, rec, start)
}

// recommendFrame serves a WebSocket "recommend" frame with the same
// validation and error mapping as the HTTP endpoint.
func (h *Handler) recommendFrame(ctx context.Context, data json.RawMessage) (interface{}, string, *models.APIError) {
	var req models.RecommendRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, "", &models.APIError{Code: models.ErrCodeInvalidInput, Message: "malformed recommend payload"}
		}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return nil, "", apiErr
	}

	ctx, cancel := context.WithTimeout(logging.ContextWithSessionID(ctx, req.SessionID), recommendTimeout)
	defer cancel()

	rec, err := h.deps.Recommender.Recommend(ctx, toRecommendRequest(&req))
	if err != nil {
		status, code, message := classifyError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("websocket recommend failed")
		}
		return nil, "", &models.APIError{Code: code, Message: message}
	}
	return rec, req.SessionID, nil
}
