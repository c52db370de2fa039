// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/castmatch/internal/models"
)

// Search handles POST /api/v1/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SearchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	topK := req.TopK
	if topK == 0 {
		topK = h.deps.Semantic.DefaultTopK()
	}
	respondSuccess(w, r, http.StatusOK, h.deps.Semantic.Search(req.Query, topK), start)
}

// ExplainSearch handles POST /api/v1/search/explain: per-token vocabulary
// hits and per-item concept matches.
func (h *Handler) ExplainSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SearchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondSuccess(w, r, http.StatusOK, h.deps.Semantic.Explain(req.Query), start)
}
