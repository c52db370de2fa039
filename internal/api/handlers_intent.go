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

// ClassifyIntent handles POST /api/v1/intent/classify.
func (h *Handler) ClassifyIntent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ClassifyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondSuccess(w, r, http.StatusOK, h.deps.Intent.Classify(req.Query, req.Hints), start)
}

// ResolveIntent handles POST /api/v1/intent/resolve. The query is
// classified first and the clarification applied on top.
func (h *Handler) ResolveIntent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ResolveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	original := h.deps.Intent.Classify(req.Query, nil)
	respondSuccess(w, r, http.StatusOK, h.deps.Intent.Resolve(original, req.Clarification), start)
}
