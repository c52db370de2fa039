// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/castmatch/internal/catalog"
)

const maxCatalogPage = 500

// CatalogPage is one page of catalog items in insertion order.
type CatalogPage struct {
	Items  []catalog.Item `json:"items"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// ListCatalog handles GET /api/v1/catalog?offset=&limit=.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items := h.deps.Context.Catalog.Items()

	offset := getIntParam(r, "offset", 0)
	limit := getIntParam(r, "limit", 100)
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > maxCatalogPage {
		limit = maxCatalogPage
	}

	end := offset + limit
	if offset > len(items) {
		offset = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	page := CatalogPage{
		Items:  append([]catalog.Item{}, items[offset:end]...),
		Total:  len(items),
		Offset: offset,
		Limit:  limit,
	}
	respondSuccess(w, r, http.StatusOK, page, start)
}

// GetCatalogItem handles GET /api/v1/catalog/{id}.
func (h *Handler) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	item, err := h.deps.Context.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, item, start)
}
