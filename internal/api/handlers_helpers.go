// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/logging"
	"github.com/tomtom215/castmatch/internal/models"
	"github.com/tomtom215/castmatch/internal/recommend"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/session"
	"github.com/tomtom215/castmatch/internal/validation"
)

const maxBodyBytes = 64 * 1024

// sanitizeLogValue escapes control characters so client input cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes the envelope. GET responses carry an ETag and honor
// If-None-Match.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	if response.Metadata.Timestamp.IsZero() {
		response.Metadata.Timestamp = time.Now()
	}
	response.Metadata.RequestID = logging.RequestIDFromContext(r.Context())

	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet && status == http.StatusOK {
		// Timestamps and request IDs change every response; hash the payload only.
		if payload, err := json.Marshal(response.Data); err == nil {
			etag := generateETag(payload)
			w.Header().Set("ETag", etag)
			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a strong ETag over data.
func generateETag(data []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// respondSuccess wraps data in a success envelope timed from start.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, r, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError writes an error envelope. err, when set, is logged but
// never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}
	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Error:  &models.APIError{Code: code, Message: message},
	})
}

// respondAPIError writes a prepared APIError with status 400.
func respondAPIError(w http.ResponseWriter, r *http.Request, apiErr *models.APIError) {
	respondJSON(w, r, http.StatusBadRequest, &models.APIResponse{Status: "error", Error: apiErr})
}

// classifyError maps domain errors onto HTTP status and API code.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownSession),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrSessionExpired):
		return http.StatusNotFound, models.ErrCodeUnknownSession, "session not found or expired"
	case errors.Is(err, catalog.ErrItemNotFound):
		return http.StatusNotFound, models.ErrCodeNotFound, "item not found"
	case errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, intent.ErrUnknownValue):
		return http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error()
	case errors.Is(err, session.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, models.ErrCodeStoreUnavailable, "session store unavailable"
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal, "internal error"
	}
}

// respondDomainError classifies err and writes it.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)
	respondError(w, r, status, code, message, err)
}

// validateRequest runs the struct's validator tags.
func validateRequest(v interface{}) *models.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// decodeAndValidate reads a JSON body into v and validates it. On failure
// it writes the response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, r, http.StatusRequestEntityTooLarge, models.ErrCodeInvalidInput, "request body too large", nil)
		return false
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidInput, "malformed JSON body", nil)
			return false
		}
	}
	if apiErr := validateRequest(v); apiErr != nil {
		respondAPIError(w, r, apiErr)
		return false
	}
	return true
}

// getIntParam reads an integer query parameter, falling back on absence
// or parse failure.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
