// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package models

import "time"

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"selected_item_id": "walking", "confidence": 0.76},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 1}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing information for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError describes a failed request.
//
// Codes:
//   - VALIDATION_ERROR: malformed body or parameters
//   - INVALID_INPUT: rejected by the engine (bad feedback, bad index)
//   - UNKNOWN_SESSION: session never created or expired
//   - NOT_FOUND: unknown catalog item
//   - RATE_LIMIT_EXCEEDED: HTTP or WebSocket limit hit
//   - STORE_UNAVAILABLE: session store circuit open
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used in APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeUnknownSession   = "UNKNOWN_SESSION"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status      string  `json:"status"`
	CatalogSize int     `json:"catalog_size"`
	Vocabulary  int     `json:"vocabulary_size"`
	Store       string  `json:"session_store"`
	Breaker     string  `json:"session_store_breaker,omitempty"`
	WebSockets  int     `json:"websocket_clients"`
	Uptime      float64 `json:"uptime_seconds"`
}
