// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package models

// RecommendRequest is the body of POST /api/v1/recommend and the payload of
// a WebSocket "recommend" message.
type RecommendRequest struct {
	Query     string            `json:"query" validate:"max=500"`
	SessionID string            `json:"session_id,omitempty" validate:"omitempty,max=64"`
	UserID    string            `json:"user_id,omitempty" validate:"omitempty,max=128"`
	Hints     map[string]string `json:"hints,omitempty" validate:"omitempty,max=3,dive,keys,oneof=style purpose motion,endkeys,max=32"`
}

// StartSessionRequest is the body of POST /api/v1/sessions.
type StartSessionRequest struct {
	UserID string `json:"user_id,omitempty" validate:"omitempty,max=128"`
}

// StartSessionResponse returns the generated session ID.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// FeedbackRequest is the body of POST /api/v1/sessions/{id}/feedback.
// Index is a pointer so that a missing field is distinguishable from 0.
type FeedbackRequest struct {
	InteractionIndex *int   `json:"interaction_index" validate:"required,min=0"`
	Feedback         string `json:"feedback" validate:"required,oneof=positive negative neutral"`
}

// ClassifyRequest is the body of POST /api/v1/intent/classify.
type ClassifyRequest struct {
	Query string            `json:"query" validate:"max=500"`
	Hints map[string]string `json:"hints,omitempty" validate:"omitempty,max=3"`
}

// ResolveRequest is the body of POST /api/v1/intent/resolve. The original
// query is classified again before the clarification is applied.
type ResolveRequest struct {
	Query         string `json:"query" validate:"max=500"`
	Clarification string `json:"clarification" validate:"required,max=500"`
}

// SearchRequest is the body of POST /api/v1/search and /search/explain.
type SearchRequest struct {
	Query string `json:"query" validate:"max=500"`
	TopK  int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=100"`
}
