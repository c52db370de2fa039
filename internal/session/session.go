// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package session holds the personalization session model and the stores
// that persist it.
//
// A Session is an append-only log of interactions plus the preference
// weights derived from it. Stores always write a whole session at once and
// return copies from Get, so a reader never observes a half-applied update.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/castmatch/internal/recommend/intent"
)

var (
	// ErrSessionNotFound is returned when no session has the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned for a session past its ExpiresAt.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidInput is returned for malformed feedback or an interaction
	// index outside the session log.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable is returned while the store circuit breaker is open.
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Feedback is the user's verdict on an interaction.
type Feedback string

const (
	FeedbackNone     Feedback = "none"
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
	FeedbackNeutral  Feedback = "neutral"
)

// ParseFeedback parses a case-insensitive feedback name.
func ParseFeedback(s string) (Feedback, error) {
	switch f := Feedback(strings.ToLower(strings.TrimSpace(s))); f {
	case FeedbackNone, FeedbackPositive, FeedbackNegative, FeedbackNeutral:
		return f, nil
	default:
		return "", fmt.Errorf("%w: feedback %q", ErrInvalidInput, s)
	}
}

// Interaction is one recorded selection. Only Feedback and
// SatisfactionWeight change after it is appended.
type Interaction struct {
	QueryText          string         `json:"query_text"`
	SelectedItemID     string         `json:"selected_item_id"`
	Timestamp          time.Time      `json:"timestamp"`
	Style              intent.Style   `json:"style"`
	Purpose            intent.Purpose `json:"purpose"`
	Motion             intent.Motion  `json:"motion"`
	Feedback           Feedback       `json:"feedback"`
	SatisfactionWeight float64        `json:"satisfaction_weight"`
}

// Session is the per-user personalization state.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`

	Interactions []Interaction `json:"interactions"`

	// PreferenceWeights is the raw decayed affinity per item, recomputed
	// from Interactions on every write.
	PreferenceWeights map[string]float64 `json:"preference_weights"`
}

// New returns an empty session with a fresh v4 ID. A zero ttl never expires.
func New(userID string, now time.Time, ttl time.Duration) *Session {
	s := &Session{
		ID:                uuid.NewString(),
		UserID:            userID,
		CreatedAt:         now,
		UpdatedAt:         now,
		PreferenceWeights: map[string]float64{},
	}
	s.Touch(now, ttl)
	return s
}

// Touch marks the session as written at now and extends its expiry.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.UpdatedAt = now
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
}

// IsExpiredAt reports whether the session has expired at now.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	out := *s
	out.Interactions = append([]Interaction(nil), s.Interactions...)
	out.PreferenceWeights = make(map[string]float64, len(s.PreferenceWeights))
	for k, v := range s.PreferenceWeights {
		out.PreferenceWeights[k] = v
	}
	return &out
}
