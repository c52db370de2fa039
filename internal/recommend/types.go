// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/recommend/personalize"
	"github.com/tomtom215/castmatch/internal/recommend/semantic"
)

// ErrUnknownSession is returned when a request names a session that does
// not exist or has expired. It wraps the store's own error.
var ErrUnknownSession = errors.New("unknown session")

// Component names used as ComponentScores keys.
const (
	ComponentIntent          = "intent"
	ComponentSemantic        = "semantic"
	ComponentPersonalization = "personalization"
)

// SessionState describes how much history backs a recommendation.
type SessionState string

const (
	StateCold         SessionState = "cold"
	StateWarming      SessionState = "warming"
	StatePersonalized SessionState = "personalized"
)

// Request is one recommendation query.
type Request struct {
	Query string

	// SessionID is optional. When set, the session must exist and the
	// selection is recorded into it.
	SessionID string

	// UserID is the caller's own label. It only appears in logs.
	UserID string

	// Hints optionally pre-set intent dimensions ("style", "purpose",
	// "motion") that the query leaves open.
	Hints map[string]string
}

// RankedItem is one catalog item with its combined score.
type RankedItem struct {
	ItemID      string  `json:"item_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// Recommendation is the explained result of one query.
type Recommendation struct {
	SelectedItemID      string  `json:"selected_item_id"`
	SelectedDisplayName string  `json:"selected_display_name"`
	Confidence          float64 `json:"confidence"`
	Reasoning           string  `json:"reasoning"`

	// RankedAlternatives lists every item, best first, winner included.
	RankedAlternatives []RankedItem `json:"ranked_alternatives"`

	// ComponentScores maps component name to per-item score in [0,1].
	ComponentScores map[string]map[string]float64 `json:"component_scores"`

	Intent       intent.Intent `json:"intent"`
	SessionID    string        `json:"session_id,omitempty"`
	SessionState SessionState  `json:"session_state"`
	Weights      Weights       `json:"weights"`

	// InteractionIndex is the recorded interaction, for later feedback.
	// Nil when nothing was recorded.
	InteractionIndex *int `json:"interaction_index,omitempty"`
}

// IntentEngine classifies queries.
type IntentEngine interface {
	Classify(query string, hints map[string]string) intent.Intent
}

// SemanticEngine scores catalog items by concept similarity.
type SemanticEngine interface {
	Search(query string, topK int) []semantic.SearchResult
	Similarities(query string) map[string]float64
}

// PersonalizationEngine scores items from session history and records
// selections.
type PersonalizationEngine interface {
	InteractionCount(ctx context.Context, sessionID string) (int, error)
	Score(ctx context.Context, sessionID, query string, candidates []string) (map[string]float64, error)
	RecordInteraction(ctx context.Context, sessionID string, in personalize.InteractionInput) (int, error)
}
