// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package personalize tracks per-session selections and turns them into an
// affinity score per catalog item.
//
// Every write is a read-modify-write of the whole session under a
// per-session lock, followed by a single Store.Put. Preference weights are
// recomputed from the full interaction log on each write, so they always
// equal the fold of the log.
package personalize

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/metrics"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/session"
)

const lockStripes = 64

// InteractionInput is what the caller knows about one selection.
type InteractionInput struct {
	Query          string
	SelectedItemID string
	Intent         intent.Intent
}

// Summary describes a session for display.
type Summary struct {
	SessionID         string             `json:"session_id"`
	UserID            string             `json:"user_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Duration          time.Duration      `json:"duration"`
	InteractionCount  int                `json:"interaction_count"`
	ItemUsage         map[string]int     `json:"item_usage"`
	PreferenceWeights map[string]float64 `json:"preference_weights"`
	Theme             string             `json:"theme"`
}

// ItemValidator reports whether an item ID exists. *catalog.Catalog
// satisfies it.
type ItemValidator interface {
	Contains(id string) bool
}

// Engine implements session personalization over a session.Store.
type Engine struct {
	cfg    Config
	store  session.Store
	items  ItemValidator
	locks  [lockStripes]sync.Mutex
	now    func() time.Time
	logger zerolog.Logger
}

// NewEngine returns an engine backed by store. items may be nil, in which
// case selected item IDs are not checked.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(store session.Store, items ItemValidator, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("personalization engine requires a session store")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid personalize config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		store:  store,
		items:  items,
		now:    time.Now,
		logger: logger.With().Str("component", "personalize").Logger(),
	}, nil
}

func (e *Engine) lock(id string) func() {
	mu := &e.locks[xxhash.Sum64String(id)%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// StartSession creates and stores an empty session.
func (e *Engine) StartSession(ctx context.Context, userID string) (string, error) {
	s := session.New(userID, e.now(), e.cfg.SessionTTL)
	if err := e.store.Put(ctx, s); err != nil {
		return "", fmt.Errorf("store new session: %w", err)
	}
	metrics.RecordSessionStarted()
	e.logger.Debug().Str("session_id", s.ID).Str("user_id", userID).Msg("Session started")
	return s.ID, nil
}

// RecordInteraction appends a selection and returns its index.
func (e *Engine) RecordInteraction(ctx context.Context, sessionID string, in InteractionInput) (int, error) {
	if in.SelectedItemID == "" {
		return 0, fmt.Errorf("%w: empty selected item", session.ErrInvalidInput)
	}
	if e.items != nil && !e.items.Contains(in.SelectedItemID) {
		return 0, fmt.Errorf("%w: unknown item %q", session.ErrInvalidInput, in.SelectedItemID)
	}

	unlock := e.lock(sessionID)
	defer unlock()

	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("record interaction: %w", err)
	}

	now := e.now()
	s.Interactions = append(s.Interactions, session.Interaction{
		QueryText:          in.Query,
		SelectedItemID:     in.SelectedItemID,
		Timestamp:          now,
		Style:              in.Intent.Style,
		Purpose:            in.Intent.Purpose,
		Motion:             in.Intent.Motion,
		Feedback:           session.FeedbackNone,
		SatisfactionWeight: 1.0,
	})
	if err := e.commit(ctx, s, now); err != nil {
		return 0, err
	}
	return len(s.Interactions) - 1, nil
}

// ApplyFeedback rescales the satisfaction weight of one interaction.
// FeedbackNone is rejected.
func (e *Engine) ApplyFeedback(ctx context.Context, sessionID string, index int, fb session.Feedback) error {
	var factor float64
	switch fb {
	case session.FeedbackPositive:
		factor = e.cfg.BoostFactor
	case session.FeedbackNegative:
		factor = e.cfg.DampingFactor
	case session.FeedbackNeutral:
	default:
		return fmt.Errorf("%w: feedback %q cannot be applied", session.ErrInvalidInput, fb)
	}

	unlock := e.lock(sessionID)
	defer unlock()

	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("apply feedback: %w", err)
	}
	if index < 0 || index >= len(s.Interactions) {
		return fmt.Errorf("%w: interaction index %d out of range [0,%d)", session.ErrInvalidInput, index, len(s.Interactions))
	}

	in := &s.Interactions[index]
	if fb == session.FeedbackNeutral {
		in.SatisfactionWeight = 1.0
	} else {
		in.SatisfactionWeight *= factor
	}
	in.Feedback = fb

	if err := e.commit(ctx, s, e.now()); err != nil {
		return err
	}
	metrics.RecordFeedback(string(fb))
	e.logger.Debug().
		Str("session_id", sessionID).
		Int("index", index).
		Str("feedback", string(fb)).
		Float64("satisfaction", in.SatisfactionWeight).
		Msg("Feedback applied")
	return nil
}

// commit recomputes derived state and writes the whole session.
func (e *Engine) commit(ctx context.Context, s *session.Session, now time.Time) error {
	s.PreferenceWeights = rawAffinity(s.Interactions, e.cfg.HalfLife)
	s.Touch(now, e.cfg.SessionTTL)
	if err := e.store.Put(ctx, s); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Score returns a [0,1] affinity for each candidate. Scores do not depend
// on query. A session without interactions scores 0 everywhere.
func (e *Engine) Score(ctx context.Context, sessionID, query string, candidates []string) (map[string]float64, error) {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	n := len(s.Interactions)
	if n == 0 {
		out := make(map[string]float64, len(candidates))
		for _, id := range candidates {
			out[id] = 0
		}
		return out, nil
	}
	return normalize(s.PreferenceWeights, candidates, referenceMass(n, e.cfg.HalfLife)), nil
}

// InteractionCount returns the length of the session log.
func (e *Engine) InteractionCount(ctx context.Context, sessionID string) (int, error) {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(s.Interactions), nil
}

// Session returns a snapshot of the last committed state.
func (e *Engine) Session(ctx context.Context, sessionID string) (*session.Session, error) {
	return e.store.Get(ctx, sessionID)
}

// Summary reports usage and the inferred theme of a session.
func (e *Engine) Summary(ctx context.Context, sessionID string) (Summary, error) {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}

	usage := make(map[string]int)
	for _, in := range s.Interactions {
		usage[in.SelectedItemID]++
	}
	return Summary{
		SessionID:         s.ID,
		UserID:            s.UserID,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Duration:          s.UpdatedAt.Sub(s.CreatedAt),
		InteractionCount:  len(s.Interactions),
		ItemUsage:         usage,
		PreferenceWeights: s.PreferenceWeights,
		Theme:             theme(s.Interactions, e.cfg.ThemeMinCount),
	}, nil
}

// EndSession deletes a session.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	unlock := e.lock(sessionID)
	defer unlock()
	return e.store.Delete(ctx, sessionID)
}
