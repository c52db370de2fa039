// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/logging"
	"github.com/tomtom215/castmatch/internal/metrics"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/recommend/personalize"
	"github.com/tomtom215/castmatch/internal/recommend/semantic"
	"github.com/tomtom215/castmatch/internal/session"
)

// Engine is the ranking integrator. It is safe for concurrent use.
type Engine struct {
	config   *Config
	ec       *EngineContext
	intent   IntentEngine
	semantic SemanticEngine
	personal PersonalizationEngine
	logger   zerolog.Logger
}

// NewEngine wires the three scoring engines over ec.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ec *EngineContext, ie IntentEngine, se SemanticEngine, pe PersonalizationEngine, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if ec == nil || ec.Catalog == nil {
		return nil, fmt.Errorf("engine context with a catalog is required")
	}
	if ie == nil || se == nil || pe == nil {
		return nil, fmt.Errorf("intent, semantic and personalization engines are required")
	}
	return &Engine{
		config:   cfg,
		ec:       ec,
		intent:   ie,
		semantic: se,
		personal: pe,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the active configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Recommend ranks the catalog for req and, when req names a session,
// records the winning selection into it.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	return e.rank(ctx, req, true)
}

// Explain ranks the catalog like Recommend but records nothing.
func (e *Engine) Explain(ctx context.Context, req Request) (*Recommendation, error) {
	return e.rank(ctx, req, false)
}

func (e *Engine) rank(ctx context.Context, req Request, record bool) (*Recommendation, error) {
	start := time.Now()
	log := logging.CtxWith(ctx, e.logger)

	// Session lookup comes first so an unknown session fails before any
	// scoring work.
	n := 0
	if req.SessionID != "" {
		count, err := e.personal.InteractionCount(ctx, req.SessionID)
		if err != nil {
			return nil, e.sessionError(req.SessionID, err)
		}
		n = count
	}

	items := e.ec.Catalog.Items()
	ids := e.ec.Catalog.IDs()

	in := e.intent.Classify(req.Query, req.Hints)
	if in.IsAmbiguous() {
		metrics.RecordAmbiguousQuery()
	}

	sims := e.semantic.Similarities(req.Query)
	top := e.semantic.Search(req.Query, 1)
	if len(top) > 0 && top[0].LexicalFallback {
		metrics.RecordLexicalFallback()
	}

	personal := make(map[string]float64, len(ids))
	if req.SessionID != "" {
		scores, err := e.personal.Score(ctx, req.SessionID, req.Query, ids)
		if err != nil {
			return nil, e.sessionError(req.SessionID, err)
		}
		personal = scores
	}

	weights := e.config.WeightsFor(n)
	state := e.config.StateFor(n)

	intentScores := make(map[string]float64, len(items))
	semanticScores := make(map[string]float64, len(items))
	personalScores := make(map[string]float64, len(items))
	ranked := make([]RankedItem, len(items))
	for i := range items {
		item := &items[i]
		is := e.intentMatch(&in, item)
		ss := clamp01(sims[item.ID])
		ps := clamp01(personal[item.ID])

		intentScores[item.ID] = is
		semanticScores[item.ID] = ss
		personalScores[item.ID] = ps
		ranked[i] = RankedItem{
			ItemID:      item.ID,
			DisplayName: item.DisplayName,
			Score:       clamp01(weights.Intent*is + weights.Semantic*ss + weights.Personalization*ps),
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	winner := ranked[0]
	confidence := winner.Score
	corroborated := len(top) > 0 &&
		top[0].ItemID == winner.ItemID &&
		top[0].Similarity > 0 &&
		personalScores[winner.ItemID] > 0
	if corroborated {
		confidence += e.config.CorroborationBoost
	}
	confidence = clamp01(confidence)

	rec := &Recommendation{
		SelectedItemID:      winner.ItemID,
		SelectedDisplayName: winner.DisplayName,
		Confidence:          confidence,
		RankedAlternatives:  ranked,
		ComponentScores: map[string]map[string]float64{
			ComponentIntent:          intentScores,
			ComponentSemantic:        semanticScores,
			ComponentPersonalization: personalScores,
		},
		Intent:       in,
		SessionID:    req.SessionID,
		SessionState: state,
		Weights:      weights,
	}
	rec.Reasoning = e.reasoning(rec, top, n, corroborated)

	if record && req.SessionID != "" {
		idx, err := e.personal.RecordInteraction(ctx, req.SessionID, personalize.InteractionInput{
			Query:          req.Query,
			SelectedItemID: winner.ItemID,
			Intent:         in,
		})
		if err != nil {
			return nil, e.sessionError(req.SessionID, err)
		}
		rec.InteractionIndex = &idx
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(string(state), confidence, elapsed)
	log.Debug().
		Str("query", req.Query).
		Str("user_id", req.UserID).
		Str("selected", winner.ItemID).
		Float64("confidence", confidence).
		Str("session_state", string(state)).
		Bool("recorded", rec.InteractionIndex != nil).
		Dur("elapsed", elapsed).
		Msg("Recommendation ranked")
	return rec, nil
}

func (e *Engine) sessionError(id string, err error) error {
	if session.IsUnknown(err) {
		return fmt.Errorf("%w %q: %w", ErrUnknownSession, id, err)
	}
	return fmt.Errorf("session %q: %w", id, err)
}

// intentMatch scores how well an item's metadata agrees with the specific
// (non-default) dimensions of the intent. An intent with no specific
// dimension carries no evidence and scores 0. Metadata values outside the
// enumerations never match.
func (e *Engine) intentMatch(in *intent.Intent, item *catalog.Item) float64 {
	dims := in.NonDefault()
	if len(dims) == 0 {
		return 0
	}
	matched := 0
	for _, dim := range dims {
		v, err := intent.ParseValue(dim, item.Facet(string(dim)))
		if err == nil && v == in.Value(dim) {
			matched++
		}
	}
	switch {
	case matched == len(dims):
		return 1
	case matched > 0:
		return e.config.PartialMatchCredit
	default:
		return 0
	}
}

func (e *Engine) reasoning(rec *Recommendation, top []semantic.SearchResult, n int, corroborated bool) string {
	id := rec.SelectedItemID
	parts := []string{
		fmt.Sprintf("Selected %s (score %.2f: intent %.2f, semantic %.2f, personalization %.2f at weights %.2f/%.2f/%.2f)",
			rec.SelectedDisplayName,
			rec.RankedAlternatives[0].Score,
			rec.ComponentScores[ComponentIntent][id],
			rec.ComponentScores[ComponentSemantic][id],
			rec.ComponentScores[ComponentPersonalization][id],
			rec.Weights.Intent, rec.Weights.Semantic, rec.Weights.Personalization),
		"Intent: " + strings.TrimSuffix(rec.Intent.Reasoning, "."),
	}

	if len(top) > 0 {
		parts = append(parts, fmt.Sprintf("Semantic: best match %s, %s", top[0].ItemID, top[0].Reasoning))
	}

	switch {
	case rec.SessionID == "":
		parts = append(parts, "Personalization: no session")
	case n == 0:
		parts = append(parts, "Personalization: new session, no history yet")
	default:
		parts = append(parts, fmt.Sprintf("Personalization: %s session with %d interactions, affinity for %s %.2f",
			rec.SessionState, n, id, rec.ComponentScores[ComponentPersonalization][id]))
	}
	if corroborated {
		parts = append(parts, fmt.Sprintf("Confidence +%.2f: semantic and session history agree", e.config.CorroborationBoost))
	}
	return strings.Join(parts, ". ") + "."
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
