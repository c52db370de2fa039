// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package intent classifies free-text queries into style, purpose and
// motion using curated keyword tables, and flags bare nouns such as
// "person" or "model" as ambiguous when the rest of the query gives too
// little context.
//
// Classification is a pure function of the query, the optional hints and
// the static tables. Ties within a dimension resolve to the value listed
// first in the table.
package intent

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/recommend/text"
)

// Engine implements intent classification and clarification.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

// NewEngine validates cfg and returns a classifier.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intent config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "intent").Logger(),
	}, nil
}

// dimensionMatch is the outcome of scoring one dimension table.
type dimensionMatch struct {
	value    string
	score    float64
	keywords []string

	// hits counts every matched keyword in the table, winners and losers.
	hits int
}

func matchDimension(table dimensionTable, query string) dimensionMatch {
	var best dimensionMatch
	for _, rule := range table.rules {
		var score float64
		var hits []string
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw.term) {
				score += kw.weight
				hits = append(hits, kw.term)
			}
		}
		best.hits += len(hits)
		if score > best.score {
			best.value, best.score, best.keywords = rule.value, score, hits
		}
	}
	return best
}

func newDefaultIntent(defaultConfidence float64) Intent {
	in := Intent{
		Style:                 StyleNeutral,
		Purpose:               PurposeGeneral,
		Motion:                MotionNone,
		DimensionConfidence:   make(map[Dimension]float64, len(Dimensions)),
		AmbiguousTerms:        []string{},
		ClarifyingSuggestions: []string{},
		MatchedKeywords:       make(map[Dimension][]string, len(Dimensions)),
	}
	for _, dim := range Dimensions {
		in.DimensionConfidence[dim] = defaultConfidence
		in.MatchedKeywords[dim] = []string{}
	}
	return in
}

// Classify reads query into an Intent. hints may carry "style", "purpose"
// or "motion" values that fill dimensions no keyword matched; unparseable
// hints are ignored.
//
// A dimension's confidence is its keyword score divided by the number of
// content words, which are the query tokens left after removing the filler
// words listed in text's stopword table ("show", "me", "a", "want", ...).
// See text.ContentWords.
func (e *Engine) Classify(query string, hints map[string]string) Intent {
	normalized := text.Normalize(query)
	in := newDefaultIntent(e.cfg.DefaultConfidence)

	if normalized == "" {
		in.Confidence = e.cfg.MinConfidence
		in.Reasoning = "Empty query; used defaults (style neutral, purpose general, motion none)."
		return in
	}

	wordCount := math.Max(float64(len(text.ContentWords(normalized))), 1)
	keywordHits := 0
	decided := make(map[Dimension]bool, len(Dimensions))
	var notes []string

	for _, table := range dimensionTables {
		m := matchDimension(table, normalized)
		keywordHits += m.hits
		if m.score <= 0 {
			continue
		}
		conf := math.Min(1, m.score/wordCount)
		in.set(table.dim, m.value)
		in.DimensionConfidence[table.dim] = conf
		in.MatchedKeywords[table.dim] = m.keywords
		decided[table.dim] = true
		notes = append(notes, fmt.Sprintf("%s %s (matched %s, confidence %.2f)",
			table.dim, m.value, quoteAll(m.keywords), conf))
	}

	notes = append(notes, e.applyHints(&in, hints, decided)...)
	notes = append(notes, e.detectAmbiguity(&in, normalized, keywordHits, decided)...)

	in.Confidence = e.overallConfidence(&in)
	in.Reasoning = buildReasoning(&in, notes, decided)

	e.logger.Debug().
		Str("style", string(in.Style)).
		Str("purpose", string(in.Purpose)).
		Str("motion", string(in.Motion)).
		Float64("confidence", in.Confidence).
		Int("keyword_hits", keywordHits).
		Strs("ambiguous", in.AmbiguousTerms).
		Msg("Query classified")

	return in
}

func (e *Engine) applyHints(in *Intent, hints map[string]string, decided map[Dimension]bool) []string {
	if len(hints) == 0 {
		return nil
	}
	var notes []string
	for _, dim := range Dimensions {
		raw, ok := hints[string(dim)]
		if !ok || decided[dim] {
			continue
		}
		value, err := ParseValue(dim, raw)
		if err != nil {
			notes = append(notes, fmt.Sprintf("ignored %s hint %q", dim, raw))
			continue
		}
		in.set(dim, value)
		in.DimensionConfidence[dim] = e.cfg.HintConfidence
		decided[dim] = true
		notes = append(notes, fmt.Sprintf("%s %s (from hint)", dim, value))
	}
	return notes
}

// detectAmbiguity flags trigger terms when fewer than AmbiguityThreshold
// keyword matches exist, and applies their fallbacks to undecided
// dimensions. Terms are recorded in query order.
func (e *Engine) detectAmbiguity(in *Intent, query string, keywordHits int, decided map[Dimension]bool) []string {
	if keywordHits >= e.cfg.AmbiguityThreshold {
		return nil
	}
	var notes []string
	for _, tok := range text.Unique(text.Tokenize(query)) {
		trigger, ok := ambiguityTriggers[tok]
		if !ok {
			continue
		}
		in.AmbiguousTerms = append(in.AmbiguousTerms, tok)
		in.ClarifyingSuggestions = append(in.ClarifyingSuggestions, trigger.question)

		for _, dim := range Dimensions {
			value, ok := trigger.fallback[dim]
			if !ok || decided[dim] {
				continue
			}
			in.set(dim, value)
			decided[dim] = true
			notes = append(notes, fmt.Sprintf("%s %s (assumed from %q)", dim, value, tok))
		}
	}
	if len(in.AmbiguousTerms) > 0 {
		notes = append(notes, fmt.Sprintf("ambiguous %s", quoteAll(in.AmbiguousTerms)))
	}
	return notes
}

func (e *Engine) overallConfidence(in *Intent) float64 {
	var sum float64
	high := 0
	for _, dim := range Dimensions {
		c := in.DimensionConfidence[dim]
		sum += c
		if c > e.cfg.HighConfidenceThreshold {
			high++
		}
	}
	conf := sum/float64(len(Dimensions)) -
		e.cfg.AmbiguityPenalty*float64(len(in.AmbiguousTerms)) +
		e.cfg.HighConfidenceBonus*float64(high)
	return clamp(conf, e.cfg.MinConfidence, 1)
}

// Resolve applies a clarification to an earlier Intent. The clarification is
// classified on its own; any dimension it reads with confidence above
// ResolveThreshold replaces the original. Ambiguity is always cleared.
func (e *Engine) Resolve(original Intent, clarification string) Intent {
	clar := e.Classify(clarification, nil)
	out := cloneIntent(original)

	var changed []string
	for _, dim := range Dimensions {
		if len(clar.MatchedKeywords[dim]) == 0 || clar.DimensionConfidence[dim] <= e.cfg.ResolveThreshold {
			continue
		}
		out.set(dim, clar.Value(dim))
		out.DimensionConfidence[dim] = clar.DimensionConfidence[dim]
		out.MatchedKeywords[dim] = append([]string(nil), clar.MatchedKeywords[dim]...)
		changed = append(changed, fmt.Sprintf("%s %s", dim, clar.Value(dim)))
	}

	out.AmbiguousTerms = []string{}
	out.ClarifyingSuggestions = []string{}
	out.Confidence = e.overallConfidence(&out)

	if len(changed) > 0 {
		out.Reasoning = strings.TrimSpace(original.Reasoning + " Clarified: " + strings.Join(changed, "; ") + ".")
	} else {
		out.Reasoning = strings.TrimSpace(original.Reasoning + " Clarification kept the original reading.")
	}
	return out
}

func buildReasoning(in *Intent, notes []string, decided map[Dimension]bool) string {
	var defaults []string
	for _, dim := range Dimensions {
		if !decided[dim] {
			defaults = append(defaults, fmt.Sprintf("%s %s", dim, in.Value(dim)))
		}
	}

	var b strings.Builder
	switch {
	case len(decided) == 0 && len(notes) == 0:
		b.WriteString("No intent keywords matched")
	case len(decided) == 0:
		b.WriteString("No intent keywords matched; ")
		b.WriteString(strings.Join(notes, "; "))
	default:
		b.WriteString("Detected ")
		b.WriteString(strings.Join(notes, "; "))
	}
	if len(defaults) > 0 {
		b.WriteString("; used defaults (")
		b.WriteString(strings.Join(defaults, ", "))
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}

func cloneIntent(in Intent) Intent {
	out := in
	out.DimensionConfidence = make(map[Dimension]float64, len(in.DimensionConfidence))
	for k, v := range in.DimensionConfidence {
		out.DimensionConfidence[k] = v
	}
	out.MatchedKeywords = make(map[Dimension][]string, len(in.MatchedKeywords))
	for k, v := range in.MatchedKeywords {
		out.MatchedKeywords[k] = append([]string{}, v...)
	}
	out.AmbiguousTerms = append([]string{}, in.AmbiguousTerms...)
	out.ClarifyingSuggestions = append([]string{}, in.ClarifyingSuggestions...)
	return out
}

func quoteAll(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = "'" + t + "'"
	}
	return strings.Join(quoted, ", ")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
