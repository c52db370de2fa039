// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package semantic ranks catalog items by concept similarity to a query.
//
// Queries and items are embedded into the vocabulary's 6-dimensional space
// by averaging the vectors of the words they contain. Items are embedded
// once at construction from their description and tags. When a query
// contains no known word the engine falls back to plain tag overlap, so
// every query yields a full ranking.
package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/cache"
	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/metrics"
	"github.com/tomtom215/castmatch/internal/recommend/text"
	"github.com/tomtom215/castmatch/internal/recommend/vocab"
)

// Config tunes the search.
type Config struct {
	// ConceptThreshold is the word-to-tag similarity above which a tag is
	// reported as a matched concept.
	ConceptThreshold float64 `json:"concept_threshold"`

	// DefaultTopK is used by callers that do not pass a result count.
	DefaultTopK int `json:"default_top_k"`

	// CacheSize bounds the per-query score cache. Zero disables it.
	CacheSize int `json:"cache_size"`
}

// DefaultConfig returns the stock search settings.
func DefaultConfig() Config {
	return Config{
		ConceptThreshold: 0.7,
		DefaultTopK:      5,
		CacheSize:        256,
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.ConceptThreshold < 0 || c.ConceptThreshold > 1 {
		return fmt.Errorf("semantic.concept_threshold must be in [0,1], got %f", c.ConceptThreshold)
	}
	if c.DefaultTopK < 0 {
		return fmt.Errorf("semantic.default_top_k must be non-negative, got %d", c.DefaultTopK)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("semantic.cache_size must be non-negative, got %d", c.CacheSize)
	}
	return nil
}

// SearchResult is one ranked item.
type SearchResult struct {
	ItemID          string   `json:"item_id"`
	Similarity      float64  `json:"similarity"`
	MatchedConcepts []string `json:"matched_concepts"`
	Reasoning       string   `json:"reasoning"`
	LexicalFallback bool     `json:"lexical_fallback"`
}

// itemEmbedding is the precomputed view of one catalog item.
type itemEmbedding struct {
	id     string
	tags   []string
	vector vocab.Vector
}

// queryScores is the cached outcome of scoring one query. scores is
// shared and read-only.
type queryScores struct {
	scores   []float64
	fallback bool
}

// Engine performs embedding search over a fixed catalog.
type Engine struct {
	cfg    Config
	vocab  *vocab.Vocabulary
	items  []itemEmbedding
	cache  *cache.LRU[queryScores] // nil when disabled
	logger zerolog.Logger
}

// NewEngine embeds every catalog item and returns a ready engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cat *catalog.Catalog, voc *vocab.Vocabulary, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if cat == nil || voc == nil {
		return nil, fmt.Errorf("semantic engine requires a catalog and a vocabulary")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid semantic config: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		vocab:  voc,
		items:  make([]itemEmbedding, 0, cat.Len()),
		logger: logger.With().Str("component", "semantic").Logger(),
	}
	if cfg.CacheSize > 0 {
		e.cache = cache.NewLRU[queryScores](cfg.CacheSize)
	}

	var blind []string
	for _, item := range cat.Items() {
		vec, known := e.Embed(itemText(&item))
		if !known {
			blind = append(blind, item.ID)
		}
		e.items = append(e.items, itemEmbedding{
			id:     item.ID,
			tags:   append([]string(nil), item.Tags...),
			vector: vec,
		})
	}
	if len(blind) > 0 {
		e.logger.Warn().Strs("items", blind).Msg("Catalog items have no description or tag words in the vocabulary; they only match lexically")
	}
	e.logger.Debug().Int("items", len(e.items)).Int("words", voc.Len()).Msg("Semantic index built")
	return e, nil
}

// itemText is what an item is embedded from: its description followed by
// its tags.
func itemText(item *catalog.Item) string {
	return item.Description + " " + strings.Join(item.Tags, " ")
}

// DefaultTopK is the configured result count for callers without one.
func (e *Engine) DefaultTopK() int {
	return e.cfg.DefaultTopK
}

// Embed averages the vectors of the known words in s. The bool is false
// when no word was known, in which case the vector is zero.
func (e *Engine) Embed(s string) (vocab.Vector, bool) {
	var vecs []vocab.Vector
	for _, tok := range text.Tokenize(s) {
		if v, _, ok := e.vocab.Lookup(tok); ok {
			vecs = append(vecs, v)
		}
	}
	if len(vecs) == 0 {
		return vocab.Vector{}, false
	}
	return vocab.Mean(vecs), true
}

// Similarities scores every catalog item against query.
func (e *Engine) Similarities(query string) map[string]float64 {
	scores, _ := e.score(query)
	out := make(map[string]float64, len(e.items))
	for i, it := range e.items {
		out[it.id] = scores[i]
	}
	return out
}

// score returns per-item similarity in catalog order and whether the
// lexical fallback was used. The slice may be shared through the cache and
// must not be modified.
func (e *Engine) score(query string) ([]float64, bool) {
	if e.cache == nil {
		return e.computeScores(query)
	}
	qs, hit := e.cache.GetOrCompute(query, func() queryScores {
		scores, fallback := e.computeScores(query)
		return queryScores{scores: scores, fallback: fallback}
	})
	metrics.RecordSemanticCacheLookup(hit)
	return qs.scores, qs.fallback
}

// CacheStats reports score cache hits, misses and size; all zero when the
// cache is disabled.
func (e *Engine) CacheStats() (hits, misses int64, size int) {
	if e.cache == nil {
		return 0, 0, 0
	}
	return e.cache.Stats()
}

func (e *Engine) computeScores(query string) ([]float64, bool) {
	scores := make([]float64, len(e.items))
	qvec, known := e.Embed(query)
	if !known || qvec.IsZero() {
		tokens := tokenSet(query)
		for i := range e.items {
			scores[i] = lexicalOverlap(tokens, e.items[i].tags)
		}
		return scores, true
	}
	for i := range e.items {
		scores[i] = vocab.Cosine(qvec, e.items[i].vector)
	}
	return scores, false
}

// Search returns the topK most similar items, best first. Equal scores
// keep catalog order. topK <= 0 returns every item.
func (e *Engine) Search(query string, topK int) []SearchResult {
	scores, fallback := e.score(query)
	tokens := text.Unique(text.Tokenize(query))

	results := make([]SearchResult, len(e.items))
	for i := range e.items {
		it := &e.items[i]
		concepts := e.matchedConcepts(it, tokens)
		results[i] = SearchResult{
			ItemID:          it.id,
			Similarity:      scores[i],
			MatchedConcepts: concepts,
			Reasoning:       describe(scores[i], concepts, fallback, it),
			LexicalFallback: fallback,
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Similarity > results[b].Similarity
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}

	e.logger.Debug().
		Str("query", query).
		Bool("lexical_fallback", fallback).
		Int("results", len(results)).
		Msg("Semantic search")
	return results
}

// matchedConcepts lists the item's tags that appear in the query, followed
// by tags close to some query word in vector space.
func (e *Engine) matchedConcepts(it *itemEmbedding, tokens []string) []string {
	literal := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		literal[tok] = struct{}{}
	}

	concepts := make([]string, 0, len(it.tags))
	for _, tag := range it.tags {
		if _, ok := literal[tag]; ok {
			concepts = append(concepts, tag)
			continue
		}
		tagVec, _, ok := e.vocab.Lookup(tag)
		if !ok {
			continue
		}
		bestWord, bestSim := "", e.cfg.ConceptThreshold
		for _, tok := range tokens {
			wv, _, ok := e.vocab.Lookup(tok)
			if !ok {
				continue
			}
			if sim := vocab.Cosine(tagVec, wv); sim > bestSim {
				bestWord, bestSim = tok, sim
			}
		}
		if bestWord != "" {
			concepts = append(concepts, fmt.Sprintf("%s (similar to '%s')", tag, bestWord))
		}
	}
	return concepts
}

func describe(sim float64, concepts []string, fallback bool, it *itemEmbedding) string {
	if fallback {
		if sim == 0 {
			return "no known concepts in query and no tag overlap"
		}
		return fmt.Sprintf("no known concepts in query; tag overlap %.2f of %d tags", sim, len(it.tags))
	}
	if len(concepts) == 0 {
		return fmt.Sprintf("similarity %.2f with no directly shared concepts", sim)
	}
	return fmt.Sprintf("similarity %.2f via %s", sim, strings.Join(concepts, ", "))
}

func tokenSet(s string) map[string]struct{} {
	tokens := text.Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// lexicalOverlap is |query ∩ tags| / |tags|. A multi-word tag counts when
// all of its words appear in the query.
func lexicalOverlap(query map[string]struct{}, tags []string) float64 {
	if len(tags) == 0 {
		return 0
	}
	var hits int
	for _, tag := range tags {
		words := text.Tokenize(tag)
		if len(words) == 0 {
			continue
		}
		all := true
		for _, w := range words {
			if _, ok := query[w]; !ok {
				all = false
				break
			}
		}
		if all {
			hits++
		}
	}
	return float64(hits) / float64(len(tags))
}
