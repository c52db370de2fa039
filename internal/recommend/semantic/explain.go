// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package semantic

import (
	"github.com/tomtom215/castmatch/internal/recommend/text"
	"github.com/tomtom215/castmatch/internal/recommend/vocab"
)

// TokenExplanation shows how one query token was embedded.
type TokenExplanation struct {
	Token     string             `json:"token"`
	Canonical string             `json:"canonical,omitempty"`
	Known     bool               `json:"known"`
	Vector    map[string]float64 `json:"vector,omitempty"`
}

// ItemExplanation shows one item's embedding and score.
type ItemExplanation struct {
	ItemID     string             `json:"item_id"`
	Vector     map[string]float64 `json:"vector"`
	Similarity float64            `json:"similarity"`
}

// Explanation is the full breakdown of a query against the catalog.
type Explanation struct {
	Query           string             `json:"query"`
	Labels          []string           `json:"labels"`
	QueryVector     map[string]float64 `json:"query_vector"`
	Tokens          []TokenExplanation `json:"tokens"`
	Items           []ItemExplanation  `json:"items"`
	LexicalFallback bool               `json:"lexical_fallback"`
}

// Explain reports every step of the similarity computation for query.
// Items appear in catalog order.
func (e *Engine) Explain(query string) Explanation {
	qvec, _ := e.Embed(query)
	scores, fallback := e.score(query)

	out := Explanation{
		Query:           query,
		Labels:          append([]string(nil), vocab.Labels[:]...),
		QueryVector:     qvec.Labeled(),
		LexicalFallback: fallback,
	}
	for _, tok := range text.Tokenize(query) {
		te := TokenExplanation{Token: tok}
		if v, word, ok := e.vocab.Lookup(tok); ok {
			te.Canonical = word
			te.Known = true
			te.Vector = v.Labeled()
		}
		out.Tokens = append(out.Tokens, te)
	}
	for i := range e.items {
		out.Items = append(out.Items, ItemExplanation{
			ItemID:     e.items[i].id,
			Vector:     e.items[i].vector.Labeled(),
			Similarity: scores[i],
		})
	}
	return out
}
