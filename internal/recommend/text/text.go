// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package text holds the tokenizer shared by the intent and semantic engines.
package text

import (
	"strings"
	"unicode"
)

// stopwords are filler words that carry no intent. They are ignored when
// counting content words.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "me": {}, "i": {}, "im": {}, "we": {}, "us": {},
	"want": {}, "wants": {}, "show": {}, "give": {}, "get": {}, "find": {},
	"some": {}, "please": {}, "with": {}, "of": {}, "for": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "and": {}, "or": {}, "is": {}, "are": {},
	"be": {}, "my": {}, "that": {}, "this": {}, "like": {}, "would": {},
	"could": {}, "can": {}, "you": {}, "need": {}, "looking": {}, "look": {},
	"let": {}, "see": {}, "it": {}, "its": {}, "do": {}, "just": {},
}

// Normalize lower-cases and trims a query.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tokenize splits s into lower-case words on any rune that is neither a
// letter nor a digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// IsStopword reports whether the lower-case token is filler.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// ContentWords returns the tokens of s that are not stopwords, in order.
func ContentWords(s string) []string {
	tokens := Tokenize(s)
	out := tokens[:0]
	for _, tok := range tokens {
		if !IsStopword(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// Unique returns tokens with duplicates removed, keeping first occurrence.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
