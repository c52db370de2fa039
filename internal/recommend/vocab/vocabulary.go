// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package vocab holds the hand-built word embedding table used by semantic
// search: canonical words with 6-dimensional vectors and a synonym index
// that folds inflections and near-synonyms onto them.
//
// A Vocabulary is immutable after construction and safe for concurrent use.
package vocab

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidVocabulary is returned when a vocabulary table is malformed.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Entry is one canonical word.
type Entry struct {
	Word     string
	Vector   Vector
	Synonyms []string
}

// Vocabulary resolves words to vectors.
type Vocabulary struct {
	vectors  map[string]Vector
	synonyms map[string]string
	words    []string
}

// New builds a Vocabulary. Words and synonyms are lower-cased; a synonym
// that collides with another word or synonym is rejected.
func New(entries []Entry) (*Vocabulary, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidVocabulary)
	}

	v := &Vocabulary{
		vectors:  make(map[string]Vector, len(entries)),
		synonyms: make(map[string]string),
		words:    make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		word := strings.ToLower(strings.TrimSpace(e.Word))
		if word == "" {
			return nil, fmt.Errorf("%w: empty word", ErrInvalidVocabulary)
		}
		if _, dup := v.vectors[word]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrInvalidVocabulary, word)
		}
		for i, x := range e.Vector {
			if x < 0 || x > 1 {
				return nil, fmt.Errorf("%w: %q component %s = %v outside [0,1]", ErrInvalidVocabulary, word, Labels[i], x)
			}
		}
		if e.Vector.IsZero() {
			return nil, fmt.Errorf("%w: %q has a zero vector", ErrInvalidVocabulary, word)
		}
		v.vectors[word] = e.Vector
		v.words = append(v.words, word)
	}

	for _, e := range entries {
		word := strings.ToLower(strings.TrimSpace(e.Word))
		for _, syn := range e.Synonyms {
			syn = strings.ToLower(strings.TrimSpace(syn))
			if syn == "" || syn == word {
				continue
			}
			if _, clash := v.vectors[syn]; clash {
				return nil, fmt.Errorf("%w: synonym %q of %q is also a word", ErrInvalidVocabulary, syn, word)
			}
			if prev, clash := v.synonyms[syn]; clash && prev != word {
				return nil, fmt.Errorf("%w: synonym %q maps to both %q and %q", ErrInvalidVocabulary, syn, prev, word)
			}
			v.synonyms[syn] = word
		}
	}
	return v, nil
}

// Canonical returns the canonical word for token, looking it up directly
// and then through the synonym index.
func (v *Vocabulary) Canonical(token string) (string, bool) {
	if _, ok := v.vectors[token]; ok {
		return token, true
	}
	if word, ok := v.synonyms[token]; ok {
		return word, true
	}
	return "", false
}

// Lookup returns the vector and canonical word for token.
func (v *Vocabulary) Lookup(token string) (Vector, string, bool) {
	word, ok := v.Canonical(token)
	if !ok {
		return Vector{}, "", false
	}
	return v.vectors[word], word, true
}

// Len returns the number of canonical words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns the canonical words in definition order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// SynonymCount returns the number of synonym mappings.
func (v *Vocabulary) SynonymCount() int {
	return len(v.synonyms)
}

// Synonyms returns the sorted synonyms of a canonical word.
func (v *Vocabulary) Synonyms(word string) []string {
	var out []string
	for syn, w := range v.synonyms {
		if w == word {
			out = append(out, syn)
		}
	}
	sort.Strings(out)
	return out
}
