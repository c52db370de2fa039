// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package vocab

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabulary(t *testing.T) {
	v, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if v.Len() != len(defaultEntries) {
		t.Errorf("Len() = %d, want %d", v.Len(), len(defaultEntries))
	}

	tests := []struct {
		token     string
		canonical string
		known     bool
	}{
		{"walk", "walk", true},
		{"walking", "walk", true},
		{"sprinting", "run", true},
		{"android", "robot", true},
		{"person", "", false},
		{"something", "", false},
	}
	for _, tt := range tests {
		_, word, ok := v.Lookup(tt.token)
		if ok != tt.known || word != tt.canonical {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.token, word, ok, tt.canonical, tt.known)
		}
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"blank word", []Entry{{Word: " ", Vector: Vector{1}}}},
		{"duplicate", []Entry{{Word: "a", Vector: Vector{1}}, {Word: "A", Vector: Vector{1}}}},
		{"out of range", []Entry{{Word: "a", Vector: Vector{1.5}}}},
		{"zero vector", []Entry{{Word: "a"}}},
		{"synonym is word", []Entry{
			{Word: "a", Vector: Vector{1}, Synonyms: []string{"b"}},
			{Word: "b", Vector: Vector{1}},
		}},
		{"synonym clash", []Entry{
			{Word: "a", Vector: Vector{1}, Synonyms: []string{"x"}},
			{Word: "b", Vector: Vector{1}, Synonyms: []string{"x"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries); !errors.Is(err, ErrInvalidVocabulary) {
				t.Errorf("New() error = %v, want ErrInvalidVocabulary", err)
			}
		})
	}
}

func TestCosine(t *testing.T) {
	a := Vector{1, 0, 0, 0, 0, 0}
	b := Vector{0, 1, 0, 0, 0, 0}

	if got := Cosine(a, a); math.Abs(got-1) > 1e-12 {
		t.Errorf("Cosine(a, a) = %v, want 1", got)
	}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(a, b) = %v, want 0", got)
	}
	if got := Cosine(a, Vector{}); got != 0 {
		t.Errorf("Cosine(a, 0) = %v, want 0", got)
	}
}

func TestMean(t *testing.T) {
	got := Mean([]Vector{{1, 0, 0, 0, 0, 1}, {0, 0, 1, 0, 0, 1}})
	want := Vector{.5, 0, .5, 0, 0, 1}
	if got != want {
		t.Errorf("Mean() = %v, want %v", got, want)
	}
	if !Mean(nil).IsZero() {
		t.Errorf("Mean(nil) should be zero")
	}
}

func TestLabeled(t *testing.T) {
	m := Vector{.9, .4, .1, 0, .3, .1}.Labeled()
	if m["locomotion"] != .9 || m["social"] != .1 {
		t.Errorf("Labeled() = %v", m)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	doc := "words:\n  - word: walk\n    vector: [0.9, 0.4, 0.1, 0, 0.3, 0.1]\n    synonyms: [stroll]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if word, ok := v.Canonical("stroll"); !ok || word != "walk" {
		t.Errorf("Canonical(stroll) = %q, %v", word, ok)
	}
	if got := v.Synonyms("walk"); len(got) != 1 || got[0] != "stroll" {
		t.Errorf("Synonyms(walk) = %v", got)
	}

	short := filepath.Join(dir, "short.json")
	if err := os.WriteFile(short, []byte(`{"words":[{"word":"a","vector":[1,0]}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(short); !errors.Is(err, ErrInvalidVocabulary) {
		t.Errorf("LoadFile(short) error = %v, want ErrInvalidVocabulary", err)
	}
}
