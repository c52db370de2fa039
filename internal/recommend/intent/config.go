// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package intent

import "fmt"

// Config holds the classification constants. None of them are derived from
// data; they are tuning knobs.
type Config struct {
	// DefaultConfidence is assigned to a dimension no keyword matched.
	DefaultConfidence float64 `json:"default_confidence"`

	// HintConfidence is assigned to a dimension filled from a caller hint.
	HintConfidence float64 `json:"hint_confidence"`

	// AmbiguityThreshold is the number of keyword matches at or above which
	// trigger terms are considered resolved by context.
	AmbiguityThreshold int `json:"ambiguity_threshold"`

	// AmbiguityPenalty is subtracted from overall confidence per trigger.
	AmbiguityPenalty float64 `json:"ambiguity_penalty"`

	// HighConfidenceBonus is added per dimension above HighConfidenceThreshold.
	HighConfidenceThreshold float64 `json:"high_confidence_threshold"`
	HighConfidenceBonus     float64 `json:"high_confidence_bonus"`

	// MinConfidence is the floor of overall confidence, and the confidence
	// of an empty query.
	MinConfidence float64 `json:"min_confidence"`

	// ResolveThreshold is the confidence a clarification needs to overwrite
	// a dimension.
	ResolveThreshold float64 `json:"resolve_threshold"`
}

// DefaultConfig returns the stock classification constants.
func DefaultConfig() Config {
	return Config{
		DefaultConfidence:       0.3,
		HintConfidence:          0.5,
		AmbiguityThreshold:      2,
		AmbiguityPenalty:        0.15,
		HighConfidenceThreshold: 0.7,
		HighConfidenceBonus:     0.1,
		MinConfidence:           0.1,
		ResolveThreshold:        0.5,
	}
}

// Validate checks that every constant is in range.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"default_confidence":        c.DefaultConfidence,
		"hint_confidence":           c.HintConfidence,
		"high_confidence_threshold": c.HighConfidenceThreshold,
		"min_confidence":            c.MinConfidence,
		"resolve_threshold":         c.ResolveThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("intent.%s must be in [0,1], got %f", name, v)
		}
	}
	if c.AmbiguityThreshold < 0 {
		return fmt.Errorf("intent.ambiguity_threshold must be non-negative, got %d", c.AmbiguityThreshold)
	}
	if c.AmbiguityPenalty < 0 || c.HighConfidenceBonus < 0 {
		return fmt.Errorf("intent penalty and bonus must be non-negative")
	}
	return nil
}
