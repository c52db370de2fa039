// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package personalize

import (
	"fmt"
	"time"
)

// Config tunes session affinity.
type Config struct {
	// HalfLife is measured in interactions: a selection HalfLife
	// interactions old counts half as much as the newest one.
	HalfLife float64 `json:"half_life"`

	// BoostFactor and DampingFactor scale an interaction's satisfaction
	// weight on positive and negative feedback.
	BoostFactor   float64 `json:"boost_factor"`
	DampingFactor float64 `json:"damping_factor"`

	// ThemeMinCount is the occurrences a purpose or motion needs before it
	// is reported as the session theme.
	ThemeMinCount int `json:"theme_min_count"`

	// SessionTTL is the idle lifetime of a session; zero never expires.
	SessionTTL time.Duration `json:"session_ttl"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		HalfLife:      5,
		BoostFactor:   1.5,
		DampingFactor: 0.5,
		ThemeMinCount: 3,
		SessionTTL:    24 * time.Hour,
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.HalfLife <= 0 {
		return fmt.Errorf("personalize.half_life must be positive, got %f", c.HalfLife)
	}
	if c.BoostFactor < 1 {
		return fmt.Errorf("personalize.boost_factor must be >= 1, got %f", c.BoostFactor)
	}
	if c.DampingFactor < 0 || c.DampingFactor >= 1 {
		return fmt.Errorf("personalize.damping_factor must be in [0,1), got %f", c.DampingFactor)
	}
	if c.ThemeMinCount < 1 {
		return fmt.Errorf("personalize.theme_min_count must be >= 1, got %d", c.ThemeMinCount)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("personalize.session_ttl must be non-negative, got %s", c.SessionTTL)
	}
	return nil
}
