// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package recommend

import (
	"fmt"
	"math"
)

// Weights is the share of each signal in the combined score.
type Weights struct {
	Intent          float64 `json:"intent"`
	Semantic        float64 `json:"semantic"`
	Personalization float64 `json:"personalization"`
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.Intent + w.Semantic + w.Personalization
}

// Config contains the blend parameters.
type Config struct {
	// Base is the weight set of a cold session. It must sum to 1.
	Base Weights `json:"base"`

	// PersonalStep is added to the personalization weight per interaction,
	// up to PersonalCapInteractions interactions.
	PersonalStep            float64 `json:"personal_step"`
	PersonalCapInteractions int     `json:"personal_cap_interactions"`

	// PartialMatchCredit is the intent score of an item matching some but
	// not all of the specific intent dimensions.
	PartialMatchCredit float64 `json:"partial_match_credit"`

	// CorroborationBoost is added to confidence when the winner is also the
	// top semantic hit and has non-zero personalization.
	CorroborationBoost float64 `json:"corroboration_boost"`

	// WarmingThreshold and PersonalizedThreshold are the interaction counts
	// at which a session becomes warming and personalized.
	WarmingThreshold      int `json:"warming_threshold"`
	PersonalizedThreshold int `json:"personalized_threshold"`
}

// DefaultConfig returns the stock blend.
func DefaultConfig() *Config {
	return &Config{
		Base:                    Weights{Intent: 0.4, Semantic: 0.4, Personalization: 0.2},
		PersonalStep:            0.1,
		PersonalCapInteractions: 3,
		PartialMatchCredit:      0.5,
		CorroborationBoost:      0.1,
		WarmingThreshold:        1,
		PersonalizedThreshold:   3,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"intent_weight":        c.Base.Intent,
		"semantic_weight":      c.Base.Semantic,
		"personal_weight":      c.Base.Personalization,
		"partial_match_credit": c.PartialMatchCredit,
		"corroboration_boost":  c.CorroborationBoost,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("ranking.%s must be in [0,1], got %f", name, v)
		}
	}
	if math.Abs(c.Base.Sum()-1) > 1e-6 {
		return fmt.Errorf("ranking base weights must sum to 1, got %f", c.Base.Sum())
	}
	if c.PersonalStep < 0 {
		return fmt.Errorf("ranking.personal_step must be non-negative, got %f", c.PersonalStep)
	}
	if c.PersonalCapInteractions < 0 {
		return fmt.Errorf("ranking.personal_cap_interactions must be non-negative, got %d", c.PersonalCapInteractions)
	}
	if maxP := c.Base.Personalization + c.PersonalStep*float64(c.PersonalCapInteractions); maxP > 1 {
		return fmt.Errorf("ranking personalization weight reaches %f at cap, must not exceed 1", maxP)
	}
	if c.WarmingThreshold < 1 || c.PersonalizedThreshold < c.WarmingThreshold {
		return fmt.Errorf("ranking thresholds must satisfy 1 <= warming (%d) <= personalized (%d)",
			c.WarmingThreshold, c.PersonalizedThreshold)
	}
	return nil
}

// WeightsFor returns the weight set for a session with n interactions.
func (c *Config) WeightsFor(n int) Weights {
	steps := n
	if steps > c.PersonalCapInteractions {
		steps = c.PersonalCapInteractions
	}
	if steps < 0 {
		steps = 0
	}
	wp := math.Min(1, c.Base.Personalization+c.PersonalStep*float64(steps))
	rest := 1 - wp

	w := Weights{Personalization: wp}
	if base := c.Base.Intent + c.Base.Semantic; base > 0 {
		w.Intent = rest * c.Base.Intent / base
		w.Semantic = rest * c.Base.Semantic / base
	} else {
		w.Intent = rest / 2
		w.Semantic = rest / 2
	}
	return w
}

// StateFor classifies a session by interaction count.
func (c *Config) StateFor(n int) SessionState {
	switch {
	case n >= c.PersonalizedThreshold:
		return StatePersonalized
	case n >= c.WarmingThreshold:
		return StateWarming
	default:
		return StateCold
	}
}
