// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package config

import (
	"fmt"
	"strings"
)

// Validate checks ranges and enumerations across all sections.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateIntent(); err != nil {
		return err
	}
	if err := c.validateSemantic(); err != nil {
		return err
	}
	if err := c.validatePersonalize(); err != nil {
		return err
	}
	return c.validateRanking()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal, disabled, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSession() error {
	switch c.Session.Store {
	case "memory":
	case "badger":
		if c.Session.Path == "" {
			return fmt.Errorf("session.path is required when session.store=badger")
		}
	default:
		return fmt.Errorf("session.store must be memory or badger, got %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %v", c.Session.TTL)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("session.cleanup_interval must be positive, got %v", c.Session.CleanupInterval)
	}
	return nil
}

func (c *Config) validateIntent() error {
	if c.Intent.DefaultConfidence < 0 || c.Intent.DefaultConfidence > 1 {
		return fmt.Errorf("intent.default_confidence must be in [0,1], got %f", c.Intent.DefaultConfidence)
	}
	if c.Intent.AmbiguityThreshold < 0 {
		return fmt.Errorf("intent.ambiguity_threshold must be non-negative, got %d", c.Intent.AmbiguityThreshold)
	}
	if c.Intent.ResolveThreshold < 0 || c.Intent.ResolveThreshold > 1 {
		return fmt.Errorf("intent.resolve_threshold must be in [0,1], got %f", c.Intent.ResolveThreshold)
	}
	return nil
}

func (c *Config) validateSemantic() error {
	if c.Semantic.ConceptThreshold < 0 || c.Semantic.ConceptThreshold > 1 {
		return fmt.Errorf("semantic.concept_threshold must be in [0,1], got %f", c.Semantic.ConceptThreshold)
	}
	if c.Semantic.DefaultTopK < 0 {
		return fmt.Errorf("semantic.default_top_k must be non-negative, got %d", c.Semantic.DefaultTopK)
	}
	if c.Semantic.CacheSize < 0 {
		return fmt.Errorf("semantic.cache_size must be non-negative, got %d", c.Semantic.CacheSize)
	}
	return nil
}

func (c *Config) validatePersonalize() error {
	if c.Personalize.HalfLife <= 0 {
		return fmt.Errorf("personalize.half_life must be positive, got %f", c.Personalize.HalfLife)
	}
	if c.Personalize.BoostFactor <= 1 {
		return fmt.Errorf("personalize.boost_factor must be greater than 1, got %f", c.Personalize.BoostFactor)
	}
	if c.Personalize.DampingFactor < 0 || c.Personalize.DampingFactor >= 1 {
		return fmt.Errorf("personalize.damping_factor must be in [0,1), got %f", c.Personalize.DampingFactor)
	}
	return nil
}

func (c *Config) validateRanking() error {
	r := c.Ranking
	if r.IntentWeight < 0 || r.SemanticWeight < 0 || r.PersonalWeight < 0 {
		return fmt.Errorf("ranking weights must be non-negative")
	}
	if r.IntentWeight+r.SemanticWeight+r.PersonalWeight == 0 {
		return fmt.Errorf("at least one ranking weight must be positive")
	}
	if r.PersonalCapInteractions < 0 {
		return fmt.Errorf("ranking.personal_cap_interactions must be non-negative, got %d", r.PersonalCapInteractions)
	}
	return nil
}
