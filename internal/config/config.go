// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package config loads Castmatch configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/castmatch/config.yaml)
//  3. Environment variables (see envMappings)
//
// The ranking tunables here mirror the engine configs in internal/recommend
// and its subpackages; cmd/server converts between the two.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Session     SessionConfig     `koanf:"session"`
	Intent      IntentConfig      `koanf:"intent"`
	Semantic    SemanticConfig    `koanf:"semantic"`
	Personalize PersonalizeConfig `koanf:"personalize"`
	Ranking     RankingConfig     `koanf:"ranking"`
	API         APIConfig         `koanf:"api"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig locates the character catalog. An empty Path selects the
// catalog compiled into the binary.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// SessionConfig selects and tunes the personalization session store.
type SessionConfig struct {
	// Store is "memory" or "badger".
	Store string `koanf:"store"`

	// Path is the badger directory; ignored for the memory store.
	Path string `koanf:"path"`

	// TTL is the idle lifetime of a session. Each write extends it.
	TTL time.Duration `koanf:"ttl"`

	// CleanupInterval is how often the sweeper purges expired sessions.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	// BreakerFailures is the consecutive failure count that opens the
	// store circuit breaker. Zero disables the breaker.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// IntentConfig tunes keyword classification and ambiguity detection.
type IntentConfig struct {
	DefaultConfidence       float64 `koanf:"default_confidence"`
	HintConfidence          float64 `koanf:"hint_confidence"`
	AmbiguityThreshold      int     `koanf:"ambiguity_threshold"`
	AmbiguityPenalty        float64 `koanf:"ambiguity_penalty"`
	HighConfidenceThreshold float64 `koanf:"high_confidence_threshold"`
	HighConfidenceBonus     float64 `koanf:"high_confidence_bonus"`
	ResolveThreshold        float64 `koanf:"resolve_threshold"`
}

// SemanticConfig tunes the embedding search.
type SemanticConfig struct {
	// VocabularyPath optionally replaces the built-in word table (YAML).
	VocabularyPath   string  `koanf:"vocabulary_path"`
	ConceptThreshold float64 `koanf:"concept_threshold"`
	DefaultTopK      int     `koanf:"default_top_k"`

	// CacheSize bounds the per-query score cache; zero disables it.
	CacheSize int `koanf:"cache_size"`
}

// PersonalizeConfig tunes session affinity.
type PersonalizeConfig struct {
	HalfLife      float64 `koanf:"half_life"`
	BoostFactor   float64 `koanf:"boost_factor"`
	DampingFactor float64 `koanf:"damping_factor"`
	ThemeMinCount int     `koanf:"theme_min_count"`
}

// RankingConfig tunes the score blend.
type RankingConfig struct {
	IntentWeight            float64 `koanf:"intent_weight"`
	SemanticWeight          float64 `koanf:"semantic_weight"`
	PersonalWeight          float64 `koanf:"personal_weight"`
	PersonalStep            float64 `koanf:"personal_step"`
	PersonalCapInteractions int     `koanf:"personal_cap_interactions"`
	PartialMatchCredit      float64 `koanf:"partial_match_credit"`
	CorroborationBoost      float64 `koanf:"corroboration_boost"`
	WarmingThreshold        int     `koanf:"warming_threshold"`
	PersonalizedThreshold   int     `koanf:"personalized_threshold"`
}

// APIConfig controls the HTTP and WebSocket surface.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// WSMessagesPerSecond caps recommend requests per WebSocket connection.
	WSMessagesPerSecond float64 `koanf:"ws_messages_per_second"`
	WSBurst             int     `koanf:"ws_burst"`
}

// Load is the entry point used by main.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
