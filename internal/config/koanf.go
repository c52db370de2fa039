// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/castmatch/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8420,
			Timeout:         10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Session: SessionConfig{
			Store:           "memory",
			Path:            "/data/sessions",
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Intent: IntentConfig{
			DefaultConfidence:       0.3,
			HintConfidence:          0.5,
			AmbiguityThreshold:      2,
			AmbiguityPenalty:        0.15,
			HighConfidenceThreshold: 0.7,
			HighConfidenceBonus:     0.1,
			ResolveThreshold:        0.5,
		},
		Semantic: SemanticConfig{
			ConceptThreshold: 0.7,
			DefaultTopK:      5,
			CacheSize:        256,
		},
		Personalize: PersonalizeConfig{
			HalfLife:      5,
			BoostFactor:   1.5,
			DampingFactor: 0.5,
			ThemeMinCount: 3,
		},
		Ranking: RankingConfig{
			IntentWeight:            0.4,
			SemanticWeight:          0.4,
			PersonalWeight:          0.2,
			PersonalStep:            0.1,
			PersonalCapInteractions: 3,
			PartialMatchCredit:      0.5,
			CorroborationBoost:      0.1,
			WarmingThreshold:        1,
			PersonalizedThreshold:   3,
		},
		API: APIConfig{
			CORSOrigins:         []string{"*"},
			RateLimitRequests:   120,
			RateLimitWindow:     time.Minute,
			WSMessagesPerSecond: 5,
			WSBurst:             10,
		},
	}
}

// LoadWithKoanf layers defaults, the optional config file and environment
// variables, then validates the result.
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"catalog_path": "catalog.path",

	"session_store":            "session.store",
	"session_store_path":       "session.path",
	"session_ttl":              "session.ttl",
	"session_cleanup_interval": "session.cleanup_interval",
	"session_breaker_failures": "session.breaker_failures",
	"session_breaker_timeout":  "session.breaker_timeout",

	"intent_default_confidence":  "intent.default_confidence",
	"intent_ambiguity_threshold": "intent.ambiguity_threshold",
	"intent_resolve_threshold":   "intent.resolve_threshold",

	"vocabulary_path":            "semantic.vocabulary_path",
	"semantic_concept_threshold": "semantic.concept_threshold",
	"semantic_default_top_k":     "semantic.default_top_k",
	"semantic_cache_size":        "semantic.cache_size",

	"personalize_half_life":      "personalize.half_life",
	"personalize_boost_factor":   "personalize.boost_factor",
	"personalize_damping_factor": "personalize.damping_factor",

	"ranking_intent_weight":   "ranking.intent_weight",
	"ranking_semantic_weight": "ranking.semantic_weight",
	"ranking_personal_weight": "ranking.personal_weight",
	"ranking_personal_step":   "ranking.personal_step",

	"cors_origins":           "api.cors_origins",
	"rate_limit_reqs":        "api.rate_limit_requests",
	"rate_limit_window":      "api.rate_limit_window",
	"disable_rate_limit":     "api.rate_limit_disabled",
	"ws_messages_per_second": "api.ws_messages_per_second",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
