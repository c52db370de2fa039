// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() = %v", err)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %q, want memory", cfg.Session.Store)
	}
	if cfg.Ranking.IntentWeight != 0.4 || cfg.Ranking.SemanticWeight != 0.4 || cfg.Ranking.PersonalWeight != 0.2 {
		t.Errorf("Ranking weights = %v/%v/%v, want 0.4/0.4/0.2",
			cfg.Ranking.IntentWeight, cfg.Ranking.SemanticWeight, cfg.Ranking.PersonalWeight)
	}
	if cfg.Intent.AmbiguityThreshold != 2 {
		t.Errorf("Intent.AmbiguityThreshold = %d, want 2", cfg.Intent.AmbiguityThreshold)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
session:
  store: badger
  path: /tmp/castmatch-sessions
  ttl: 2h
personalize:
  boost_factor: 2.0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_TTL", "3h")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Session.Store != "badger" {
		t.Errorf("Session.Store = %q, want badger", cfg.Session.Store)
	}
	if cfg.Session.TTL != 3*time.Hour {
		t.Errorf("Session.TTL = %v, want 3h (env overrides file)", cfg.Session.TTL)
	}
	if cfg.Personalize.BoostFactor != 2.0 {
		t.Errorf("Personalize.BoostFactor = %v, want 2.0", cfg.Personalize.BoostFactor)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "https://b.example" {
		t.Errorf("API.CORSOrigins = %v", cfg.API.CORSOrigins)
	}
	if cfg.Ranking.PersonalStep != 0.1 {
		t.Errorf("Ranking.PersonalStep = %v, want default 0.1", cfg.Ranking.PersonalStep)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"SESSION_STORE", "session.store"},
		{"VOCABULARY_PATH", "semantic.vocabulary_path"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad store", func(c *Config) { c.Session.Store = "redis" }, "session.store"},
		{"badger without path", func(c *Config) { c.Session.Store = "badger"; c.Session.Path = "" }, "session.path"},
		{"boost not above one", func(c *Config) { c.Personalize.BoostFactor = 1 }, "boost_factor"},
		{"damping at one", func(c *Config) { c.Personalize.DampingFactor = 1 }, "damping_factor"},
		{"zero weights", func(c *Config) {
			c.Ranking.IntentWeight, c.Ranking.SemanticWeight, c.Ranking.PersonalWeight = 0, 0, 0
		}, "ranking weight"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"negative cache size", func(c *Config) { c.Semantic.CacheSize = -1 }, "semantic.cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsZeroDamping(t *testing.T) {
	cfg := defaultConfig()
	cfg.Personalize.DampingFactor = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with damping 0 = %v, want nil", err)
	}
}
