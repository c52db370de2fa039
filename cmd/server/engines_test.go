// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/config"
	"github.com/tomtom215/castmatch/internal/recommend"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/recommend/personalize"
	"github.com/tomtom215/castmatch/internal/recommend/semantic"
	"github.com/tomtom215/castmatch/internal/session"
)

// loadTestConfig loads defaults through an empty config file so no file
// on the host can leak in.
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.ConfigPathEnvVar, path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestDefaultConfigMatchesEngineDefaults(t *testing.T) {
	cfg := loadTestConfig(t)

	if got, want := intentConfig(&cfg.Intent), intent.DefaultConfig(); got != want {
		t.Errorf("intentConfig() = %+v, want %+v", got, want)
	}
	if got, want := semanticConfig(&cfg.Semantic), semantic.DefaultConfig(); got != want {
		t.Errorf("semanticConfig() = %+v, want %+v", got, want)
	}
	if got, want := personalizeConfig(&cfg.Personalize, &cfg.Session), personalize.DefaultConfig(); got != want {
		t.Errorf("personalizeConfig() = %+v, want %+v", got, want)
	}
	if got, want := rankingConfig(&cfg.Ranking), recommend.DefaultConfig(); *got != *want {
		t.Errorf("rankingConfig() = %+v, want %+v", *got, *want)
	}
}

func TestCatalogRepository(t *testing.T) {
	if _, ok := catalogRepository(&config.CatalogConfig{}).(catalog.EmbeddedRepository); !ok {
		t.Error("empty path should select the embedded catalog")
	}
	if _, ok := catalogRepository(&config.CatalogConfig{Path: "/x.yaml"}).(*catalog.FileRepository); !ok {
		t.Error("a path should select the file repository")
	}
}

func TestBuildEngines(t *testing.T) {
	cfg := loadTestConfig(t)
	store := session.NewMemoryStore()

	engines, err := buildEngines(context.Background(), cfg, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildEngines() error = %v", err)
	}
	rec, err := engines.Recommender.Recommend(context.Background(), recommend.Request{Query: "show me a walking person"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if rec.SelectedItemID != "walking" {
		t.Errorf("SelectedItemID = %q, want walking", rec.SelectedItemID)
	}
}

func TestBuildEnginesCatalogFailure(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := buildEngines(context.Background(), cfg, session.NewMemoryStore(), zerolog.Nop())
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Errorf("buildEngines() error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestBuildEnginesRejectsBadTuning(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Ranking.IntentWeight = 0.9

	if _, err := buildEngines(context.Background(), cfg, session.NewMemoryStore(), zerolog.Nop()); err == nil {
		t.Error("buildEngines() accepted weights that do not sum to 1")
	}
}
