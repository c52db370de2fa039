// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/config"
	"github.com/tomtom215/castmatch/internal/recommend"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/recommend/personalize"
	"github.com/tomtom215/castmatch/internal/recommend/semantic"
	"github.com/tomtom215/castmatch/internal/session"
)

// Engines holds the ranking pipeline.
type Engines struct {
	Context     *recommend.EngineContext
	Intent      *intent.Engine
	Semantic    *semantic.Engine
	Personal    *personalize.Engine
	Recommender *recommend.Engine
}

// catalogRepository picks the file repository, or the embedded catalog
// when no path is configured.
func catalogRepository(cfg *config.CatalogConfig) catalog.Repository {
	if cfg.Path == "" {
		return catalog.EmbeddedRepository{}
	}
	return catalog.NewFileRepository(cfg.Path)
}

func intentConfig(cfg *config.IntentConfig) intent.Config {
	out := intent.DefaultConfig()
	out.DefaultConfidence = cfg.DefaultConfidence
	out.HintConfidence = cfg.HintConfidence
	out.AmbiguityThreshold = cfg.AmbiguityThreshold
	out.AmbiguityPenalty = cfg.AmbiguityPenalty
	out.HighConfidenceThreshold = cfg.HighConfidenceThreshold
	out.HighConfidenceBonus = cfg.HighConfidenceBonus
	out.ResolveThreshold = cfg.ResolveThreshold
	return out
}

func semanticConfig(cfg *config.SemanticConfig) semantic.Config {
	out := semantic.DefaultConfig()
	out.ConceptThreshold = cfg.ConceptThreshold
	out.DefaultTopK = cfg.DefaultTopK
	out.CacheSize = cfg.CacheSize
	return out
}

func personalizeConfig(cfg *config.PersonalizeConfig, ttl *config.SessionConfig) personalize.Config {
	out := personalize.DefaultConfig()
	out.HalfLife = cfg.HalfLife
	out.BoostFactor = cfg.BoostFactor
	out.DampingFactor = cfg.DampingFactor
	out.ThemeMinCount = cfg.ThemeMinCount
	out.SessionTTL = ttl.TTL
	return out
}

func rankingConfig(cfg *config.RankingConfig) *recommend.Config {
	out := recommend.DefaultConfig()
	out.Base = recommend.Weights{
		Intent:          cfg.IntentWeight,
		Semantic:        cfg.SemanticWeight,
		Personalization: cfg.PersonalWeight,
	}
	out.PersonalStep = cfg.PersonalStep
	out.PersonalCapInteractions = cfg.PersonalCapInteractions
	out.PartialMatchCredit = cfg.PartialMatchCredit
	out.CorroborationBoost = cfg.CorroborationBoost
	out.WarmingThreshold = cfg.WarmingThreshold
	out.PersonalizedThreshold = cfg.PersonalizedThreshold
	return out
}

// sessionOptions maps the session section onto store options.
func sessionOptions(cfg *config.SessionConfig) session.Options {
	return session.Options{
		Type:            session.StoreType(cfg.Store),
		Path:            cfg.Path,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
	}
}

// buildEngines loads the catalog and vocabulary and constructs every
// engine over store. A catalog failure is returned as is so main can
// treat it as fatal.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildEngines(ctx context.Context, cfg *config.Config, store session.Store, logger zerolog.Logger) (*Engines, error) {
	ec, err := recommend.NewEngineContext(ctx, catalogRepository(&cfg.Catalog), cfg.Semantic.VocabularyPath, logger)
	if err != nil {
		return nil, err
	}

	ie, err := intent.NewEngine(intentConfig(&cfg.Intent), logger)
	if err != nil {
		return nil, fmt.Errorf("intent engine: %w", err)
	}
	se, err := semantic.NewEngine(ec.Catalog, ec.Vocabulary, semanticConfig(&cfg.Semantic), logger)
	if err != nil {
		return nil, fmt.Errorf("semantic engine: %w", err)
	}
	pe, err := personalize.NewEngine(store, ec.Catalog, personalizeConfig(&cfg.Personalize, &cfg.Session), logger)
	if err != nil {
		return nil, fmt.Errorf("personalization engine: %w", err)
	}
	re, err := recommend.NewEngine(ec, ie, se, pe, rankingConfig(&cfg.Ranking), logger)
	if err != nil {
		return nil, fmt.Errorf("ranking integrator: %w", err)
	}

	return &Engines{
		Context:     ec,
		Intent:      ie,
		Semantic:    se,
		Personal:    pe,
		Recommender: re,
	}, nil
}
