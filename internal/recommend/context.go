// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/catalog"
	"github.com/tomtom215/castmatch/internal/recommend/vocab"
)

// EngineContext is the read-only domain state shared by every engine. It
// is built once at startup and never modified.
type EngineContext struct {
	Catalog    *catalog.Catalog
	Vocabulary *vocab.Vocabulary
}

// NewEngineContext loads the catalog from repo and the vocabulary from
// vocabPath, or the built-in table when vocabPath is empty.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngineContext(ctx context.Context, repo catalog.Repository, vocabPath string, logger zerolog.Logger) (*EngineContext, error) {
	cat, err := catalog.Open(ctx, repo, logger)
	if err != nil {
		return nil, err
	}

	var voc *vocab.Vocabulary
	if vocabPath != "" {
		voc, err = vocab.LoadFile(vocabPath)
	} else {
		voc, err = vocab.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	logger.Info().Int("words", voc.Len()).Int("synonyms", voc.SynonymCount()).Msg("Vocabulary loaded")

	return &EngineContext{Catalog: cat, Vocabulary: voc}, nil
}
