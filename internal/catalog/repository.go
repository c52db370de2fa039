// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/validation"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Repository supplies catalog items. Load is called once at startup.
type Repository interface {
	Load(ctx context.Context) ([]Item, error)
}

// document is the on-disk layout shared by the YAML and JSON formats.
type document struct {
	Items []Item `json:"items" yaml:"items"`
}

// FileRepository reads a catalog from a .yaml, .yml or .json file.
type FileRepository struct {
	path string
}

// NewFileRepository returns a repository for path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads and decodes the file.
func (r *FileRepository) Load(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(r.path)); ext {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".json":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
}

// EmbeddedRepository serves the catalog compiled into the binary.
type EmbeddedRepository struct{}

// Load decodes the embedded catalog.
func (EmbeddedRepository) Load(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeYAML(defaultCatalogYAML)
}

// StaticRepository serves a fixed item list, mainly for tests.
type StaticRepository struct {
	Items []Item
}

// Load returns the configured items.
func (r StaticRepository) Load(context.Context) ([]Item, error) {
	return r.Items, nil
}

func decodeYAML(data []byte) ([]Item, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return doc.Items, nil
}

func decodeJSON(data []byte) ([]Item, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	return doc.Items, nil
}

func validateItem(item *Item) error {
	if verr := validation.ValidateStruct(item); verr != nil {
		return verr
	}
	return nil
}

// Open loads, validates and indexes a catalog. Every failure wraps
// ErrCatalogUnavailable.
//
// Metadata values outside the intent enumerations are kept but logged;
// ranking treats them as never matching.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, repo Repository, logger zerolog.Logger) (*Catalog, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	c, err := New(items)
	if err != nil {
		return nil, err
	}

	for idx := range c.items {
		item := &c.items[idx]
		for _, key := range item.metadataKeys() {
			if _, perr := intent.ParseValue(intent.Dimension(key), item.Metadata[key]); perr != nil {
				logger.Warn().
					Str("item", item.ID).
					Str("facet", key).
					Str("value", item.Metadata[key]).
					Msg("Unrecognized catalog facet; it will never match an intent")
			}
		}
	}

	logger.Info().Int("items", c.Len()).Msg("Catalog loaded")
	return c, nil
}
