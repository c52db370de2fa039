// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package catalog

import (
	"sort"
	"strings"
)

// Item is one selectable character asset. Items are immutable once a
// Catalog is built.
type Item struct {
	ID          string            `json:"id" yaml:"id" validate:"required,max=64,itemid"`
	DisplayName string            `json:"display_name" yaml:"display_name" validate:"required,max=128"`
	Tags        []string          `json:"tags" yaml:"tags" validate:"required,min=1,dive,slug,max=32"`
	Description string            `json:"description" yaml:"description" validate:"max=2000"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata" validate:"omitempty,dive,keys,oneof=style purpose motion,endkeys,required"`
}

// HasTag reports whether the item carries tag (lower-case).
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Facet returns a metadata value, or "" when absent.
func (i *Item) Facet(key string) string {
	return i.Metadata[key]
}

// clone deep-copies the slices and map so callers cannot alias catalog state.
func (i *Item) clone() Item {
	out := *i
	out.Tags = append([]string(nil), i.Tags...)
	if i.Metadata != nil {
		out.Metadata = make(map[string]string, len(i.Metadata))
		for k, v := range i.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// normalize lower-cases and deduplicates tags and metadata, keeping the
// first occurrence of each tag.
func (i *Item) normalize() {
	i.ID = strings.TrimSpace(i.ID)
	i.DisplayName = strings.TrimSpace(i.DisplayName)
	i.Description = strings.TrimSpace(i.Description)

	seen := make(map[string]struct{}, len(i.Tags))
	tags := make([]string, 0, len(i.Tags))
	for _, t := range i.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	i.Tags = tags

	if len(i.Metadata) > 0 {
		meta := make(map[string]string, len(i.Metadata))
		for k, v := range i.Metadata {
			meta[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
		}
		i.Metadata = meta
	}
}

// metadataKeys returns the metadata keys sorted, for stable logging.
func (i *Item) metadataKeys() []string {
	keys := make([]string, 0, len(i.Metadata))
	for k := range i.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
