// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func sampleItems() []Item {
	return []Item{
		{
			ID:          "walking",
			DisplayName: "Walking",
			Tags:        []string{"Walking", "walk", "walk", " motion "},
			Metadata:    map[string]string{"Motion": "Walking"},
		},
		{
			ID:          "idle",
			DisplayName: "Idle",
			Tags:        []string{"idle"},
		},
	}
}

func TestNewNormalizes(t *testing.T) {
	c, err := New(sampleItems())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	item, err := c.Get("walking")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := []string{"walking", "walk", "motion"}
	if len(item.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", item.Tags, want)
	}
	for i := range want {
		if item.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, item.Tags[i], want[i])
		}
	}
	if got := item.Facet("motion"); got != "walking" {
		t.Errorf("Facet(motion) = %q, want walking", got)
	}
	if !item.HasTag("motion") || item.HasTag("run") {
		t.Errorf("HasTag mismatch for %v", item.Tags)
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	items := sampleItems()
	c, err := New(items)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	items[0].Tags[0] = "changed"
	items[0].Metadata["Motion"] = "running"

	item, _ := c.Get("walking")
	if item.Tags[0] != "walking" || item.Facet("motion") != "walking" {
		t.Errorf("catalog item changed through caller slice: %+v", item)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"empty", nil},
		{"duplicate id", []Item{
			{ID: "a", DisplayName: "A", Tags: []string{"x"}},
			{ID: "a", DisplayName: "A2", Tags: []string{"y"}},
		}},
		{"missing tags", []Item{{ID: "a", DisplayName: "A"}}},
		{"id with spaces", []Item{{ID: "Not A Slug!", DisplayName: "A", Tags: []string{"x"}}}},
		{"id with path separator", []Item{{ID: "chars/walking", DisplayName: "A", Tags: []string{"x"}}}},
		{"missing display name", []Item{{ID: "a", Tags: []string{"x"}}}},
		{"unknown metadata key", []Item{
			{ID: "a", DisplayName: "A", Tags: []string{"x"}, Metadata: map[string]string{"color": "red"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items)
			if !errors.Is(err, ErrCatalogUnavailable) {
				t.Errorf("New() error = %v, want ErrCatalogUnavailable", err)
			}
		})
	}
}

func TestNewKeepsItemIDsVerbatim(t *testing.T) {
	c, err := New([]Item{
		{
			ID:          "Walking",
			DisplayName: "Walking",
			Tags:        []string{"walking", "walk", "motion", "animation"},
		},
		{ID: "Idle.fbx", DisplayName: "Idle", Tags: []string{"idle"}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, id := range []string{"Walking", "Idle.fbx"} {
		item, err := c.Get(id)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", id, err)
		}
		if item.ID != id {
			t.Errorf("ID = %q, want %q", item.ID, id)
		}
	}
	if c.Contains("walking") {
		t.Error("IDs are case-sensitive keys; walking should not match Walking")
	}
}

func TestCatalogLookup(t *testing.T) {
	c, err := New(sampleItems())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if ids := c.IDs(); ids[0] != "walking" || ids[1] != "idle" {
		t.Errorf("IDs() = %v, want insertion order", ids)
	}
	if c.Position("idle") != 1 || c.Position("nope") != -1 {
		t.Errorf("Position mismatch")
	}
	if !c.Contains("idle") || c.Contains("nope") {
		t.Errorf("Contains mismatch")
	}
	if _, err := c.Get("nope"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrItemNotFound", err)
	}
}

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Open(context.Background(), EmbeddedRepository{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if c.Len() < 5 || c.Len() > 20 {
		t.Errorf("Len() = %d, want 5..20", c.Len())
	}
	if c.Items()[0].ID != "walking" {
		t.Errorf("first item = %q, want walking", c.Items()[0].ID)
	}
	for _, item := range c.Items() {
		if len(item.Metadata) != 3 {
			t.Errorf("item %q has %d facets, want 3", item.ID, len(item.Metadata))
		}
	}
}

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "catalog.yaml")
	yamlDoc := "items:\n  - id: wave\n    display_name: Wave\n    tags: [wave]\n"
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "catalog.json")
	jsonDoc := `{"items":[{"id":"wave","display_name":"Wave","tags":["wave"]}]}`
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{yamlPath, jsonPath} {
		c, err := Open(context.Background(), NewFileRepository(path), zerolog.Nop())
		if err != nil {
			t.Fatalf("Open(%s) error = %v", path, err)
		}
		if !c.Contains("wave") {
			t.Errorf("Open(%s) missing item wave", path)
		}
	}
}

func TestFileRepositoryErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "catalog.txt")
	if err := os.WriteFile(txt, []byte("items: []"), 0o600); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("items: [:"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), txt, broken} {
		_, err := Open(context.Background(), NewFileRepository(path), zerolog.Nop())
		if !errors.Is(err, ErrCatalogUnavailable) {
			t.Errorf("Open(%s) error = %v, want ErrCatalogUnavailable", path, err)
		}
	}
}

func TestOpenKeepsUnknownFacetValues(t *testing.T) {
	repo := StaticRepository{Items: []Item{
		{ID: "a", DisplayName: "A", Tags: []string{"x"}, Metadata: map[string]string{"motion": "swimming"}},
	}}
	c, err := Open(context.Background(), repo, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	item, _ := c.Get("a")
	if item.Facet("motion") != "swimming" {
		t.Errorf("Facet(motion) = %q, want swimming kept as-is", item.Facet("motion"))
	}
}
