// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package catalog loads and holds the read-only set of character assets the
// ranking pipeline chooses from.
//
// A Catalog is built once at startup from a Repository and shared without
// locking. Insertion order is preserved and is the tie-break order for every
// ranking in the system.
package catalog

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable marks any failure to produce a usable catalog.
// Startup treats it as fatal.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ErrItemNotFound is returned by Get for an unknown ID.
var ErrItemNotFound = errors.New("catalog item not found")

// Catalog is an ordered, immutable set of items.
type Catalog struct {
	items []Item
	index map[string]int
}

// New builds a Catalog from items after normalizing and validating them.
// An empty item list is an error.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrCatalogUnavailable)
	}

	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for n := range items {
		item := items[n].clone()
		item.normalize()
		if err := validateItem(&item); err != nil {
			return nil, fmt.Errorf("%w: item %d (%q): %v", ErrCatalogUnavailable, n, item.ID, err)
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrCatalogUnavailable, item.ID)
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the items in insertion order. The slice is shared and must
// not be modified.
func (c *Catalog) Items() []Item {
	return c.items
}

// IDs returns item IDs in insertion order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.items))
	for i := range c.items {
		ids[i] = c.items[i].ID
	}
	return ids
}

// Get returns the item with the given ID.
func (c *Catalog) Get(id string) (*Item, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, id)
	}
	return &c.items[i], nil
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Position returns the insertion index of id, or -1.
func (c *Catalog) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}
