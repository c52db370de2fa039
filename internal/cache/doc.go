// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

/*
Package cache provides a bounded, thread-safe LRU cache.

The semantic engine uses it to memoize per-query similarity scores. The
catalog and vocabulary are immutable after startup, so an entry never goes
stale and no TTL is needed; the capacity bound alone keeps memory flat.

# Usage

	c := cache.NewLRU[[]float64](256)
	scores, hit := c.GetOrCompute(query, func() []float64 {
	    return computeScores(query)
	})

Cached values are shared between callers and must be treated as
read-only.
*/
package cache
