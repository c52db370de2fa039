// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRUBasicOperations(t *testing.T) {
	c := NewLRU[int](3)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	c.Add("a", 10)
	if got, _ := c.Get("a"); got != 10 {
		t.Errorf("Get(a) after update = %d, want 10", got)
	}
	if c.Len() != 3 {
		t.Errorf("Len() after update = %d, want 3", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[string](3)
	c.Add("a", "a")
	c.Add("b", "b")
	c.Add("c", "c")

	// Touch a so b becomes the oldest.
	c.Get("a")
	c.Add("d", "d")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should be present", key)
		}
	}
}

func TestLRURemoveAndClear(t *testing.T) {
	c := NewLRU[int](4)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	// The list is usable after Clear.
	c.Add("x", 9)
	if got, ok := c.Get("x"); !ok || got != 9 {
		t.Errorf("Get(x) after Clear = %d, %v", got, ok)
	}
}

func TestLRUGetOrComputeAndStats(t *testing.T) {
	c := NewLRU[[]float64](2)
	calls := 0
	compute := func() []float64 {
		calls++
		return []float64{0.5}
	}

	if _, hit := c.GetOrCompute("q", compute); hit {
		t.Error("first GetOrCompute reported a hit")
	}
	if v, hit := c.GetOrCompute("q", compute); !hit || v[0] != 0.5 {
		t.Errorf("second GetOrCompute = %v, %v; want cached value", v, hit)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 1", hits, misses, size)
	}
}

func TestNewLRUDefaultCapacity(t *testing.T) {
	c := NewLRU[int](0)
	for i := 0; i < 300; i++ {
		c.Add(fmt.Sprint(i), i)
	}
	if c.Len() != 256 {
		t.Errorf("Len() = %d, want default capacity 256", c.Len())
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	c := NewLRU[int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%80)
				c.GetOrCompute(key, func() int { return i })
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
