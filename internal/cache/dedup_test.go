// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestDedupCacheFirstSightIsNotDuplicate(t *testing.T) {
	c := NewDedupCache(10, time.Minute)

	if c.IsDuplicate("user-1|42|view") {
		t.Error("Expected first sighting to not be a duplicate")
	}
	if !c.IsDuplicate("user-1|42|view") {
		t.Error("Expected second sighting to be a duplicate")
	}

	// A different engagement by the same user is distinct
	if c.IsDuplicate("user-1|42|share") {
		t.Error("Expected a different engagement type to not be a duplicate")
	}
}

func TestDedupCacheExpiry(t *testing.T) {
	c := NewDedupCache(10, 100*time.Millisecond)

	if c.IsDuplicate("user-1|42|view") {
		t.Error("Expected first sighting to not be a duplicate")
	}

	time.Sleep(150 * time.Millisecond)

	// After the debounce window the same engagement counts as new
	if c.IsDuplicate("user-1|42|view") {
		t.Error("Expected expired key to count as new")
	}
}

func TestDedupCacheContains(t *testing.T) {
	c := NewDedupCache(10, time.Minute)

	if c.Contains("user-1|42|view") {
		t.Error("Expected Contains to be false before any sighting")
	}

	c.IsDuplicate("user-1|42|view")

	if !c.Contains("user-1|42|view") {
		t.Error("Expected Contains to be true after sighting")
	}

	// Contains must not record
	if c.Contains("user-2|42|view") {
		t.Error("Expected Contains to not record the probed key")
	}
	if c.IsDuplicate("user-2|42|view") {
		t.Error("Expected key probed via Contains to still count as new")
	}
}

func TestDedupCacheRemove(t *testing.T) {
	c := NewDedupCache(10, time.Minute)

	c.IsDuplicate("key")

	if !c.Remove("key") {
		t.Error("Expected Remove to return true for tracked key")
	}
	if c.Remove("key") {
		t.Error("Expected Remove to return false for untracked key")
	}
	if c.IsDuplicate("key") {
		t.Error("Expected removed key to count as new")
	}
}

func TestDedupCacheEvictsLeastRecentlySeen(t *testing.T) {
	c := NewDedupCache(3, time.Minute)

	c.IsDuplicate("a")
	c.IsDuplicate("b")
	c.IsDuplicate("c")

	// Touch a so b becomes the least recently seen
	c.IsDuplicate("a")

	// Capacity overflow evicts b
	c.IsDuplicate("d")

	if c.Contains("b") {
		t.Error("Expected b (least recently seen) to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if !c.Contains(key) {
			t.Errorf("Expected %s to survive eviction", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Expected length 3, got %d", c.Len())
	}
}

func TestDedupCacheCleanupExpired(t *testing.T) {
	c := NewDedupCache(10, 50*time.Millisecond)

	c.IsDuplicate("old1")
	c.IsDuplicate("old2")

	time.Sleep(100 * time.Millisecond)

	removed := c.CleanupExpired()
	if removed != 2 {
		t.Errorf("Expected 2 expired keys removed, got %d", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty tracker after cleanup, got %d", c.Len())
	}
}

func TestDedupCacheClear(t *testing.T) {
	c := NewDedupCache(10, time.Minute)

	c.IsDuplicate("a")
	c.IsDuplicate("b")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty tracker after Clear, got %d", c.Len())
	}
}

func TestDedupCacheStats(t *testing.T) {
	c := NewDedupCache(10, time.Minute)

	c.IsDuplicate("a") // new -> miss
	c.IsDuplicate("a") // duplicate -> hit
	c.IsDuplicate("b") // new -> miss

	hits, misses, size := c.Stats()
	if hits != 1 {
		t.Errorf("Expected 1 duplicate sighting, got %d", hits)
	}
	if misses != 2 {
		t.Errorf("Expected 2 first sightings, got %d", misses)
	}
	if size != 2 {
		t.Errorf("Expected 2 tracked keys, got %d", size)
	}
}

func TestDedupCacheConcurrency(t *testing.T) {
	c := NewDedupCache(1000, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.IsDuplicate(fmt.Sprintf("user-%d|%d|view", id, j%10))
			}
		}(i)
	}
	wg.Wait()

	// 10 goroutines x 10 distinct keys each
	if c.Len() != 100 {
		t.Errorf("Expected 100 tracked keys, got %d", c.Len())
	}
}
