// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package cache

import (
	"sync"
	"time"
)

// ActivityWindow counts recent engagement activity in a sliding window
// using time-bucketed circular buffers. Alongside the raw count it tracks
// which users contributed, so burst detection can require breadth (many
// users) and not just volume (one user clicking in a loop).
//
// Complexity:
//   - Record: O(1)
//   - Count: O(k) where k = number of buckets (typically 10-60)
//   - UniqueUsers: O(n) over users seen in the window
//   - Memory: O(k + n) per window
type ActivityWindow struct {
	mu         sync.Mutex
	counts     []int64               // circular buffer of bucket counts
	users      []map[string]struct{} // circular buffer of per-bucket user sets
	bucketSize time.Duration         // duration of each bucket
	windowSize time.Duration         // total window duration
	numBuckets int                   // number of buckets
	current    int                   // current bucket index
	lastUpdate time.Time             // last update time
}

// NewActivityWindow creates a sliding activity window divided into the
// specified number of buckets.
//
// Example: NewActivityWindow(15*time.Minute, 15) tracks the last fifteen
// minutes with one-minute buckets.
func NewActivityWindow(windowSize time.Duration, numBuckets int) *ActivityWindow {
	if numBuckets <= 0 {
		numBuckets = 10
	}
	if windowSize <= 0 {
		windowSize = 5 * time.Minute
	}

	users := make([]map[string]struct{}, numBuckets)
	for i := range users {
		users[i] = make(map[string]struct{})
	}

	return &ActivityWindow{
		counts:     make([]int64, numBuckets),
		users:      users,
		bucketSize: windowSize / time.Duration(numBuckets),
		windowSize: windowSize,
		numBuckets: numBuckets,
		current:    0,
		lastUpdate: time.Now(),
	}
}

// Record adds one engagement to the current bucket. An empty userID still
// counts toward volume but not toward the unique-user set.
func (w *ActivityWindow) Record(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.advance()
	w.counts[w.current]++
	if userID != "" {
		w.users[w.current][userID] = struct{}{}
	}
}

// Count returns the engagement count across all buckets in the window.
func (w *ActivityWindow) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.advance()

	var total int64
	for _, count := range w.counts {
		total += count
	}
	return total
}

// UniqueUsers returns the number of distinct users seen in the window.
func (w *ActivityWindow) UniqueUsers() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.advance()

	merged := make(map[string]struct{})
	for _, bucket := range w.users {
		for user := range bucket {
			merged[user] = struct{}{}
		}
	}
	return len(merged)
}

// Reset clears all buckets.
func (w *ActivityWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.counts {
		w.counts[i] = 0
		w.users[i] = make(map[string]struct{})
	}
	w.current = 0
	w.lastUpdate = time.Now()
}

// advance moves the window forward based on elapsed time.
// Must be called with lock held.
func (w *ActivityWindow) advance() {
	now := time.Now()
	elapsed := now.Sub(w.lastUpdate)

	// Calculate how many buckets have elapsed
	bucketsElapsed := int(elapsed / w.bucketSize)

	if bucketsElapsed <= 0 {
		return
	}

	// Clear buckets that have expired
	if bucketsElapsed >= w.numBuckets {
		// Entire window has elapsed, clear all
		for i := range w.counts {
			w.counts[i] = 0
			w.users[i] = make(map[string]struct{})
		}
		w.current = 0
	} else {
		// Clear only the elapsed buckets
		for i := 0; i < bucketsElapsed; i++ {
			w.current = (w.current + 1) % w.numBuckets
			w.counts[w.current] = 0
			w.users[w.current] = make(map[string]struct{})
		}
	}

	w.lastUpdate = now
}

// ActivityTracker manages per-item activity windows. The engagement
// subscriber records into it and the trending refresher reads it to
// decide whether recent activity justifies warming the trending cache
// ahead of schedule.
//
// Example usage:
//
//	tracker := NewActivityTracker(15*time.Minute, 15, 50000)
//	tracker.Record("bill:421", "user-7")
//	if tracker.TotalCount() >= burstThreshold { ... }
type ActivityTracker struct {
	mu         sync.RWMutex
	windows    map[string]*ActivityWindow
	windowSize time.Duration
	numBuckets int
	maxKeys    int // maximum number of keys (0 = unlimited)
}

// NewActivityTracker creates a tracker for per-item activity windows.
func NewActivityTracker(windowSize time.Duration, numBuckets, maxKeys int) *ActivityTracker {
	return &ActivityTracker{
		windows:    make(map[string]*ActivityWindow),
		windowSize: windowSize,
		numBuckets: numBuckets,
		maxKeys:    maxKeys,
	}
}

// Record adds one engagement by userID to the window for key.
func (t *ActivityTracker) Record(key, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	window, exists := t.windows[key]
	if !exists {
		// Evict an arbitrary window if at capacity
		if t.maxKeys > 0 && len(t.windows) >= t.maxKeys {
			t.evictOne()
		}

		window = NewActivityWindow(t.windowSize, t.numBuckets)
		t.windows[key] = window
	}

	window.Record(userID)
}

// Count returns the windowed engagement count for the given key.
func (t *ActivityTracker) Count(key string) int64 {
	t.mu.RLock()
	window, exists := t.windows[key]
	t.mu.RUnlock()

	if !exists {
		return 0
	}
	return window.Count()
}

// UniqueUsers returns the number of distinct users engaged with key
// within the window.
func (t *ActivityTracker) UniqueUsers(key string) int {
	t.mu.RLock()
	window, exists := t.windows[key]
	t.mu.RUnlock()

	if !exists {
		return 0
	}
	return window.UniqueUsers()
}

// TotalCount returns the summed windowed count across all keys.
func (t *ActivityTracker) TotalCount() int64 {
	t.mu.RLock()
	windows := make([]*ActivityWindow, 0, len(t.windows))
	for _, window := range t.windows {
		windows = append(windows, window)
	}
	t.mu.RUnlock()

	var total int64
	for _, window := range windows {
		total += window.Count()
	}
	return total
}

// Keys returns all tracked keys.
func (t *ActivityTracker) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.windows))
	for key := range t.windows {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of tracked keys.
func (t *ActivityTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.windows)
}

// Clear removes all windows from the tracker.
func (t *ActivityTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windows = make(map[string]*ActivityWindow)
}

// CleanupInactive removes windows with no activity left in them.
// Returns the number of windows removed.
func (t *ActivityTracker) CleanupInactive() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, window := range t.windows {
		if window.Count() == 0 {
			delete(t.windows, key)
			removed++
		}
	}
	return removed
}

// evictOne removes an arbitrary window when at capacity.
// Must be called with lock held.
func (t *ActivityTracker) evictOne() {
	for key := range t.windows {
		delete(t.windows, key)
		return
	}
}
