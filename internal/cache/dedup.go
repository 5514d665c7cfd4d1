// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package cache

import (
	"sync"
	"time"
)

// dedupEntry is a node in the dedup cache's recency list.
type dedupEntry struct {
	key       string
	seenAt    time.Time
	prev      *dedupEntry
	next      *dedupEntry
	expiresAt time.Time
}

// DedupCache is a thread-safe LRU set with TTL, used to debounce repeated
// events. The engagement pipeline feeds every recorded engagement through
// it so a user hammering the same bill does not look like a burst of
// distinct activity to the trending refresher.
//
// Key features:
//   - O(1) IsDuplicate, Remove and eviction
//   - TTL makes a key count as new again after the debounce window
//   - LRU eviction bounds memory when key cardinality spikes
//
// A doubly-linked list keeps recency order, a hashmap gives O(1) lookups.
type DedupCache struct {
	mu sync.RWMutex

	// capacity is the maximum number of tracked keys
	capacity int

	// ttl is how long a key counts as a duplicate after first sight
	ttl time.Duration

	// items maps keys to linked list nodes for O(1) lookup
	items map[string]*dedupEntry

	// head and tail are sentinel nodes for the doubly-linked list
	// head.next is the most recently seen, tail.prev the least recently seen
	head *dedupEntry
	tail *dedupEntry

	// stats
	hits   int64
	misses int64
}

// NewDedupCache creates a dedup cache with the given capacity and debounce TTL.
func NewDedupCache(capacity int, ttl time.Duration) *DedupCache {
	if capacity <= 0 {
		capacity = 10000 // Default capacity
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute // Default debounce window
	}

	c := &DedupCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*dedupEntry, capacity),
		head:     &dedupEntry{},
		tail:     &dedupEntry{},
	}

	// Initialize linked list sentinels
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// IsDuplicate reports whether the key was seen within the debounce window.
// If not, the key is recorded with the current timestamp so the next call
// within the TTL returns true.
//
// Example:
//
//	key := userID + "|" + itemID + "|" + engagementType
//	if !seen.IsDuplicate(key) {
//	    activity.Record(itemKey, userID)
//	}
func (c *DedupCache) IsDuplicate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	if entry, exists := c.items[key]; exists {
		if !now.After(entry.expiresAt) {
			// Not expired, this is a duplicate
			c.moveToFront(entry)
			c.hits++
			return true
		}
		// Expired, remove and treat as new
		c.removeEntry(entry)
	}

	// Not a duplicate, record it
	entry := &dedupEntry{
		key:       key,
		seenAt:    now,
		expiresAt: now.Add(c.ttl),
	}
	c.addToFront(entry)
	c.items[key] = entry

	// Evict if over capacity
	for len(c.items) > c.capacity {
		c.evictOldest()
	}

	c.misses++
	return false
}

// Contains checks whether a key is tracked and unexpired, without
// recording it or touching recency order.
func (c *DedupCache) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entry, exists := c.items[key]; exists {
		return !time.Now().After(entry.expiresAt)
	}
	return false
}

// Remove drops a key from the tracker.
// Returns true if the key was present.
func (c *DedupCache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the current number of tracked keys.
func (c *DedupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all tracked keys.
func (c *DedupCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*dedupEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired keys.
// Returns the number of keys removed.
func (c *DedupCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	// Walk from tail (oldest) to head (newest)
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	return removed
}

// Stats returns duplicate/new counts and the current size.
// Hits are duplicate sightings, misses are first sightings.
func (c *DedupCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

// addToFront adds an entry to the front of the list (most recently seen).
func (c *DedupCache) addToFront(entry *dedupEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

// moveToFront moves an existing entry to the front of the list.
func (c *DedupCache) moveToFront(entry *dedupEntry) {
	// Remove from current position
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	// Add to front
	c.addToFront(entry)
}

// removeEntry removes an entry from both the list and the map.
func (c *DedupCache) removeEntry(entry *dedupEntry) {
	// Remove from list
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	// Remove from map
	delete(c.items, entry.key)
}

// evictOldest removes the least recently seen entry.
func (c *DedupCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return // List is empty
	}
	c.removeEntry(oldest)
}
