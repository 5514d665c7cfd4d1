// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package cache provides the in-memory caching and activity-tracking
// structures behind the recommendation service.
//
// # Response caching
//
// The Cacher interface abstracts over two strategies selected by
// configuration:
//
//   - Cache: TTL map with background cleanup. The default; fine when
//     request traffic is spread evenly across users and bills.
//   - LFUCache: frequency-based eviction with a bounded capacity. Better
//     when a small share of users and bills draws most requests, which is
//     what production engagement traffic looks like.
//
// The recommendation engine stores ranked responses under structured
// keys ("rec:user:<id>:personalized:<limit>", "rec:trending:<days>:<limit>")
// and invalidates per-user state with DeleteByPrefix after engagements.
//
//	c := cache.NewCacher(cache.CacheConfig{Type: cache.CacheTypeLFU, TTL: 5 * time.Minute})
//	c.SetWithTTL("rec:user:alice:personalized:10", ranked, 5*time.Minute)
//	c.DeleteByPrefix("rec:user:alice:")
//
// # Engagement activity structures
//
// Two further structures serve the engagement event pipeline rather than
// response caching:
//
//   - DedupCache: an LRU set with TTL that debounces repeated identical
//     engagements so one user's rapid re-clicks do not register as a
//     burst of distinct activity.
//   - ActivityWindow / ActivityTracker: time-bucketed sliding counters
//     of recent engagement per bill, with unique-user tracking. The
//     trending refresher consults them to warm the trending cache early
//     when activity spikes.
//
// All structures are safe for concurrent use.
package cache
