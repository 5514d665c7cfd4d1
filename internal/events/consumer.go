// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/agora-civic/agora/internal/cache"
	"github.com/agora-civic/agora/internal/metrics"
)

// ActivityConsumer feeds engagement events into the sliding-window activity
// tracker that drives burst detection. It tracks two key families: one
// platform-wide key and one key per bill, both counting distinct users.
//
// Repeat engagements by the same (user, bill, type) within the dedup window
// are counted once, so a single account refreshing a bill page cannot
// manufacture a burst.
type ActivityConsumer struct {
	tracker *cache.ActivityTracker
	dedup   *cache.DedupCache
	logger  zerolog.Logger

	received   atomic.Int64
	processed  atomic.Int64
	duplicates atomic.Int64
	parseFails atomic.Int64
}

// NewActivityConsumer creates a consumer recording into tracker with dedup
// debouncing.
func NewActivityConsumer(tracker *cache.ActivityTracker, dedup *cache.DedupCache, logger zerolog.Logger) *ActivityConsumer {
	return &ActivityConsumer{
		tracker: tracker,
		dedup:   dedup,
		logger:  logger,
	}
}

// Handle processes one engagement message. It always acks: malformed
// payloads cannot be fixed by redelivery, and activity recording cannot
// fail.
func (c *ActivityConsumer) Handle(msg *message.Message) error {
	start := time.Now()
	c.received.Add(1)

	event, err := ParseEngagement(msg.Payload)
	if err != nil {
		c.parseFails.Add(1)
		metrics.RecordEventParseFailed()
		c.logger.Warn().
			Err(err).
			Str("message_uuid", msg.UUID).
			Msg("Dropping unparseable engagement event")
		return nil
	}

	if c.dedup.IsDuplicate(event.DedupKey()) {
		c.duplicates.Add(1)
		metrics.RecordEngagementDuplicate()
		c.logger.Debug().
			Str("event_id", event.EventID).
			Str("dedup_key", event.DedupKey()).
			Msg("Skipping repeat engagement sighting")
		return nil
	}

	c.tracker.Record(PlatformActivityKey, event.UserID)
	c.tracker.Record(BillActivityKey(event.BillID), event.UserID)

	c.processed.Add(1)
	metrics.RecordEventConsumed(time.Since(start))
	c.logger.Trace().
		Str("event_id", event.EventID).
		Int64("bill_id", event.BillID).
		Str("type", event.Type).
		Msg("Engagement event tracked")
	return nil
}

// PlatformActivity reports current window totals for the platform-wide key.
func (c *ActivityConsumer) PlatformActivity() (count int64, uniqueUsers int) {
	return c.tracker.Count(PlatformActivityKey), c.tracker.UniqueUsers(PlatformActivityKey)
}

// HottestBill returns the bill key with the highest windowed count, or
// ("", 0) when no bill activity is tracked.
func (c *ActivityConsumer) HottestBill() (key string, count int64) {
	for _, k := range c.tracker.Keys() {
		if k == PlatformActivityKey {
			continue
		}
		if n := c.tracker.Count(k); n > count {
			key, count = k, n
		}
	}
	return key, count
}

// ConsumerStats is a point-in-time snapshot of consumer counters.
type ConsumerStats struct {
	Received      int64 `json:"received"`
	Processed     int64 `json:"processed"`
	Duplicates    int64 `json:"duplicates"`
	ParseFailures int64 `json:"parse_failures"`
}

// Stats returns the consumer's counters.
func (c *ActivityConsumer) Stats() ConsumerStats {
	return ConsumerStats{
		Received:      c.received.Load(),
		Processed:     c.processed.Load(),
		Duplicates:    c.duplicates.Load(),
		ParseFailures: c.parseFails.Load(),
	}
}
