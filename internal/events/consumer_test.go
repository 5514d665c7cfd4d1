// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/agora-civic/agora/internal/cache"
)

func newTestConsumer(t *testing.T) *ActivityConsumer {
	t.Helper()
	tracker := cache.NewActivityTracker(time.Hour, 60, 1000)
	dedup := cache.NewDedupCache(1000, time.Hour)
	return NewActivityConsumer(tracker, dedup, zerolog.Nop())
}

func mustMessage(t *testing.T, event *EngagementRecorded) *message.Message {
	t.Helper()
	payload, err := event.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return message.NewMessage(event.EventID, payload)
}

func TestActivityConsumer_Handle(t *testing.T) {
	consumer := newTestConsumer(t)
	event := NewEngagementRecorded("user-1", 42, "view", time.Now().UTC())

	if err := consumer.Handle(mustMessage(t, event)); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := consumer.tracker.Count(PlatformActivityKey); got != 1 {
		t.Errorf("Expected platform count 1, got %d", got)
	}
	if got := consumer.tracker.Count(BillActivityKey(42)); got != 1 {
		t.Errorf("Expected bill count 1, got %d", got)
	}
	if got := consumer.tracker.UniqueUsers(PlatformActivityKey); got != 1 {
		t.Errorf("Expected 1 unique user, got %d", got)
	}

	stats := consumer.Stats()
	if stats.Received != 1 || stats.Processed != 1 {
		t.Errorf("Expected received=1 processed=1, got %+v", stats)
	}
}

func TestActivityConsumer_DedupsRepeatSightings(t *testing.T) {
	consumer := newTestConsumer(t)
	now := time.Now().UTC()

	// Same (user, bill, type) twice: distinct event IDs, one sighting.
	first := NewEngagementRecorded("user-1", 42, "view", now)
	second := NewEngagementRecorded("user-1", 42, "view", now.Add(time.Second))

	if err := consumer.Handle(mustMessage(t, first)); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if err := consumer.Handle(mustMessage(t, second)); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := consumer.tracker.Count(PlatformActivityKey); got != 1 {
		t.Errorf("Expected platform count 1 after repeat, got %d", got)
	}

	stats := consumer.Stats()
	if stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", stats.Duplicates)
	}
	if stats.Processed != 1 {
		t.Errorf("Expected 1 processed, got %d", stats.Processed)
	}
}

func TestActivityConsumer_DistinctTypesAreDistinctSightings(t *testing.T) {
	consumer := newTestConsumer(t)
	now := time.Now().UTC()

	if err := consumer.Handle(mustMessage(t, NewEngagementRecorded("user-1", 42, "view", now))); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if err := consumer.Handle(mustMessage(t, NewEngagementRecorded("user-1", 42, "comment", now))); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := consumer.tracker.Count(BillActivityKey(42)); got != 2 {
		t.Errorf("Expected bill count 2, got %d", got)
	}
	if got := consumer.tracker.UniqueUsers(BillActivityKey(42)); got != 1 {
		t.Errorf("Expected 1 unique user, got %d", got)
	}
}

func TestActivityConsumer_AcksMalformedPayload(t *testing.T) {
	consumer := newTestConsumer(t)

	msg := message.NewMessage("bad-1", []byte("not json"))
	if err := consumer.Handle(msg); err != nil {
		t.Fatalf("Expected nil error for malformed payload, got %v", err)
	}

	stats := consumer.Stats()
	if stats.ParseFailures != 1 {
		t.Errorf("Expected 1 parse failure, got %d", stats.ParseFailures)
	}
	if stats.Processed != 0 {
		t.Errorf("Expected 0 processed, got %d", stats.Processed)
	}
	if got := consumer.tracker.Count(PlatformActivityKey); got != 0 {
		t.Errorf("Expected no activity recorded, got %d", got)
	}
}

func TestActivityConsumer_AcksInvalidEvent(t *testing.T) {
	consumer := newTestConsumer(t)

	payload := []byte(`{"event_id":"evt-1","user_id":"","bill_id":7,"type":"view","occurred_at":"2026-03-14T15:09:00Z"}`)
	if err := consumer.Handle(message.NewMessage("evt-1", payload)); err != nil {
		t.Fatalf("Expected nil error for invalid event, got %v", err)
	}
	if got := consumer.Stats().ParseFailures; got != 1 {
		t.Errorf("Expected 1 parse failure, got %d", got)
	}
}

func TestActivityConsumer_PlatformActivity(t *testing.T) {
	consumer := newTestConsumer(t)
	now := time.Now().UTC()

	users := []string{"user-1", "user-2", "user-2"}
	bills := []int64{1, 1, 2}
	for i := range users {
		event := NewEngagementRecorded(users[i], bills[i], "view", now)
		if err := consumer.Handle(mustMessage(t, event)); err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
	}

	count, unique := consumer.PlatformActivity()
	if count != 3 {
		t.Errorf("Expected platform count 3, got %d", count)
	}
	if unique != 2 {
		t.Errorf("Expected 2 unique users, got %d", unique)
	}
}

func TestActivityConsumer_HottestBill(t *testing.T) {
	consumer := newTestConsumer(t)
	now := time.Now().UTC()

	// Bill 2 gets two sightings, bill 1 gets one.
	for _, e := range []*EngagementRecorded{
		NewEngagementRecorded("user-1", 1, "view", now),
		NewEngagementRecorded("user-1", 2, "view", now),
		NewEngagementRecorded("user-2", 2, "share", now),
	} {
		if err := consumer.Handle(mustMessage(t, e)); err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
	}

	key, count := consumer.HottestBill()
	if key != "bill:2" {
		t.Errorf("Expected bill:2, got %s", key)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestActivityConsumer_HottestBill_Empty(t *testing.T) {
	consumer := newTestConsumer(t)
	key, count := consumer.HottestBill()
	if key != "" || count != 0 {
		t.Errorf("Expected empty result, got key=%s count=%d", key, count)
	}
}
