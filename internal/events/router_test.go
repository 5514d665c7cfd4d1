// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agora-civic/agora/internal/recommend"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(16, zerolog.Nop())
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscriber().Subscribe(ctx, TopicEngagements)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	event := NewEngagementRecorded("user-1", 42, "view", time.Now().UTC())
	if err := bus.Publisher().Publish(TopicEngagements, mustMessage(t, event)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		parsed, err := ParseEngagement(msg.Payload)
		if err != nil {
			t.Fatalf("ParseEngagement failed: %v", err)
		}
		if parsed.EventID != event.EventID {
			t.Errorf("Expected EventID=%s, got %s", event.EventID, parsed.EventID)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for message")
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	bus := NewBus(16, zerolog.Nop())
	defer bus.Close()

	consumer := newTestConsumer(t)
	router, err := NewRouter(bus, consumer, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- router.Run(ctx)
	}()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for router startup")
	}

	publisher := NewEnginePublisher(bus.Publisher(), zerolog.Nop())
	engagement := recommend.EngagementEvent{
		ItemID:    7,
		Type:      recommend.EngagementShare,
		Timestamp: time.Now().UTC(),
	}
	if err := publisher.PublishEngagement("user-1", engagement); err != nil {
		t.Fatalf("PublishEngagement failed: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for consumer.Stats().Processed < 1 {
		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for consumer, stats: %+v", consumer.Stats())
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := consumer.tracker.Count(BillActivityKey(7)); got != 1 {
		t.Errorf("Expected bill count 1, got %d", got)
	}
	if got := consumer.tracker.Count(PlatformActivityKey); got != 1 {
		t.Errorf("Expected platform count 1, got %d", got)
	}

	cancel()
	select {
	case err := <-runErr:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for router shutdown")
	}
}

func TestRouter_Close(t *testing.T) {
	bus := NewBus(16, zerolog.Nop())
	defer bus.Close()

	consumer := newTestConsumer(t)
	router, err := NewRouter(bus, consumer, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- router.Run(ctx)
	}()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for router startup")
	}

	if err := router.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	select {
	case <-runErr:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for Run to return after Close")
	}
}
