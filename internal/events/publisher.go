// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/recommend"
)

// EnginePublisher adapts the message bus to the ranking engine's publisher
// hook. The engine calls it after an engagement is durably recorded; the
// engine treats publish failures as non-fatal, so this type only has to
// report them honestly.
type EnginePublisher struct {
	publisher message.Publisher
	logger    zerolog.Logger

	published    atomic.Int64
	publishFails atomic.Int64
}

var _ recommend.EventPublisher = (*EnginePublisher)(nil)

// NewEnginePublisher creates a publisher emitting to TopicEngagements.
func NewEnginePublisher(publisher message.Publisher, logger zerolog.Logger) *EnginePublisher {
	return &EnginePublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishEngagement emits an EngagementRecorded event for a stored
// engagement. The message UUID doubles as the event ID.
func (p *EnginePublisher) PublishEngagement(userID string, event recommend.EngagementEvent) error {
	rec := NewEngagementRecorded(userID, event.ItemID, string(event.Type), event.Timestamp)

	payload, err := rec.Marshal()
	if err != nil {
		p.publishFails.Add(1)
		metrics.RecordEngagementPublishError()
		return fmt.Errorf("encode engagement event: %w", err)
	}

	msg := message.NewMessage(rec.EventID, payload)
	if err := p.publisher.Publish(TopicEngagements, msg); err != nil {
		p.publishFails.Add(1)
		metrics.RecordEngagementPublishError()
		return fmt.Errorf("publish engagement event: %w", err)
	}

	p.published.Add(1)
	metrics.RecordEventPublished()
	p.logger.Trace().
		Str("event_id", rec.EventID).
		Str("user_id", userID).
		Int64("bill_id", event.ItemID).
		Str("type", string(event.Type)).
		Msg("Engagement event published")
	return nil
}

// Stats returns publish counters for health reporting.
func (p *EnginePublisher) Stats() (published, failed int64) {
	return p.published.Load(), p.publishFails.Load()
}
