// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
)

// Bus is the in-process message bus. Publishers and subscribers share one
// gochannel pub/sub, so events never leave the process and delivery is
// best-effort: messages published while no subscriber is running are
// dropped, which is acceptable because engagements are already durable in
// the database before their event is published.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus creates an in-process bus. bufferSize bounds each subscriber's
// output channel; a full buffer blocks publishers rather than dropping
// messages mid-stream.
func NewBus(bufferSize int, logger zerolog.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(bufferSize),
	}, NewLoggerAdapter(logger))

	logger.Debug().
		Int("buffer_size", bufferSize).
		Msg("Event bus created")

	return &Bus{
		pubsub: pubsub,
		logger: logger,
	}
}

// Publisher returns the publishing side of the bus.
func (b *Bus) Publisher() message.Publisher {
	return b.pubsub
}

// Subscriber returns the subscribing side of the bus.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the bus down. Pending deliveries are discarded.
func (b *Bus) Close() error {
	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("close event bus: %w", err)
	}
	b.logger.Debug().Msg("Event bus closed")
	return nil
}
