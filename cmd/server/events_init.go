// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package main

import (
	"github.com/agora-civic/agora/internal/cache"
	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/events"
	"github.com/agora-civic/agora/internal/logging"
)

// EventComponents holds the in-process engagement event pipeline for
// lifecycle management. The Router runs under the supervisor tree; main
// closes the components after the tree has drained.
type EventComponents struct {
	Bus      *events.Bus
	Consumer *events.ActivityConsumer
	Router   *events.Router
}

// initEvents initializes the engagement event pipeline when
// EVENTS_ENABLED=true.
//
// The pipeline fans recorded engagements out to the activity consumer,
// which feeds dedup and the sliding-window activity tracker used for
// burst detection. Returns nil when disabled or on setup failure;
// engagement recording itself does not depend on the pipeline.
func initEvents(cfg *config.Config) *EventComponents {
	if !cfg.Events.Enabled {
		logging.Info().Msg("Event pipeline disabled (EVENTS_ENABLED=false)")
		return nil
	}

	logger := logging.Logger()

	tracker := cache.NewActivityTracker(
		cfg.Events.ActivityWindow,
		cfg.Events.ActivityBuckets,
		cfg.Events.ActivityMaxKeys,
	)
	dedup := cache.NewDedupCache(cfg.Events.DedupCapacity, cfg.Events.DedupTTL)
	bus := events.NewBus(cfg.Events.BufferSize, logger)
	consumer := events.NewActivityConsumer(tracker, dedup, logger)

	router, err := events.NewRouter(bus, consumer, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create event router")
		logging.Info().Msg("Event pipeline disabled - continuing without activity tracking")
		if closeErr := bus.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing event bus")
		}
		return nil
	}

	logging.Info().
		Int("buffer_size", cfg.Events.BufferSize).
		Dur("dedup_ttl", cfg.Events.DedupTTL).
		Dur("activity_window", cfg.Events.ActivityWindow).
		Msg("Event pipeline initialized")

	return &EventComponents{
		Bus:      bus,
		Consumer: consumer,
		Router:   router,
	}
}

// Close shuts the pipeline down, router first so in-flight handlers drain
// before the bus goes away. Safe on a nil receiver so main can defer
// unconditionally.
func (c *EventComponents) Close() {
	if c == nil {
		return
	}
	if err := c.Router.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event router")
	}
	if err := c.Bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}
}
