// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"
)

const (
	routerCloseTimeout = 10 * time.Second

	retryMaxRetries      = 3
	retryInitialInterval = 100 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
	retryMultiplier      = 2.0
)

// Router owns the message router wiring the bus to the activity consumer.
// Handlers run behind panic recovery and bounded exponential retry.
type Router struct {
	router *message.Router
	logger zerolog.Logger
}

// NewRouter builds the router and registers the activity-tracker handler
// on TopicEngagements.
func NewRouter(bus *Bus, consumer *ActivityConsumer, logger zerolog.Logger) (*Router, error) {
	wmLogger := NewLoggerAdapter(logger)

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: routerCloseTimeout,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      retryMaxRetries,
		InitialInterval: retryInitialInterval,
		MaxInterval:     retryMaxInterval,
		Multiplier:      retryMultiplier,
		Logger:          wmLogger,
	}.Middleware)

	router.AddConsumerHandler(
		"activity-tracker",
		TopicEngagements,
		bus.Subscriber(),
		consumer.Handle,
	)

	return &Router{
		router: router,
		logger: logger,
	}, nil
}

// Run starts the router and blocks until ctx is cancelled or the router
// stops. Use Running to wait for handler startup.
func (r *Router) Run(ctx context.Context) error {
	r.logger.Info().Str("topic", TopicEngagements).Msg("Event router starting")
	if err := r.router.Run(ctx); err != nil {
		return fmt.Errorf("run event router: %w", err)
	}
	return nil
}

// Running returns a channel closed once all handlers are started. Publishing
// before then can drop events on the in-process bus.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to the close timeout for in-flight
// handlers.
func (r *Router) Close() error {
	if err := r.router.Close(); err != nil {
		return fmt.Errorf("close event router: %w", err)
	}
	r.logger.Debug().Msg("Event router closed")
	return nil
}
