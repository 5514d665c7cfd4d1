// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package services

import (
	"context"
	"fmt"
)

// EventRouterRunner interface matches the event router lifecycle.
//
// This interface allows the EventRouterService to wrap the router without
// importing the events package, avoiding circular dependencies.
//
// Satisfied by *events.Router:
//   - Run(ctx context.Context) error - blocks until the context is canceled
type EventRouterRunner interface {
	Run(ctx context.Context) error
}

// EventRouterService wraps the engagement event router as a supervised service.
//
// The router's Run method already follows suture's blocking Serve contract:
// it processes messages until the context is canceled, then drains its
// handlers and returns. This wrapper only translates the return value so
// that a clean shutdown is not mistaken for a crash.
//
// Example usage:
//
//	router, _ := events.NewRouter(bus, consumer, logger)
//	svc := services.NewEventRouterService(router)
//	tree.AddEventService(svc)
type EventRouterService struct {
	router EventRouterRunner
	name   string
}

// NewEventRouterService creates a new event router service wrapper.
func NewEventRouterService(router EventRouterRunner) *EventRouterService {
	return &EventRouterService{
		router: router,
		name:   "event-router",
	}
}

// Serve implements suture.Service.
//
// Run blocks for the lifetime of the router. A non-nil error means the
// router failed and suture should restart it according to its backoff
// policy. A nil return only happens when the context was canceled, so
// ctx.Err() is returned to tell suture this was an ordered shutdown.
func (s *EventRouterService) Serve(ctx context.Context) error {
	if err := s.router.Run(ctx); err != nil {
		return fmt.Errorf("event router failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (s *EventRouterService) String() string {
	return s.name
}
