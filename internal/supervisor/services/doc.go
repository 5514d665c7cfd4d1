// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package services provides suture.Service wrappers for Agora components.

This package adapts application components to the suture v4 supervision
model, translating their lifecycle patterns (Run, ListenAndServe, refresh
loops) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation to the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Event Router (EventRouterService):
  - Wraps the watermill engagement event router
  - Run already blocks on context, so only return values are translated
  - Restarted by the supervisor if message processing fails

Trending Refresh (TrendingRefreshService):
  - Keeps the trending recommendation cache warm
  - Refreshes on startup, on a schedule, and on engagement bursts
  - Burst refreshes are rate-limited via golang.org/x/time/rate

# Usage Example

Creating and registering services:

	import (
	    "net/http"
	    "time"

	    "github.com/agora-civic/agora/internal/supervisor"
	    "github.com/agora-civic/agora/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server, router *events.Router, engine *recommend.Engine) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    // HTTP server with 10s shutdown timeout
	    httpSvc := services.NewHTTPServerService(server, 10*time.Second)
	    tree.AddAPIService(httpSvc)

	    // Engagement event router
	    routerSvc := services.NewEventRouterService(router)
	    tree.AddEventService(routerSvc)

	    // Trending cache warmer
	    trendSvc := services.NewTrendingRefreshService(engine, consumer, trendCfg, zlog)
	    tree.AddRankingService(trendSvc)

	    // Start supervision
	    tree.Serve(ctx)
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

All three wrappers return ctx.Err() on ordered shutdown so suture does
not count shutdown as a failure.

# Service Identification

All services implement fmt.Stringer for logging:

	func (h *HTTPServerService) String() string {
	    return "http-server"
	}

Suture uses this for log messages:

	INFO http-server: starting
	INFO http-server: stopped
	ERROR trending-refresh: restarting after failure

# Thread Safety

All service wrappers are safe for concurrent use:
  - Wrappers hold no mutable state outside Serve
  - Context cancellation is handled atomically
  - Multiple Serve calls are not supported (undefined behavior)

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
  - internal/events: Engagement event router implementation
  - internal/recommend: Recommendation engine implementation
*/
package services
