// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package middleware provides HTTP middleware components for the API server.

This package implements infrastructure middleware for Prometheus metrics,
gzip compression and in-process performance monitoring. The api package
composes these into its chi middleware stack alongside the go-chi ecosystem
middleware (CORS, rate limiting, request IDs).

Key Components:

  - PrometheusMetrics: HTTP request/response instrumentation
  - Compression: Gzip compression for API responses
  - PerformanceMonitor: Request latency tracking with percentile calculations

Endpoint Labels:

Both PrometheusMetrics and PerformanceMonitor.Middleware label observations
with the chi route pattern ("/bills/{id}") instead of the raw URL path.
Bill and user IDs appear in paths, so raw paths would grow one metric
series per entity; route patterns keep cardinality fixed to the route
table. The pattern is read after the inner handler runs because chi
resolves routes at the end of the middleware chain.

Usage Example - Performance Monitoring:

	perfMon := middleware.NewPerformanceMonitor(1000)
	r.Use(perfMon.Middleware)

	// later, e.g. in a stats endpoint
	stats := perfMon.GetStats()
	for _, s := range stats {
	    fmt.Printf("%s p95=%dms\n", s.Endpoint, s.P95Duration)
	}

Thread Safety:

All middleware components are safe for concurrent use. Compression pools
gzip writers per request, the performance monitor guards its window with a
RWMutex, and Prometheus collectors are atomic.

See Also:

  - internal/api: composes the middleware stack
  - internal/metrics: Prometheus metric definitions
*/
package middleware
