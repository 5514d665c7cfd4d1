// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.
All collectors are registered with the default registry via promauto at package
load; there is no Init function to call.

# Overview

The package provides metrics for:
  - Database query performance (DuckDB)
  - API endpoint latency and throughput
  - Recommendation pipeline outcomes and result sizes
  - Engagement ingestion, deduplication, and event bus flow
  - Cache hit/miss rates and invalidations
  - Circuit breaker state transitions
  - Trending warm-up runs and burst detection

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Connections in use (gauge)

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate-limited requests (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommendation_requests_total: Requests by outcome (counter)
    Labels: operation (personalized, similar, trending, collaborative),
    status (ok, degraded, error)
  - recommendation_duration_seconds: Computation time (histogram)
    Labels: operation
  - recommendation_results: Items returned per request (histogram)
    Labels: operation
  - recommendation_candidate_pool_size: Candidate bills per ranking pass (histogram)

Engagement and Event Bus Metrics:
  - engagements_recorded_total: Recorded engagements (counter)
    Labels: type (view, comment, share)
  - engagement_duplicates_total: Engagements suppressed as duplicates (counter)
  - engagement_publish_errors_total: Failed event publishes (counter)
  - events_published_total / events_consumed_total: Bus throughput (counters)
  - events_parse_failed_total: Dropped unparseable events (counter)
  - event_processing_duration_seconds: Consumer handling time (histogram)

Cache Metrics:
  - cache_hits_total / cache_misses_total: Lookup outcomes (counters)
    Labels: cache_type (recommendation, bill_list)
  - cache_entries: Current entries (gauge)
  - cache_evictions_total: Capacity and TTL evictions (counter)
  - cache_invalidations_total: Entries removed by explicit invalidation (counter)

Trending Metrics:
  - trending_refreshes_total: Warm-up runs (counter)
    Labels: trigger (startup, interval, burst)
  - trending_refresh_duration_seconds: Warm-up duration (histogram)
  - trending_refresh_errors_total: Failed warm-ups (counter)
  - trending_bursts_detected_total: Bursts that forced an early refresh (counter)
  - trending_last_refresh_timestamp: Unix time of last successful warm-up (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_transitions_total: State transitions (counter)
    Labels: name, from_state, to_state

# Usage Example

Recording metrics from a handler or store:

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "bills", time.Since(start), err)

	metrics.RecordRecommendation("personalized", "ok", elapsed, len(items))
	metrics.RecordEngagement("view")

Wiring breaker transitions from the engine:

	engine.SetBreakerStateFunc(metrics.RecordBreakerTransition)

# Example PromQL Queries

	# API request rate
	rate(api_requests_total[5m])

	# Recommendation p95 latency by operation
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

	# Degraded response ratio
	sum(rate(recommendation_requests_total{status="degraded"}[5m]))
	  / sum(rate(recommendation_requests_total[5m]))

	# Cache hit rate
	sum(rate(cache_hits_total[5m]))
	  / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

# Thread Safety

All metric recording functions are safe for concurrent use. The Prometheus
client library handles synchronization internally.

# Cardinality Management

Labels stay within small fixed vocabularies: operations and engagement types
are closed sets, endpoint labels use the route pattern rather than the raw
URL path, and database error text is truncated to 50 characters before use
as a label value. User and bill identifiers never appear in labels.

# See Also

  - internal/api: HTTP middleware recording request metrics
  - internal/database: query instrumentation
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
