// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides comprehensive instrumentation for:
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Recommendation pipeline outcomes
// - Engagement ingestion and event bus flow
// - Cache efficiency
// - Circuit breaker health

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"endpoint"},
	)

	// Recommendation Pipeline Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by operation and outcome",
		},
		[]string{"operation", "status"}, // status: "ok", "degraded", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation computation time in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"}, // "personalized", "similar", "trending", "collaborative"
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
		[]string{"operation"},
	)

	RecommendationCandidatePool = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidate_pool_size",
			Help:    "Number of candidate bills fetched for a ranking pass",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	// Engagement Metrics
	EngagementsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagements_recorded_total",
			Help: "Total number of engagements recorded by type",
		},
		[]string{"type"}, // "view", "comment", "share"
	)

	EngagementDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engagement_duplicates_total",
			Help: "Total number of engagements suppressed as duplicates",
		},
	)

	EngagementPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engagement_publish_errors_total",
			Help: "Total number of engagement events that failed to publish",
		},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the bus",
		},
	)

	EventsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events consumed from the bus",
		},
	)

	EventsParseFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_parse_failed_total",
			Help: "Total number of bus events dropped as unparseable",
		},
	)

	EventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_processing_duration_seconds",
			Help:    "Time spent handling a consumed event in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "recommendation", "bill_list"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache_type"},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of entries removed by explicit invalidation",
		},
		[]string{"cache_type"},
	)

	// Trending Refresh Metrics
	TrendingRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trending_refreshes_total",
			Help: "Total number of trending warm-up runs by trigger",
		},
		[]string{"trigger"}, // "startup", "interval", "burst"
	)

	TrendingRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trending_refresh_duration_seconds",
			Help:    "Duration of trending warm-up runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	TrendingRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trending_refresh_errors_total",
			Help: "Total number of failed trending warm-up runs",
		},
	)

	TrendingBurstsDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trending_bursts_detected_total",
			Help: "Total number of engagement bursts that triggered an early refresh",
		},
	)

	TrendingLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trending_last_refresh_timestamp",
			Help: "Unix timestamp of the last successful trending warm-up",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records metrics for a database query
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50] // Truncate long error messages
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records metrics for an API request
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(increment bool) {
	if increment {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records the outcome of a recommendation request.
// Operation is the pipeline entry point ("personalized", "similar",
// "trending", "collaborative") and status is "ok", "degraded" or "error".
func RecordRecommendation(operation, status string, duration time.Duration, results int) {
	RecommendationRequests.WithLabelValues(operation, status).Inc()
	RecommendationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(operation).Observe(float64(results))
}

// ObserveCandidatePool records the size of a fetched candidate pool
func ObserveCandidatePool(size int) {
	RecommendationCandidatePool.Observe(float64(size))
}

// RecordEngagement counts a recorded engagement by type
func RecordEngagement(engagementType string) {
	EngagementsRecorded.WithLabelValues(engagementType).Inc()
}

// RecordEngagementDuplicate counts an engagement suppressed by deduplication
func RecordEngagementDuplicate() {
	EngagementDuplicates.Inc()
}

// RecordEngagementPublishError counts a failed event publish
func RecordEngagementPublishError() {
	EngagementPublishErrors.Inc()
}

// RecordEventPublished counts an event handed to the bus
func RecordEventPublished() {
	EventsPublished.Inc()
}

// RecordEventConsumed records a consumed event and its handling time
func RecordEventConsumed(duration time.Duration) {
	EventsConsumed.Inc()
	EventProcessingDuration.Observe(duration.Seconds())
}

// RecordEventParseFailed counts a bus event dropped as unparseable
func RecordEventParseFailed() {
	EventsParseFailed.Inc()
}

// RecordCacheHit counts a hit for the named cache
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss counts a miss for the named cache
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheInvalidation counts entries removed by explicit invalidation,
// for example after an engagement write clears a user's recommendations
func RecordCacheInvalidation(cacheType string, entries int) {
	if entries <= 0 {
		return
	}
	CacheInvalidations.WithLabelValues(cacheType).Add(float64(entries))
}

// RecordTrendingRefresh records a trending warm-up run. On success the
// last-refresh timestamp is updated; on failure only the error counter moves.
func RecordTrendingRefresh(trigger string, duration time.Duration, err error) {
	TrendingRefreshes.WithLabelValues(trigger).Inc()
	TrendingRefreshDuration.Observe(duration.Seconds())

	if err != nil {
		TrendingRefreshErrors.Inc()
		return
	}
	TrendingLastRefresh.Set(float64(time.Now().Unix()))
}

// RecordTrendingBurst counts a detected engagement burst
func RecordTrendingBurst() {
	TrendingBurstsDetected.Inc()
}

// RecordBreakerTransition updates the state gauge and transition counter for
// a circuit breaker. States use the gobreaker names: "closed", "half-open",
// "open".
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordBreakerRequest counts a request through a circuit breaker.
// Result is "success", "failure" or "rejected".
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// breakerStateValue maps a gobreaker state name onto the gauge convention
// (0=closed, 1=half-open, 2=open). Unknown states map to open, the
// conservative reading.
func breakerStateValue(state string) float64 {
	switch state {
	case "closed":
		return 0
	case "half-open":
		return 1
	default:
		return 2
	}
}
