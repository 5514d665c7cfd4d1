// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "bills",
			duration:  10 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "successful INSERT query",
			operation: "INSERT",
			table:     "engagement_events",
			duration:  5 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "failed query with short error",
			operation: "UPDATE",
			table:     "engagements",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
		{
			name:      "failed query with long error - should truncate to 50 chars",
			operation: "DELETE",
			table:     "user_interests",
			duration:  50 * time.Millisecond,
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated properly"),
		},
		{
			name:      "fast query under 1ms",
			operation: "SELECT",
			table:     "users",
			duration:  500 * time.Microsecond,
			err:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Record the query - should not panic
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies error messages are truncated at 50 chars
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	// Error with exactly 50 characters
	err50 := errors.New(strings.Repeat("a", 50))
	RecordDBQuery("SELECT", "bills", time.Millisecond, err50)

	// Error with 51 characters - should truncate
	err51 := errors.New(strings.Repeat("b", 51))
	RecordDBQuery("SELECT", "bills", time.Millisecond, err51)

	// Error with 100 characters - should truncate
	err100 := errors.New(strings.Repeat("c", 100))
	RecordDBQuery("SELECT", "bills", time.Millisecond, err100)

	// Very short error
	errShort := errors.New("err")
	RecordDBQuery("SELECT", "bills", time.Millisecond, errShort)
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful recommendations request",
			method:     "GET",
			endpoint:   "/api/v1/recommendations/{userId}",
			statusCode: "200",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "successful engagement post",
			method:     "POST",
			endpoint:   "/api/v1/bills/{id}/engagements",
			statusCode: "201",
			duration:   15 * time.Millisecond,
		},
		{
			name:       "bill not found",
			method:     "GET",
			endpoint:   "/api/v1/bills/{id}",
			statusCode: "404",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "invalid limit parameter",
			method:     "GET",
			endpoint:   "/api/v1/trending",
			statusCode: "400",
			duration:   1 * time.Millisecond,
		},
		{
			name:       "internal server error",
			method:     "POST",
			endpoint:   "/api/v1/bills/{id}/engagements",
			statusCode: "500",
			duration:   500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true) // Request starts
	}
	for i := 0; i < 5; i++ {
		TrackActiveRequest(false) // Request ends
	}

	if got := testutil.ToFloat64(APIActiveRequests); got != before+5 {
		t.Errorf("APIActiveRequests = %v, want %v", got, before+5)
	}

	// All remaining complete
	for i := 0; i < 5; i++ {
		TrackActiveRequest(false)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests after drain = %v, want %v", got, before)
	}
}

// TestRecordRecommendation tests recommendation outcome recording
func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		status    string
		duration  time.Duration
		results   int
	}{
		{
			name:      "personalized ok",
			operation: "personalized",
			status:    "ok",
			duration:  12 * time.Millisecond,
			results:   10,
		},
		{
			name:      "similar ok with few results",
			operation: "similar",
			status:    "ok",
			duration:  3 * time.Millisecond,
			results:   2,
		},
		{
			name:      "trending degraded returns empty",
			operation: "trending",
			status:    "degraded",
			duration:  5 * time.Second,
			results:   0,
		},
		{
			name:      "collaborative ok",
			operation: "collaborative",
			status:    "ok",
			duration:  40 * time.Millisecond,
			results:   25,
		},
		{
			name:      "personalized error",
			operation: "personalized",
			status:    "error",
			duration:  time.Millisecond,
			results:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordRecommendation(tt.operation, tt.status, tt.duration, tt.results)
		})
	}
}

// TestRecordRecommendation_CounterAdvances verifies the outcome counter moves
func TestRecordRecommendation_CounterAdvances(t *testing.T) {
	counter := RecommendationRequests.WithLabelValues("personalized", "ok")
	before := testutil.ToFloat64(counter)

	RecordRecommendation("personalized", "ok", 10*time.Millisecond, 10)
	RecordRecommendation("personalized", "ok", 20*time.Millisecond, 5)

	if got := testutil.ToFloat64(counter); got != before+2 {
		t.Errorf("recommendation counter = %v, want %v", got, before+2)
	}
}

// TestObserveCandidatePool tests candidate pool size recording
func TestObserveCandidatePool(t *testing.T) {
	for _, size := range []int{0, 10, 100, 500, 5000} {
		ObserveCandidatePool(size)
	}
}

// TestEngagementMetrics tests engagement counters
func TestEngagementMetrics(t *testing.T) {
	for _, engagementType := range []string{"view", "comment", "share"} {
		RecordEngagement(engagementType)
	}

	before := testutil.ToFloat64(EngagementDuplicates)
	RecordEngagementDuplicate()
	RecordEngagementDuplicate()
	if got := testutil.ToFloat64(EngagementDuplicates); got != before+2 {
		t.Errorf("EngagementDuplicates = %v, want %v", got, before+2)
	}

	RecordEngagementPublishError()
}

// TestEventBusMetrics tests bus throughput counters
func TestEventBusMetrics(t *testing.T) {
	RecordEventPublished()
	RecordEventConsumed(2 * time.Millisecond)
	RecordEventConsumed(500 * time.Microsecond)
	RecordEventParseFailed()
}

// TestCacheMetrics tests general cache metrics
func TestCacheMetrics(t *testing.T) {
	cacheTypes := []string{"recommendation", "bill_list"}

	for _, cacheType := range cacheTypes {
		RecordCacheHit(cacheType)
		RecordCacheMiss(cacheType)
		CacheSize.WithLabelValues(cacheType).Set(50)
		CacheEvictions.WithLabelValues(cacheType).Add(5)
	}
}

// TestRecordCacheInvalidation verifies zero and negative counts are ignored
func TestRecordCacheInvalidation(t *testing.T) {
	counter := CacheInvalidations.WithLabelValues("recommendation")
	before := testutil.ToFloat64(counter)

	RecordCacheInvalidation("recommendation", 0)
	RecordCacheInvalidation("recommendation", -3)
	if got := testutil.ToFloat64(counter); got != before {
		t.Errorf("invalidations moved on non-positive count: %v, want %v", got, before)
	}

	RecordCacheInvalidation("recommendation", 4)
	if got := testutil.ToFloat64(counter); got != before+4 {
		t.Errorf("invalidations = %v, want %v", got, before+4)
	}
}

// TestRecordTrendingRefresh tests warm-up run recording
func TestRecordTrendingRefresh(t *testing.T) {
	tests := []struct {
		name    string
		trigger string
		err     error
	}{
		{
			name:    "startup refresh succeeds",
			trigger: "startup",
			err:     nil,
		},
		{
			name:    "interval refresh succeeds",
			trigger: "interval",
			err:     nil,
		},
		{
			name:    "burst refresh fails",
			trigger: "burst",
			err:     errors.New("query timeout"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordTrendingRefresh(tt.trigger, 100*time.Millisecond, tt.err)
		})
	}
}

// TestRecordTrendingRefresh_Timestamp verifies only successes update the gauge
func TestRecordTrendingRefresh_Timestamp(t *testing.T) {
	RecordTrendingRefresh("interval", 10*time.Millisecond, nil)
	after := testutil.ToFloat64(TrendingLastRefresh)
	if after == 0 {
		t.Fatal("TrendingLastRefresh not set after successful refresh")
	}

	errBefore := testutil.ToFloat64(TrendingRefreshErrors)
	RecordTrendingRefresh("interval", 10*time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(TrendingRefreshErrors); got != errBefore+1 {
		t.Errorf("TrendingRefreshErrors = %v, want %v", got, errBefore+1)
	}
	// Failed refresh leaves the success timestamp alone
	if got := testutil.ToFloat64(TrendingLastRefresh); got < after {
		t.Errorf("TrendingLastRefresh regressed: %v < %v", got, after)
	}

	RecordTrendingBurst()
}

// TestBreakerMetrics tests circuit breaker recording
func TestBreakerMetrics(t *testing.T) {
	cbName := "recommend-data-provider"

	RecordBreakerTransition(cbName, "closed", "open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("state after open = %v, want 2", got)
	}

	RecordBreakerTransition(cbName, "open", "half-open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 1 {
		t.Errorf("state after half-open = %v, want 1", got)
	}

	RecordBreakerTransition(cbName, "half-open", "closed")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 0 {
		t.Errorf("state after closed = %v, want 0", got)
	}

	RecordBreakerRequest(cbName, "success")
	RecordBreakerRequest(cbName, "failure")
	RecordBreakerRequest(cbName, "rejected")
}

// TestBreakerStateValue tests the state name to gauge value mapping
func TestBreakerStateValue(t *testing.T) {
	tests := []struct {
		state    string
		expected float64
	}{
		{state: "closed", expected: 0},
		{state: "half-open", expected: 1},
		{state: "open", expected: 2},
		{state: "unknown", expected: 2},
		{state: "", expected: 2},
	}

	for _, tt := range tests {
		t.Run("state_"+tt.state, func(t *testing.T) {
			if got := breakerStateValue(tt.state); got != tt.expected {
				t.Errorf("breakerStateValue(%q) = %v, want %v", tt.state, got, tt.expected)
			}
		})
	}
}

// TestAppMetrics tests application-level metrics
func TestAppMetrics(t *testing.T) {
	AppInfo.WithLabelValues("1.0.0", "go1.25.4").Set(1)
	AppUptime.Set(3600)
	AppUptime.Add(60)
}

// TestConcurrentMetricRecording tests thread safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 100
	operationsPerGoroutine := 50

	// Test concurrent DB query recording
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordDBQuery("SELECT", "bills", time.Duration(j)*time.Millisecond, nil)
			}
		}()
	}

	// Test concurrent API request recording
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordAPIRequest("GET", "/api/v1/trending", "200", time.Duration(j)*time.Millisecond)
			}
		}()
	}

	// Test concurrent recommendation and engagement recording
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordRecommendation("personalized", "ok", time.Millisecond, 10)
				RecordEngagement("view")
			}
		}()
	}

	// Test concurrent active request tracking
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}

	wg.Wait()
}

// TestMetricLabels verifies that metrics have proper labels configured
func TestMetricLabels(t *testing.T) {
	DBQueryDuration.WithLabelValues("SELECT", "bills").Observe(0.1)
	DBQueryErrors.WithLabelValues("DELETE", "engagements", "constraint_violation").Inc()

	APIRequestsTotal.WithLabelValues("GET", "/api/v1/bills", "200").Inc()
	APIRequestsTotal.WithLabelValues("POST", "/api/v1/bills/{id}/engagements", "500").Inc()
	APIRateLimitHits.WithLabelValues("/api/v1/recommendations/{userId}").Inc()

	RecommendationRequests.WithLabelValues("similar", "ok").Inc()
	RecommendationDuration.WithLabelValues("similar").Observe(0.002)

	EngagementsRecorded.WithLabelValues("share").Inc()
	CacheHits.WithLabelValues("bill_list").Inc()
	TrendingRefreshes.WithLabelValues("burst").Inc()
}

// TestMetricsRegistration verifies all metrics are properly registered
func TestMetricsRegistration(t *testing.T) {
	metrics := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		DBConnectionPoolSize,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendationRequests,
		RecommendationDuration,
		RecommendationResults,
		RecommendationCandidatePool,
		EngagementsRecorded,
		EngagementDuplicates,
		EngagementPublishErrors,
		EventsPublished,
		EventsConsumed,
		EventsParseFailed,
		EventProcessingDuration,
		CacheHits,
		CacheMisses,
		CacheSize,
		CacheEvictions,
		CacheInvalidations,
		TrendingRefreshes,
		TrendingRefreshDuration,
		TrendingRefreshErrors,
		TrendingBurstsDetected,
		TrendingLastRefresh,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		AppInfo,
		AppUptime,
	}

	// Verify each metric can be described
	for _, m := range metrics {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordDBQuery("SELECT", "bills", time.Millisecond, nil)
	RecordAPIRequest("GET", "/api/v1/trending", "200", time.Millisecond)

	// Verify we can lint the metrics (checks for consistency issues)
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

// Benchmark tests for metrics performance

func BenchmarkRecordDBQuery(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordDBQuery("SELECT", "bills", 10*time.Millisecond, nil)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/trending", "200", 25*time.Millisecond)
	}
}

func BenchmarkRecordRecommendation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordRecommendation("personalized", "ok", 10*time.Millisecond, 10)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
