// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/database"
	"github.com/agora-civic/agora/internal/models"
	"github.com/agora-civic/agora/internal/recommend"
	"github.com/agora-civic/agora/internal/recommend/scoring"
)

// testDBSemaphore serializes DuckDB instances across parallel tests to keep
// memory bounded.
var testDBSemaphore = make(chan struct{}, 1)

// testEnvelope mirrors models.APIResponse with raw data for typed decoding.
type testEnvelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Timestamp   time.Time `json:"timestamp"`
		QueryTimeMS int64     `json:"query_time_ms"`
		Cached      bool      `json:"cached"`
	} `json:"metadata"`
	Error *models.APIError `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			Host:        "127.0.0.1",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:     1000,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true, // deterministic tests
			CORSOrigins:       []string{"*"},
		},
		Recommend: config.RecommendConfig{
			Enabled: true,
		},
	}
}

// setupTestHandler creates a handler over a fresh in-memory database and a
// real ranking engine, the same wiring server startup performs.
func setupTestHandler(t *testing.T) (*Handler, *database.DB) {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	engineCfg := recommend.DefaultConfig()
	engineCfg.Cache.Enabled = false
	engine, err := recommend.NewEngine(engineCfg, recommend.Components{
		Scorer:        scoring.NewScorer(engineCfg.Weights),
		Similarity:    scoring.NewSimilarityCalculator(engineCfg.Similarity.MinScore),
		Trending:      scoring.NewTrendDetector(engineCfg.Trending.DecayFactor),
		Collaborative: scoring.NewCollaborativeAggregator(engineCfg.Collaborative.MinSimilarity),
		Diversity:     scoring.NewDiversityRanker(engineCfg.Diversity.Factor),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	engine.SetDataProvider(database.NewRankingDataProvider(db))

	return NewHandler(db, engine, testConfig(), "test"), db
}

// setupTestServer returns the fully assembled route table for end-to-end
// request tests.
func setupTestServer(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()
	h, db := setupTestHandler(t)
	return NewRouter(h, h.config).Setup(), db
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return &env
}

func seedBill(t *testing.T, db *database.DB, bill *models.Bill) {
	t.Helper()
	if err := db.CreateBill(context.Background(), bill); err != nil {
		t.Fatalf("Failed to seed bill %d: %v", bill.ID, err)
	}
}

func seedUser(t *testing.T, db *database.DB, id string, interests ...string) {
	t.Helper()
	err := db.UpsertUser(context.Background(), &models.User{
		ID:        id,
		Name:      "Resident " + id,
		Interests: interests,
	})
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", id, err)
	}
}

func testBill(id int64) *models.Bill {
	return &models.Bill{
		ID:          id,
		Title:       fmt.Sprintf("Test Bill %d", id),
		Description: "A bill used in tests.",
		Category:    "environment",
		Tags:        []string{"climate", "water"},
		SponsorID:   100 + id,
		Status:      models.StatusIntroduced,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string", "user-123", "user-123"},
		{"newline injection", "user\nFAKE LOG", "user\\x0aFAKE LOG"},
		{"carriage return", "a\rb", "a\\x0db"},
		{"delete char", "a\x7fb", "a\\x7fb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte("payload-a"))
	b := generateETag([]byte("payload-b"))

	if a == "" || b == "" {
		t.Fatal("Expected non-empty ETags")
	}
	if a == b {
		t.Error("Expected different payloads to produce different ETags")
	}
	if again := generateETag([]byte("payload-a")); again != a {
		t.Error("Expected identical payloads to produce identical ETags")
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		key   string
		def   int
		want  int
	}{
		{"present", "limit=25", "limit", 10, 25},
		{"absent", "", "limit", 10, 10},
		{"malformed", "limit=abc", "limit", 10, 10},
		{"negative passes through", "limit=-5", "limit", 10, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			if got := getIntParam(req, tt.key, tt.def); got != tt.want {
				t.Errorf("getIntParam(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestPathInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pathInt64(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("pathInt64(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("pathInt64(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestRespondSuccess_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondSuccess(rec, http.StatusOK, map[string]int{"count": 3}, time.Now())

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("Expected ETag header")
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Errorf("Expected status success, got %q", env.Status)
	}
	if env.Error != nil {
		t.Errorf("Expected no error, got %+v", env.Error)
	}
	if env.Metadata.Timestamp.IsZero() {
		t.Error("Expected metadata timestamp")
	}
}

func TestRespondError_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondError(rec, http.StatusNotFound, errCodeNotFound, "Bill not found", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "error" {
		t.Errorf("Expected status error, got %q", env.Status)
	}
	if env.Error == nil {
		t.Fatal("Expected error payload")
	}
	if env.Error.Code != errCodeNotFound {
		t.Errorf("Expected code %q, got %q", errCodeNotFound, env.Error.Code)
	}
	if env.Error.Message != "Bill not found" {
		t.Errorf("Expected message, got %q", env.Error.Message)
	}
}

func TestValidateRequest_Details(t *testing.T) {
	t.Parallel()

	apiErr := validateRequest(&EngagementRequest{UserID: "", Type: "bookmark"})
	if apiErr == nil {
		t.Fatal("Expected validation error")
	}
	if apiErr.Code != errCodeValidation {
		t.Errorf("Expected code %q, got %q", errCodeValidation, apiErr.Code)
	}
	if len(apiErr.Details) == 0 {
		t.Error("Expected details for failed fields")
	}

	if got := validateRequest(&EngagementRequest{UserID: "resident-1", Type: "view"}); got != nil {
		t.Errorf("Expected valid request, got %+v", got)
	}
}

func TestRespondAPIError_PreservesDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondAPIError(rec, http.StatusBadRequest, &models.APIError{
		Code:    errCodeValidation,
		Message: "Validation failed",
		Details: map[string]interface{}{"field": "limit"},
	})

	env := decodeEnvelope(t, rec)
	if env.Error == nil {
		t.Fatal("Expected error payload")
	}
	if env.Error.Details["field"] != "limit" {
		t.Errorf("Expected details preserved, got %+v", env.Error.Details)
	}
}

func TestRespondJSON_SetsVaryHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, &models.APIResponse{Status: "success"})

	if !strings.Contains(rec.Header().Get("Vary"), "Accept-Encoding") {
		t.Errorf("Expected Vary: Accept-Encoding, got %q", rec.Header().Get("Vary"))
	}
}
