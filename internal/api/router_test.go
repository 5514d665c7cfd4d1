// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestRouter_NotFound(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/nonexistent", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "DELETE", "/api/v1/bills", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/bills", nil)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("Expected %s: %q, got %q", name, want, got)
		}
	}

	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("Expected no HSTS header on plain HTTP")
	}
}

func TestRouter_HSTSBehindTLSProxy(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS header when TLS is terminated upstream")
	}
}

func TestRouter_RequestIDGenerated(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/health/live", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected generated X-Request-ID response header")
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "trace-me-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "trace-me-123" {
		t.Errorf("Expected client request ID echoed back, got %q", got)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/v1/bills", nil)
	req.Header.Set("Origin", "https://civic.example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected preflight 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard allow-origin, got %q", got)
	}
}

func TestRouter_GzipNegotiation(t *testing.T) {
	srv, db := setupTestServer(t)
	seedBill(t, db, testBill(1))

	req := httptest.NewRequest("GET", "/api/v1/bills", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Expected gzip encoding, got %q", got)
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to open gzip reader: %v", err)
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("Failed to decompress body: %v", err)
	}

	var env testEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("Failed to decode decompressed envelope: %v", err)
	}
	if env.Status != "success" {
		t.Errorf("Expected success envelope, got %q", env.Status)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# HELP") {
		t.Error("Expected Prometheus exposition format")
	}
}

func TestRouter_SwaggerUI(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/swagger/index.html", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Error("Expected swagger UI page")
	}
}

func TestRouter_RankingRoutesDisabled(t *testing.T) {
	h, _ := setupTestHandler(t)
	h.config.Recommend.Enabled = false
	srv := NewRouter(h, h.config).Setup()

	for _, path := range []string{
		"/api/v1/trending",
		"/api/v1/recommendations/resident-1",
		"/api/v1/recommendations/resident-1/collaborative",
		"/api/v1/bills/1/similar",
	} {
		if rec := doRequest(t, srv, "GET", path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("%s with ranking disabled: expected 404, got %d", path, rec.Code)
		}
	}

	// Catalog and engagement routes stay up
	if rec := doRequest(t, srv, "GET", "/api/v1/bills", nil); rec.Code != http.StatusOK {
		t.Errorf("bills with ranking disabled: expected 200, got %d", rec.Code)
	}
}
