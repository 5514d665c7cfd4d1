// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
)

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload HealthResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	if payload.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", payload.Status)
	}
	if payload.Version != "test" {
		t.Errorf("Expected version test, got %q", payload.Version)
	}
	if !payload.Database {
		t.Error("Expected database connectivity to be reported")
	}
	if payload.Breaker != "closed" {
		t.Errorf("Expected closed breaker, got %q", payload.Breaker)
	}
	if payload.StartedAt.IsZero() {
		t.Error("Expected started_at timestamp")
	}
	if payload.UptimeSec < 0 {
		t.Errorf("Expected non-negative uptime, got %d", payload.UptimeSec)
	}
}

func TestHealthLive(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var payload map[string]interface{}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload["alive"] != true {
		t.Errorf("Expected alive true, got %v", payload["alive"])
	}
}

func TestHealthReady(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "GET", "/api/v1/health/ready", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Status != "ready" {
		t.Errorf("Expected ready status, got %q", env.Status)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload["database_connected"] != true {
		t.Errorf("Expected database_connected true, got %v", payload["database_connected"])
	}
	if payload["ready_to_serve"] != true {
		t.Errorf("Expected ready_to_serve true, got %v", payload["ready_to_serve"])
	}
}

func TestGetServerStats(t *testing.T) {
	srv, _ := setupTestServer(t)

	// Two identical listings: a cache miss then a hit, both recorded by the
	// performance monitor.
	doRequest(t, srv, "GET", "/api/v1/bills", nil)
	doRequest(t, srv, "GET", "/api/v1/bills", nil)

	rec := doRequest(t, srv, "GET", "/api/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload ServerStatsResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	found := false
	for _, ep := range payload.Endpoints {
		if ep.Endpoint == "GET /api/v1/bills" {
			found = true
			if ep.RequestCount != 2 {
				t.Errorf("Expected 2 recorded requests, got %d", ep.RequestCount)
			}
		}
	}
	if !found {
		t.Errorf("Expected GET /api/v1/bills endpoint stats, got %+v", payload.Endpoints)
	}

	if payload.ListCache.Misses != 1 {
		t.Errorf("Expected 1 list cache miss, got %d", payload.ListCache.Misses)
	}
	if payload.ListCache.Hits != 1 {
		t.Errorf("Expected 1 list cache hit, got %d", payload.ListCache.Hits)
	}
	if payload.Breaker != "closed" {
		t.Errorf("Expected closed breaker, got %q", payload.Breaker)
	}
}

func TestGetServerStats_EngineCounters(t *testing.T) {
	srv, db := setupTestServer(t)
	seedBill(t, db, testBill(1))
	seedUser(t, db, "resident-1", "climate")

	doRequest(t, srv, "GET", "/api/v1/recommendations/resident-1", nil)
	doRequest(t, srv, "GET", "/api/v1/trending", nil)

	rec := doRequest(t, srv, "GET", "/api/v1/stats", nil)
	var payload ServerStatsResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	if payload.Engine.Requests != 2 {
		t.Errorf("Expected 2 engine requests, got %d", payload.Engine.Requests)
	}
}
