// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"net/http"
	"time"

	"github.com/agora-civic/agora/internal/models"
	"github.com/agora-civic/agora/internal/recommend"
)

// Health handles health check requests.
//
// @Summary Get system health status
// @Description Returns overall health including database connectivity, ranking engine counters, circuit breaker state and uptime.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthResponse} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	breaker := h.engine.BreakerState()

	status := "healthy"
	if !dbConnected || breaker == "open" {
		status = "degraded"
	}

	respondSuccess(w, http.StatusOK, &HealthResponse{
		HealthStatus: models.HealthStatus{
			Status:    status,
			Version:   h.version,
			Database:  dbConnected,
			UptimeSec: int64(time.Since(h.startTime).Seconds()),
			StartedAt: h.startTime,
		},
		Breaker: breaker,
		Engine:  h.engine.Stats(),
	}, start)
}

// HealthLive handles liveness probe requests. It returns 200 whenever the
// process is alive, regardless of dependencies.
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthReady handles readiness probe requests. The service is ready once
// the database answers pings; ranking degrades gracefully on its own.
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only when the database is reachable, 503 otherwise.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !dbConnected {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"ready_to_serve":     dbConnected,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthResponse extends the basic health report with ranking engine
// internals for operators.
type HealthResponse struct {
	models.HealthStatus
	Breaker string          `json:"breaker"`
	Engine  recommend.Stats `json:"engine"`
}
