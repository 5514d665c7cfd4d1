// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"net/http"
	"time"

	"github.com/agora-civic/agora/internal/middleware"
	"github.com/agora-civic/agora/internal/recommend"
)

// GetServerStats handles operator stats requests.
//
// @Summary Get server statistics
// @Description Returns per-endpoint latency percentiles from the in-process sliding window, list cache hit counters and ranking engine counters. Lighter-weight than scraping /metrics for a quick operational look.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=ServerStatsResponse} "Server statistics"
// @Router /stats [get]
func (h *Handler) GetServerStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cacheStats := h.listCache.GetStats()

	respondSuccess(w, http.StatusOK, &ServerStatsResponse{
		Endpoints: h.perfMon.GetStats(),
		ListCache: ListCacheStats{
			Hits:      cacheStats.Hits,
			Misses:    cacheStats.Misses,
			Evictions: cacheStats.Evictions,
			Keys:      cacheStats.TotalKeys,
			HitRate:   h.listCache.HitRate(),
		},
		Engine:  h.engine.Stats(),
		Breaker: h.engine.BreakerState(),
	}, start)
}

// ServerStatsResponse is the payload for the operator stats endpoint.
type ServerStatsResponse struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	ListCache ListCacheStats             `json:"list_cache"`
	Engine    recommend.Stats            `json:"engine"`
	Breaker   string                     `json:"breaker"`
}

// ListCacheStats summarizes the bill listing cache.
type ListCacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Keys      int64   `json:"keys"`
	HitRate   float64 `json:"hit_rate"`
}
