// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"time"

	"github.com/agora-civic/agora/internal/cache"
	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/database"
	"github.com/agora-civic/agora/internal/middleware"
	"github.com/agora-civic/agora/internal/recommend"
)

// listCacheTTL bounds how stale a cached bill listing may be.
const listCacheTTL = time.Minute

// perfWindowSize is how many recent requests the performance monitor keeps.
const perfWindowSize = 1000

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by surface:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response writing and parameter helpers
//   - handlers_recommendations.go: ranking endpoints (4 methods)
//   - handlers_bills.go: bill listing and detail (2 methods)
//   - handlers_engagements.go: engagement recording (1 method)
//   - handlers_health.go: health and readiness (3 methods)
//   - handlers_stats.go: operator stats (1 method)
type Handler struct {
	db        *database.DB
	engine    *recommend.Engine
	config    *config.Config
	listCache *cache.Cache
	perfMon   *middleware.PerformanceMonitor
	version   string
	startTime time.Time
}

// NewHandler creates an API handler around the store and ranking engine.
//
// The handler keeps a small TTL cache for bill listings; ranking responses
// are cached inside the engine itself, so the two layers never hold the
// same payload twice.
func NewHandler(db *database.DB, engine *recommend.Engine, cfg *config.Config, version string) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		config:    cfg,
		listCache: cache.New(listCacheTTL),
		perfMon:   middleware.NewPerformanceMonitor(perfWindowSize),
		version:   version,
		startTime: time.Now(),
	}
}

// ClearListCache invalidates cached bill listings. Called after writes that
// change listing contents, currently only the demo seeder.
func (h *Handler) ClearListCache() {
	if h.listCache != nil {
		h.listCache.Clear()
	}
}
