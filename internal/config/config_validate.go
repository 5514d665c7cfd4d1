// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateTrending()
}

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Pagination bounds
const (
	minPageSize = 1
	maxPageSize = 500
)

// validateAPI validates pagination configuration
func (c *Config) validateAPI() error {
	if c.API.MaxPageSize < minPageSize || c.API.MaxPageSize > maxPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be between %d and %d", minPageSize, maxPageSize)
	}
	if c.API.DefaultPageSize < minPageSize || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be between %d and API_MAX_PAGE_SIZE", minPageSize)
	}
	return nil
}

// validateSecurity validates rate limiting configuration
func (c *Config) validateSecurity() error {
	return c.validateRateLimits()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
// Ensures rate limit values are within sensible ranges to prevent
// misconfiguration that could lead to DoS or ineffective protection.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if err := c.validateRateLimitRequests(); err != nil {
		return err
	}
	return c.validateRateLimitWindow()
}

// validateRateLimitRequests validates the rate limit requests value
func (c *Config) validateRateLimitRequests() error {
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	return nil
}

// validateRateLimitWindow validates the rate limit window value
func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup. Wildcard origins are acceptable for local
// development but should be replaced with explicit origins in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS() && c.IsProduction()
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validCacheTypes defines the allowed cache strategies
var validCacheTypes = map[string]bool{
	"ttl": true,
	"lfu": true,
}

// validateCache validates response cache configuration
func (c *Config) validateCache() error {
	if !validCacheTypes[c.Cache.Type] {
		return fmt.Errorf("CACHE_TYPE must be one of: ttl, lfu")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.Type == "lfu" && c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be positive when CACHE_TYPE=lfu")
	}
	return nil
}

// validateEvents validates event pipeline configuration (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}

	if c.Events.BufferSize < 1 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be positive")
	}
	if c.Events.DedupTTL <= 0 {
		return fmt.Errorf("EVENTS_DEDUP_TTL must be positive")
	}
	if c.Events.DedupCapacity < 1 {
		return fmt.Errorf("EVENTS_DEDUP_CAPACITY must be positive")
	}
	if c.Events.ActivityWindow <= 0 {
		return fmt.Errorf("EVENTS_ACTIVITY_WINDOW must be positive")
	}
	if c.Events.ActivityBuckets < 1 || c.Events.ActivityBuckets > 1000 {
		return fmt.Errorf("EVENTS_ACTIVITY_BUCKETS must be between 1 and 1000")
	}
	if c.Events.ActivityMaxKeys < 1 {
		return fmt.Errorf("EVENTS_ACTIVITY_MAX_KEYS must be positive")
	}
	return nil
}

// validateRecommend validates recommendation engine configuration (only if enabled)
func (c *Config) validateRecommend() error {
	if !c.Recommend.Enabled {
		return nil
	}

	if err := c.validateRecommendWeights(); err != nil {
		return err
	}
	if err := c.validateRecommendThresholds(); err != nil {
		return err
	}
	return c.validateRecommendLimits()
}

// validateRecommendWeights validates the composite score weights.
// Weights need not sum to 1.0 (the engine normalizes), but each must be
// non-negative and at least one must be positive.
func (c *Config) validateRecommendWeights() error {
	weights := map[string]float64{
		"RECOMMEND_INTEREST_WEIGHT":      c.Recommend.InterestWeight,
		"RECOMMEND_RECENCY_WEIGHT":       c.Recommend.RecencyWeight,
		"RECOMMEND_POPULARITY_WEIGHT":    c.Recommend.PopularityWeight,
		"RECOMMEND_COLLABORATIVE_WEIGHT": c.Recommend.CollaborativeWeight,
	}
	sum := 0.0
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("recommendation weights must sum to a positive value")
	}
	return nil
}

// validateRecommendThresholds validates similarity, decay, and diversity knobs
func (c *Config) validateRecommendThresholds() error {
	if c.Recommend.SimilarityMinScore < 0 || c.Recommend.SimilarityMinScore > 1 {
		return fmt.Errorf("RECOMMEND_SIMILARITY_MIN_SCORE must be between 0 and 1")
	}
	if c.Recommend.TrendingDecayFactor <= 0 || c.Recommend.TrendingDecayFactor > 1 {
		return fmt.Errorf("RECOMMEND_TRENDING_DECAY must be greater than 0 and at most 1")
	}
	if c.Recommend.CollaborativeMinSimilarity < 0 || c.Recommend.CollaborativeMinSimilarity > 1 {
		return fmt.Errorf("RECOMMEND_COLLABORATIVE_MIN_SIMILARITY must be between 0 and 1")
	}
	if c.Recommend.DiversityFactor < 0 || c.Recommend.DiversityFactor > 1 {
		return fmt.Errorf("RECOMMEND_DIVERSITY_FACTOR must be between 0 and 1")
	}
	return nil
}

// validateRecommendLimits validates result limits, windows, and timeouts
func (c *Config) validateRecommendLimits() error {
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be positive")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be >= RECOMMEND_DEFAULT_LIMIT")
	}
	if c.Recommend.TrendingWindowDays < 1 || c.Recommend.TrendingWindowDays > c.Recommend.MaxWindowDays {
		return fmt.Errorf("RECOMMEND_TRENDING_WINDOW_DAYS must be between 1 and RECOMMEND_MAX_WINDOW_DAYS")
	}
	if c.Recommend.QueryTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_QUERY_TIMEOUT must be positive")
	}
	if c.Recommend.CacheEnabled {
		if c.Recommend.UserCacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_USER_CACHE_TTL must be positive when RECOMMEND_CACHE_ENABLED=true")
		}
		if c.Recommend.SharedCacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_SHARED_CACHE_TTL must be positive when RECOMMEND_CACHE_ENABLED=true")
		}
	}
	return nil
}

// minTrendingRefreshInterval guards against refresh loops that would hammer
// the engagement store.
const minTrendingRefreshInterval = 10 * time.Second

// validateTrending validates the trending refresher configuration (only if enabled)
func (c *Config) validateTrending() error {
	if !c.Trending.Enabled {
		return nil
	}

	if c.Trending.RefreshInterval < minTrendingRefreshInterval {
		return fmt.Errorf("TRENDING_REFRESH_INTERVAL must be at least %v", minTrendingRefreshInterval)
	}
	if c.Trending.WarmWindowDays < 1 || c.Trending.WarmWindowDays > 365 {
		return fmt.Errorf("TRENDING_WARM_WINDOW_DAYS must be between 1 and 365")
	}
	if c.Trending.WarmLimit < 1 || c.Trending.WarmLimit > 50 {
		return fmt.Errorf("TRENDING_WARM_LIMIT must be between 1 and 50")
	}
	if c.Trending.BurstThreshold < 0 {
		return fmt.Errorf("TRENDING_BURST_THRESHOLD must be non-negative")
	}
	if c.Trending.BurstMinUsers < 0 {
		return fmt.Errorf("TRENDING_BURST_MIN_USERS must be non-negative")
	}
	if c.Trending.MinRefreshGap < 0 {
		return fmt.Errorf("TRENDING_MIN_REFRESH_GAP must be non-negative")
	}
	return nil
}
