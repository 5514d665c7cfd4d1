// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables
// and config files. Provides centralized configuration management for all
// application components including the database, HTTP server, API pagination,
// security, logging, caching, engagement events, the recommendation engine,
// and the trending refresher.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Database.Path, cfg.Server.Port, etc. are now populated
//
// Example - Access configuration values:
//
//	db, err := database.New(cfg.Database.Path, ...)
//	server := http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)}
//
// Validation:
// The Load() function validates all fields and returns an error if values are
// malformed (out-of-range port, negative limits, unknown log level).
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Cache     CacheConfig     `koanf:"cache"`
	Events    EventsConfig    `koanf:"events"`
	Recommend RecommendConfig `koanf:"recommend"`
	Trending  TrendingConfig  `koanf:"trending"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
	SeedDemoData           bool   `koanf:"seed_demo_data"`           // Seed demo bills and users for local development
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// APIConfig holds API pagination and response settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CacheConfig holds settings for the response cache that backs recommendation
// and bill-list endpoints.
type CacheConfig struct {
	// Type selects the cache strategy: "ttl" (time-based eviction only) or
	// "lfu" (bounded capacity, least-frequently-used eviction).
	// Default: ttl
	Type string `koanf:"type"`

	// TTL is the default entry lifetime for cached responses that do not
	// specify their own.
	// Default: 5m
	TTL time.Duration `koanf:"ttl"`

	// Capacity is the maximum entry count for the LFU cache. Ignored for
	// the TTL cache, which is unbounded.
	// Default: 10000
	Capacity int `koanf:"capacity"`
}

// EventsConfig holds settings for the in-process engagement event pipeline:
// the pub/sub bus that fans out recorded engagements, the dedup cache that
// debounces repeats, and the activity tracker that feeds burst detection.
type EventsConfig struct {
	// Enabled controls whether recorded engagements are published to the
	// event bus. Recording itself always works; disabling this only turns
	// off the downstream subscribers (activity tracking, burst detection).
	// Default: true
	Enabled bool `koanf:"enabled"`

	// BufferSize is the per-subscriber channel buffer on the event bus.
	// Default: 1024
	BufferSize int `koanf:"buffer_size"`

	// DedupTTL is how long a (user, bill, type) engagement is considered a
	// repeat sighting for activity-tracking purposes.
	// Default: 5m
	DedupTTL time.Duration `koanf:"dedup_ttl"`

	// DedupCapacity bounds the dedup cache entry count.
	// Default: 10000
	DedupCapacity int `koanf:"dedup_capacity"`

	// ActivityWindow is the sliding window over which per-bill engagement
	// activity is counted.
	// Default: 15m
	ActivityWindow time.Duration `koanf:"activity_window"`

	// ActivityBuckets is the bucket count for the sliding window. More
	// buckets means finer expiry granularity.
	// Default: 15
	ActivityBuckets int `koanf:"activity_buckets"`

	// ActivityMaxKeys bounds how many bills are tracked concurrently.
	// Default: 50000
	ActivityMaxKeys int `koanf:"activity_max_keys"`
}

// RecommendConfig holds recommendation engine settings. These values are
// translated into the engine's own configuration at startup; keeping the
// flat koanf-facing shape here lets every knob map onto a single
// RECOMMEND_* environment variable.
type RecommendConfig struct {
	// Enabled controls whether the recommendation endpoints are served.
	// Default: true
	Enabled bool `koanf:"enabled"`

	// InterestWeight is the composite-score weight of interest matching.
	// Default: 0.4
	InterestWeight float64 `koanf:"interest_weight"`

	// RecencyWeight is the composite-score weight of creation recency.
	// Default: 0.1
	RecencyWeight float64 `koanf:"recency_weight"`

	// PopularityWeight is the composite-score weight of engagement volume.
	// Default: 0.2
	PopularityWeight float64 `koanf:"popularity_weight"`

	// CollaborativeWeight is the composite-score weight of peer signals.
	// Default: 0.3
	CollaborativeWeight float64 `koanf:"collaborative_weight"`

	// SimilarityMinScore is the threshold below which similar bills are
	// dropped from similar-item results.
	// Default: 0.3
	SimilarityMinScore float64 `koanf:"similarity_min_score"`

	// TrendingDecayFactor is the per-day attenuation applied to an
	// engagement's trending contribution as it ages.
	// Default: 0.9
	TrendingDecayFactor float64 `koanf:"trending_decay_factor"`

	// TrendingWindowDays is the trending analysis window when the caller
	// does not supply one.
	// Default: 7
	TrendingWindowDays int `koanf:"trending_window_days"`

	// CollaborativeMinSimilarity is the peer-similarity threshold below
	// which peer engagements are ignored.
	// Default: 0.3
	CollaborativeMinSimilarity float64 `koanf:"collaborative_min_similarity"`

	// DiversityFactor is the penalty strength applied to result lists that
	// repeat a category or sponsor. 0 disables diversity reranking.
	// Default: 0.3
	DiversityFactor float64 `koanf:"diversity_factor"`

	// DefaultLimit is the result count when the caller does not supply one.
	// Default: 10
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit is the maximum result count accepted from callers.
	// Default: 50
	MaxLimit int `koanf:"max_limit"`

	// MaxWindowDays is the maximum trending window accepted from callers.
	// Default: 365
	MaxWindowDays int `koanf:"max_window_days"`

	// QueryTimeout bounds data-provider calls for a single request.
	// Default: 5s
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// CacheEnabled controls whether recommendation results are cached.
	// Default: true
	CacheEnabled bool `koanf:"cache_enabled"`

	// UserCacheTTL is the lifetime of per-user cached results. These are
	// also invalidated when the user records an engagement.
	// Default: 5m
	UserCacheTTL time.Duration `koanf:"user_cache_ttl"`

	// SharedCacheTTL is the lifetime of shared cached results (trending,
	// similar bills).
	// Default: 10m
	SharedCacheTTL time.Duration `koanf:"shared_cache_ttl"`
}

// TrendingConfig holds settings for the background trending refresher that
// keeps the shared trending cache warm and reacts to engagement bursts.
type TrendingConfig struct {
	// Enabled controls whether the refresher service runs.
	// Default: true
	Enabled bool `koanf:"enabled"`

	// RefreshInterval is the steady-state cadence for recomputing the
	// trending list.
	// Default: 10m
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// WarmWindowDays is the trending window the refresher keeps warm.
	// Default: 7
	WarmWindowDays int `koanf:"warm_window_days"`

	// WarmLimit is the result count the refresher keeps warm.
	// Default: 10
	WarmLimit int `koanf:"warm_limit"`

	// BurstThreshold is the engagement count within the activity window
	// that triggers an early refresh.
	// Default: 500
	BurstThreshold int64 `koanf:"burst_threshold"`

	// BurstMinUsers is the unique-user count required alongside the
	// threshold. A single user hammering one bill is not a burst.
	// Default: 25
	BurstMinUsers int `koanf:"burst_min_users"`

	// MinRefreshGap is the minimum spacing between burst-triggered
	// refreshes, steady-state ticks excluded.
	// Default: 1m
	MinRefreshGap time.Duration `koanf:"min_refresh_gap"`
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
