// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package config provides centralized configuration management for Agora.

This package handles loading, validation, and parsing of configuration for
all application components. It ensures consistent configuration across the
backend services and provides sensible defaults for every setting, so a bare
`agora-server` binary starts without any environment at all.

# Configuration Sources

Configuration is loaded with Koanf v2 from three layered sources, later
sources overriding earlier ones:

  - Built-in defaults (always present)
  - YAML config file (config.yaml, or the path in CONFIG_PATH)
  - Environment variables (highest priority)

# Configuration Structure

The package organizes configuration into logical groups:

  - DatabaseConfig: DuckDB file path and performance tuning
  - ServerConfig: HTTP server settings (host, port, timeout, environment)
  - APIConfig: Pagination bounds for list endpoints
  - SecurityConfig: Rate limiting and CORS origins
  - LoggingConfig: zerolog level, format, and caller reporting
  - CacheConfig: Response cache strategy (TTL or LFU)
  - EventsConfig: Engagement event bus, dedup, and activity tracking
  - RecommendConfig: Recommendation engine weights, thresholds, and limits
  - TrendingConfig: Background trending refresher and burst detection

# Environment Variables

Database (DatabaseConfig):
  - DUCKDB_PATH: Database file path (default: /data/agora.duckdb)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 2GB)
  - DUCKDB_THREADS: Thread count (default: CPU count)
  - SEED_DEMO_DATA: Seed demo bills and users (default: false)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - ENVIRONMENT: development, staging, production (default: development)

API (APIConfig):
  - API_DEFAULT_PAGE_SIZE: Default list page size (default: 20)
  - API_MAX_PAGE_SIZE: Maximum list page size (default: 100)

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Window duration (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - TRUSTED_PROXIES: Comma-separated trusted proxy IPs

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Response Cache (CacheConfig):
  - CACHE_TYPE: ttl or lfu (default: ttl)
  - CACHE_TTL: Default entry lifetime (default: 5m)
  - CACHE_CAPACITY: LFU entry bound (default: 10000)

Event Pipeline (EventsConfig):
  - EVENTS_ENABLED: Publish recorded engagements (default: true)
  - EVENTS_BUFFER_SIZE: Subscriber channel buffer (default: 1024)
  - EVENTS_DEDUP_TTL: Repeat-engagement debounce window (default: 5m)
  - EVENTS_DEDUP_CAPACITY: Dedup cache bound (default: 10000)
  - EVENTS_ACTIVITY_WINDOW: Activity counting window (default: 15m)
  - EVENTS_ACTIVITY_BUCKETS: Window bucket count (default: 15)
  - EVENTS_ACTIVITY_MAX_KEYS: Tracked bill bound (default: 50000)

Recommendation Engine (RecommendConfig):
  - RECOMMEND_ENABLED: Serve recommendation endpoints (default: true)
  - RECOMMEND_INTEREST_WEIGHT: Interest match weight (default: 0.4)
  - RECOMMEND_RECENCY_WEIGHT: Recency weight (default: 0.1)
  - RECOMMEND_POPULARITY_WEIGHT: Popularity weight (default: 0.2)
  - RECOMMEND_COLLABORATIVE_WEIGHT: Peer signal weight (default: 0.3)
  - RECOMMEND_SIMILARITY_MIN_SCORE: Similar-bill threshold (default: 0.3)
  - RECOMMEND_TRENDING_DECAY: Per-day trending decay (default: 0.9)
  - RECOMMEND_TRENDING_WINDOW_DAYS: Default trending window (default: 7)
  - RECOMMEND_COLLABORATIVE_MIN_SIMILARITY: Peer threshold (default: 0.3)
  - RECOMMEND_DIVERSITY_FACTOR: Repeat-topic penalty (default: 0.3)
  - RECOMMEND_DEFAULT_LIMIT: Default result count (default: 10)
  - RECOMMEND_MAX_LIMIT: Maximum result count (default: 50)
  - RECOMMEND_MAX_WINDOW_DAYS: Maximum trending window (default: 365)
  - RECOMMEND_QUERY_TIMEOUT: Data provider timeout (default: 5s)
  - RECOMMEND_CACHE_ENABLED: Cache results (default: true)
  - RECOMMEND_USER_CACHE_TTL: Per-user result lifetime (default: 5m)
  - RECOMMEND_SHARED_CACHE_TTL: Shared result lifetime (default: 10m)

Trending Refresher (TrendingConfig):
  - TRENDING_ENABLED: Run the background refresher (default: true)
  - TRENDING_REFRESH_INTERVAL: Steady-state cadence (default: 10m)
  - TRENDING_WARM_WINDOW_DAYS: Window kept warm (default: 7)
  - TRENDING_WARM_LIMIT: Result count kept warm (default: 10)
  - TRENDING_BURST_THRESHOLD: Events that trigger early refresh (default: 500)
  - TRENDING_BURST_MIN_USERS: Unique users required for a burst (default: 25)
  - TRENDING_MIN_REFRESH_GAP: Spacing between burst refreshes (default: 1m)

# Usage Example

Basic configuration loading:

	import "github.com/agora-civic/agora/internal/config"

	// Load configuration from defaults, file, and environment
	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	// Access configuration values
	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Database: %s\n", cfg.Database.Path)

Testing with custom configuration:

	// Override environment variables for testing
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("RECOMMEND_DIVERSITY_FACTOR", "0.5")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

The package performs validation on every load:

  - Numeric ranges: HTTP_PORT (1-65535), RECOMMEND_MAX_LIMIT >= default limit
  - Unit intervals: weights non-negative, thresholds within [0, 1]
  - Duration bounds: RATE_LIMIT_WINDOW (1s-1h), TRENDING_REFRESH_INTERVAL >= 10s
  - Enumerations: LOG_LEVEL, LOG_FORMAT, CACHE_TYPE

Disabled components (EVENTS_ENABLED=false, RECOMMEND_ENABLED=false,
TRENDING_ENABLED=false) skip their section's validation entirely.

# Environment Files

For local development, create a .env file:

	# .env
	DUCKDB_PATH=./agora.duckdb
	SEED_DEMO_DATA=true
	HTTP_PORT=8080
	LOG_LEVEL=debug
	LOG_FORMAT=console

The server binary loads .env files when present.

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.

# See Also

  - config.yaml.example: Complete configuration template
  - README.md: User-facing configuration documentation
*/
package config
