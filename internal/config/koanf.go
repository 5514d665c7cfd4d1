// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/agora/config.yaml",
	"/etc/agora/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:                   "/data/agora.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,    // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true, // DuckDB default
			SeedDemoData:           false,
		},
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development", // Set ENVIRONMENT=production for production checks
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Cache: CacheConfig{
			Type:     "ttl",
			TTL:      5 * time.Minute,
			Capacity: 10000,
		},
		Events: EventsConfig{
			Enabled:         true,
			BufferSize:      1024,
			DedupTTL:        5 * time.Minute,
			DedupCapacity:   10000,
			ActivityWindow:  15 * time.Minute,
			ActivityBuckets: 15,
			ActivityMaxKeys: 50000,
		},
		// Recommendation engine configuration.
		// Enabled by default: recommendations are the core product surface.
		Recommend: RecommendConfig{
			Enabled:                    true,
			InterestWeight:             0.4,
			RecencyWeight:              0.1,
			PopularityWeight:           0.2,
			CollaborativeWeight:        0.3,
			SimilarityMinScore:         0.3,
			TrendingDecayFactor:        0.9,
			TrendingWindowDays:         7,
			CollaborativeMinSimilarity: 0.3,
			DiversityFactor:            0.3,
			DefaultLimit:               10,
			MaxLimit:                   50,
			MaxWindowDays:              365,
			QueryTimeout:               5 * time.Second,
			CacheEnabled:               true,
			UserCacheTTL:               5 * time.Minute,
			SharedCacheTTL:             10 * time.Minute,
		},
		Trending: TrendingConfig{
			Enabled:         true,
			RefreshInterval: 10 * time.Minute,
			WarmWindowDays:  7,
			WarmLimit:       10,
			BurstThreshold:  500,
			BurstMinUsers:   25,
			MinRefreshGap:   1 * time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// HTTP_PORT -> server.port
	// DUCKDB_PATH -> database.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - RECOMMEND_DIVERSITY_FACTOR -> recommend.diversity_factor
//   - TRENDING_REFRESH_INTERVAL -> trending.refresh_interval
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	// Map environment variable names to config sections
	envMappings := map[string]string{
		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",
		"seed_demo_data":    "database.seed_demo_data",

		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",
		"trusted_proxies":     "security.trusted_proxies",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Cache mappings
		"cache_type":     "cache.type",
		"cache_ttl":      "cache.ttl",
		"cache_capacity": "cache.capacity",

		// Event pipeline mappings
		"events_enabled":           "events.enabled",
		"events_buffer_size":       "events.buffer_size",
		"events_dedup_ttl":         "events.dedup_ttl",
		"events_dedup_capacity":    "events.dedup_capacity",
		"events_activity_window":   "events.activity_window",
		"events_activity_buckets":  "events.activity_buckets",
		"events_activity_max_keys": "events.activity_max_keys",

		// Recommendation engine mappings
		"recommend_enabled":                      "recommend.enabled",
		"recommend_interest_weight":              "recommend.interest_weight",
		"recommend_recency_weight":               "recommend.recency_weight",
		"recommend_popularity_weight":            "recommend.popularity_weight",
		"recommend_collaborative_weight":         "recommend.collaborative_weight",
		"recommend_similarity_min_score":         "recommend.similarity_min_score",
		"recommend_trending_decay":               "recommend.trending_decay_factor",
		"recommend_trending_window_days":         "recommend.trending_window_days",
		"recommend_collaborative_min_similarity": "recommend.collaborative_min_similarity",
		"recommend_diversity_factor":             "recommend.diversity_factor",
		"recommend_default_limit":                "recommend.default_limit",
		"recommend_max_limit":                    "recommend.max_limit",
		"recommend_max_window_days":              "recommend.max_window_days",
		"recommend_query_timeout":                "recommend.query_timeout",
		"recommend_cache_enabled":                "recommend.cache_enabled",
		"recommend_user_cache_ttl":               "recommend.user_cache_ttl",
		"recommend_shared_cache_ttl":             "recommend.shared_cache_ttl",

		// Trending refresher mappings
		"trending_enabled":          "trending.enabled",
		"trending_refresh_interval": "trending.refresh_interval",
		"trending_warm_window_days": "trending.warm_window_days",
		"trending_warm_limit":       "trending.warm_limit",
		"trending_burst_threshold":  "trending.burst_threshold",
		"trending_burst_min_users":  "trending.burst_min_users",
		"trending_min_refresh_gap":  "trending.min_refresh_gap",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
// This is useful for:
//   - Hot-reload scenarios (with proper mutex protection)
//   - Custom configuration sources
//   - Testing with mock configurations
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	var cfgMu sync.RWMutex
//	var cfg *Config
//
//	err := WatchConfigFile(configPath, func() {
//	    cfgMu.Lock()
//	    defer cfgMu.Unlock()
//	    newCfg, err := LoadWithKoanf()
//	    if err != nil {
//	        log.Printf("Config reload failed: %v", err)
//	        return
//	    }
//	    cfg = newCfg
//	    log.Println("Configuration reloaded successfully")
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
