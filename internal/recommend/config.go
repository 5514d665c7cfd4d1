// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the contribution of each relevance factor.
	Weights ScoringWeights `json:"weights" koanf:"weights"`

	// Similarity contains parameters for item-to-item similarity.
	Similarity SimilarityConfig `json:"similarity" koanf:"similarity"`

	// Trending contains parameters for trend detection.
	Trending TrendingConfig `json:"trending" koanf:"trending"`

	// Collaborative contains parameters for peer aggregation.
	Collaborative CollaborativeConfig `json:"collaborative" koanf:"collaborative"`

	// Diversity contains parameters for redundancy reduction.
	Diversity DiversityConfig `json:"diversity" koanf:"diversity"`

	// Limits contains operational bounds.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// ScoringWeights defines the contribution of each relevance factor to the
// composite score. The four weights must sum to 1.0; Normalize rescales
// drifted values.
type ScoringWeights struct {
	// Interest is the weight of the interest-match sub-score.
	// Default: 0.4.
	Interest float64 `json:"interest" koanf:"interest"`

	// Recency is the weight of the creation-recency sub-score.
	// Default: 0.1.
	Recency float64 `json:"recency" koanf:"recency"`

	// Popularity is the weight of the engagement-popularity sub-score.
	// Default: 0.2.
	Popularity float64 `json:"popularity" koanf:"popularity"`

	// Collaborative is the weight of the peer-engagement sub-score.
	// The sub-score itself defaults to 0 when no peer data exists, so
	// the effective weight vector always sums to 1.0.
	// Default: 0.3.
	Collaborative float64 `json:"collaborative" koanf:"collaborative"`
}

// Normalize returns a copy with weights rescaled to sum to 1.0.
// All-zero weights fall back to the defaults.
func (w ScoringWeights) Normalize() ScoringWeights {
	sum := w.Interest + w.Recency + w.Popularity + w.Collaborative
	if sum == 0 {
		return DefaultConfig().Weights
	}
	return ScoringWeights{
		Interest:      w.Interest / sum,
		Recency:       w.Recency / sum,
		Popularity:    w.Popularity / sum,
		Collaborative: w.Collaborative / sum,
	}
}

// SimilarityConfig contains parameters for item-to-item similarity.
type SimilarityConfig struct {
	// MinScore is the threshold below which similar items are dropped.
	// Default: 0.3.
	MinScore float64 `json:"min_score" koanf:"min_score"`
}

// TrendingConfig contains parameters for trend detection.
type TrendingConfig struct {
	// DecayFactor is the per-day multiplicative attenuation applied to an
	// event's contribution as it ages.
	// Default: 0.9.
	DecayFactor float64 `json:"decay_factor" koanf:"decay_factor"`

	// DefaultWindowDays is the analysis window when the caller does not
	// supply one.
	// Default: 7.
	DefaultWindowDays int `json:"default_window_days" koanf:"default_window_days"`
}

// CollaborativeConfig contains parameters for peer aggregation.
type CollaborativeConfig struct {
	// MinSimilarity is the peer-similarity threshold below which peer
	// engagements are ignored.
	// Default: 0.3.
	MinSimilarity float64 `json:"min_similarity" koanf:"min_similarity"`
}

// DiversityConfig contains parameters for redundancy reduction.
type DiversityConfig struct {
	// Factor is the penalty strength applied to candidates duplicating an
	// already-ranked item's category or sponsor. 0 disables the pass.
	// Default: 0.3.
	Factor float64 `json:"factor" koanf:"factor"`
}

// LimitsConfig contains operational bounds.
type LimitsConfig struct {
	// DefaultLimit is the result count when the caller does not supply one.
	// Default: 10.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit is the maximum result count accepted from callers.
	// Default: 50.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxWindowDays is the maximum trending window accepted from callers.
	// Default: 365.
	MaxWindowDays int `json:"max_window_days" koanf:"max_window_days"`

	// QueryTimeout bounds collaborator calls for a single request.
	// The pure scoring functions themselves have no timeout concept.
	// Default: 5s.
	QueryTimeout time.Duration `json:"query_timeout" koanf:"query_timeout"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether result caching is active.
	// Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// UserTTL is the lifetime of user-keyed entries (personalized,
	// collaborative). These are also invalidated synchronously when the
	// user records an engagement.
	// Default: 5m.
	UserTTL time.Duration `json:"user_ttl" koanf:"user_ttl"`

	// SharedTTL is the lifetime of global entries (trending, similar
	// items). These expire on TTL only.
	// Default: 10m.
	SharedTTL time.Duration `json:"shared_ttl" koanf:"shared_ttl"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoringWeights{
			Interest:      0.4,
			Recency:       0.1,
			Popularity:    0.2,
			Collaborative: 0.3,
		},
		Similarity: SimilarityConfig{
			MinScore: 0.3,
		},
		Trending: TrendingConfig{
			DecayFactor:       0.9,
			DefaultWindowDays: 7,
		},
		Collaborative: CollaborativeConfig{
			MinSimilarity: 0.3,
		},
		Diversity: DiversityConfig{
			Factor: 0.3,
		},
		Limits: LimitsConfig{
			DefaultLimit:  10,
			MaxLimit:      50,
			MaxWindowDays: 365,
			QueryTimeout:  5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			UserTTL:   5 * time.Minute,
			SharedTTL: 10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Interest < 0 || c.Weights.Recency < 0 ||
		c.Weights.Popularity < 0 || c.Weights.Collaborative < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	sum := c.Weights.Interest + c.Weights.Recency + c.Weights.Popularity + c.Weights.Collaborative
	if sum <= 0 {
		return fmt.Errorf("weights must sum to a positive value, got %f", sum)
	}

	if c.Similarity.MinScore < 0 || c.Similarity.MinScore > 1 {
		return fmt.Errorf("similarity.min_score must be in [0, 1], got %f", c.Similarity.MinScore)
	}

	if c.Trending.DecayFactor <= 0 || c.Trending.DecayFactor > 1 {
		return fmt.Errorf("trending.decay_factor must be in (0, 1], got %f", c.Trending.DecayFactor)
	}
	if c.Trending.DefaultWindowDays < 1 {
		return fmt.Errorf("trending.default_window_days must be positive, got %d", c.Trending.DefaultWindowDays)
	}

	if c.Collaborative.MinSimilarity < 0 || c.Collaborative.MinSimilarity > 1 {
		return fmt.Errorf("collaborative.min_similarity must be in [0, 1], got %f", c.Collaborative.MinSimilarity)
	}

	if c.Diversity.Factor < 0 || c.Diversity.Factor > 1 {
		return fmt.Errorf("diversity.factor must be in [0, 1], got %f", c.Diversity.Factor)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MaxWindowDays < c.Trending.DefaultWindowDays {
		return fmt.Errorf("limits.max_window_days must be >= trending.default_window_days, got %d < %d",
			c.Limits.MaxWindowDays, c.Trending.DefaultWindowDays)
	}
	if c.Limits.QueryTimeout <= 0 {
		return fmt.Errorf("limits.query_timeout must be positive, got %v", c.Limits.QueryTimeout)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	return &Config{
		Weights:       c.Weights,
		Similarity:    c.Similarity,
		Trending:      c.Trending,
		Collaborative: c.Collaborative,
		Diversity:     c.Diversity,
		Limits:        c.Limits,
		Cache:         c.Cache,
	}
}
