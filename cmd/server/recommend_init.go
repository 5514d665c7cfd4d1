// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package main

import (
	"fmt"

	"github.com/agora-civic/agora/internal/cache"
	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/database"
	"github.com/agora-civic/agora/internal/events"
	"github.com/agora-civic/agora/internal/logging"
	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/recommend"
	"github.com/agora-civic/agora/internal/recommend/scoring"
)

// initRecommend builds the ranking engine and wires its collaborators:
// the DuckDB data provider, the response cache, the engagement event
// publisher, and breaker state metrics.
//
// The engine is constructed even when RECOMMEND_ENABLED=false, because
// engagement recording and the trending warm path still use it; the flag
// only gates the recommendation read endpoints.
func initRecommend(cfg *config.Config, db *database.DB, eventComponents *EventComponents) (*recommend.Engine, error) {
	logger := logging.Logger()

	engineCfg := buildEngineConfig(cfg)
	components := recommend.Components{
		Scorer:        scoring.NewScorer(engineCfg.Weights),
		Similarity:    scoring.NewSimilarityCalculator(cfg.Recommend.SimilarityMinScore),
		Trending:      scoring.NewTrendDetector(cfg.Recommend.TrendingDecayFactor),
		Collaborative: scoring.NewCollaborativeAggregator(cfg.Recommend.CollaborativeMinSimilarity),
		Diversity:     scoring.NewDiversityRanker(cfg.Recommend.DiversityFactor),
	}

	engine, err := recommend.NewEngine(engineCfg, components, logger)
	if err != nil {
		return nil, fmt.Errorf("create ranking engine: %w", err)
	}

	engine.SetDataProvider(database.NewRankingDataProvider(db))
	engine.SetBreakerStateFunc(metrics.RecordBreakerTransition)

	if cfg.Recommend.CacheEnabled {
		engine.SetCache(cache.NewCacher(cache.CacheConfig{
			Type:     cache.CacheType(cfg.Cache.Type),
			TTL:      cfg.Cache.TTL,
			Capacity: cfg.Cache.Capacity,
		}))
		logging.Info().
			Str("type", cfg.Cache.Type).
			Dur("user_ttl", cfg.Recommend.UserCacheTTL).
			Dur("shared_ttl", cfg.Recommend.SharedCacheTTL).
			Msg("Response cache enabled")
	} else {
		logging.Info().Msg("Response cache disabled (RECOMMEND_CACHE_ENABLED=false)")
	}

	if eventComponents != nil {
		engine.SetPublisher(events.NewEnginePublisher(eventComponents.Bus.Publisher(), logger))
		logging.Info().Msg("Engagement publisher wired to ranking engine")
	}

	if !cfg.Recommend.Enabled {
		logging.Info().Msg("Recommendation endpoints disabled (RECOMMEND_ENABLED=false)")
	}

	logging.Info().
		Float64("interest_weight", cfg.Recommend.InterestWeight).
		Float64("recency_weight", cfg.Recommend.RecencyWeight).
		Float64("popularity_weight", cfg.Recommend.PopularityWeight).
		Float64("collaborative_weight", cfg.Recommend.CollaborativeWeight).
		Float64("diversity_factor", cfg.Recommend.DiversityFactor).
		Msg("Ranking engine initialized")

	return engine, nil
}

// buildEngineConfig translates the flat koanf-facing recommendation
// settings into the engine's nested configuration. Weight normalization
// happens inside the engine and scorer, so raw values pass through.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Weights: recommend.ScoringWeights{
			Interest:      cfg.Recommend.InterestWeight,
			Recency:       cfg.Recommend.RecencyWeight,
			Popularity:    cfg.Recommend.PopularityWeight,
			Collaborative: cfg.Recommend.CollaborativeWeight,
		},
		Similarity: recommend.SimilarityConfig{
			MinScore: cfg.Recommend.SimilarityMinScore,
		},
		Trending: recommend.TrendingConfig{
			DecayFactor:       cfg.Recommend.TrendingDecayFactor,
			DefaultWindowDays: cfg.Recommend.TrendingWindowDays,
		},
		Collaborative: recommend.CollaborativeConfig{
			MinSimilarity: cfg.Recommend.CollaborativeMinSimilarity,
		},
		Diversity: recommend.DiversityConfig{
			Factor: cfg.Recommend.DiversityFactor,
		},
		Limits: recommend.LimitsConfig{
			DefaultLimit:  cfg.Recommend.DefaultLimit,
			MaxLimit:      cfg.Recommend.MaxLimit,
			MaxWindowDays: cfg.Recommend.MaxWindowDays,
			QueryTimeout:  cfg.Recommend.QueryTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:   cfg.Recommend.CacheEnabled,
			UserTTL:   cfg.Recommend.UserCacheTTL,
			SharedTTL: cfg.Recommend.SharedCacheTTL,
		},
	}
}
