// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agora-civic/agora/internal/metrics"
)

// refreshTimeout bounds a single trending recomputation.
const refreshTimeout = 30 * time.Second

// burstPollInterval is how often windowed activity is checked against the
// burst threshold between scheduled refreshes.
const burstPollInterval = 15 * time.Second

// TrendingEngine defines the warm-path surface of the recommendation engine.
// This allows the service to refresh trending results without circular imports.
type TrendingEngine interface {
	// WarmTrending recomputes trending for the window and stores it in cache.
	WarmTrending(ctx context.Context, windowDays, limit int) error
}

// ActivitySource reports windowed platform-wide engagement totals.
//
// Satisfied by *events.ActivityConsumer.
type ActivitySource interface {
	PlatformActivity() (count int64, uniqueUsers int)
}

// TrendingRefreshConfig holds configuration for the trending refresh service.
type TrendingRefreshConfig struct {
	// RefreshInterval is how often to recompute trending on schedule.
	RefreshInterval time.Duration

	// WindowDays is the engagement lookback window to warm.
	WindowDays int

	// Limit is the number of trending entries to warm.
	Limit int

	// BurstThreshold is the windowed engagement count that triggers an
	// early refresh. Zero disables burst refreshes.
	BurstThreshold int64

	// BurstMinUsers is the distinct-user floor that must be met alongside
	// BurstThreshold, so one hyperactive account cannot trigger a burst.
	BurstMinUsers int

	// MinRefreshGap rate-limits burst refreshes while activity stays high.
	MinRefreshGap time.Duration
}

// TrendingRefreshService keeps the trending cache warm for Suture supervision.
//
// It refreshes on three triggers:
//   - startup: one warm pass so the first request after boot is served hot
//   - interval: the regular RefreshInterval schedule
//   - burst: windowed engagement crossed BurstThreshold with enough
//     distinct users, rate-limited to one refresh per MinRefreshGap
//
// Refresh failures are logged and retried on the next trigger rather than
// crashing the service, since stale trending beats no trending.
type TrendingRefreshService struct {
	engine   TrendingEngine
	activity ActivitySource
	config   TrendingRefreshConfig
	limiter  *rate.Limiter
	logger   zerolog.Logger
	name     string

	// burstPoll is how often activity is sampled. Shortened in tests.
	burstPoll time.Duration
}

// NewTrendingRefreshService creates a new trending refresh service.
// The activity source may be nil, which disables burst detection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrendingRefreshService(engine TrendingEngine, activity ActivitySource, cfg TrendingRefreshConfig, logger zerolog.Logger) *TrendingRefreshService {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 10 * time.Minute
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 7
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.MinRefreshGap <= 0 {
		cfg.MinRefreshGap = time.Minute
	}
	return &TrendingRefreshService{
		engine:    engine,
		activity:  activity,
		config:    cfg,
		limiter:   rate.NewLimiter(rate.Every(cfg.MinRefreshGap), 1),
		logger:    logger.With().Str("service", "trending").Logger(),
		name:      "trending-refresh",
		burstPoll: burstPollInterval,
	}
}

// Serve implements the suture.Service interface.
// It manages the refresh loop for the trending cache.
func (s *TrendingRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("refresh_interval", s.config.RefreshInterval).
		Int("window_days", s.config.WindowDays).
		Int("limit", s.config.Limit).
		Int64("burst_threshold", s.config.BurstThreshold).
		Msg("trending refresh service starting")

	if err := s.refresh(ctx, "startup"); err != nil {
		s.logger.Warn().Err(err).Msg("startup trending warm failed (will retry on schedule)")
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	// A nil channel never fires, which silently disables the burst branch.
	var burstC <-chan time.Time
	burstEnabled := s.config.BurstThreshold > 0 && s.activity != nil
	if burstEnabled {
		burstTicker := time.NewTicker(s.burstPoll)
		defer burstTicker.Stop()
		burstC = burstTicker.C
	}

	s.logger.Info().Bool("burst_detection", burstEnabled).Msg("trending refresh service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trending refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled trending refresh triggered")
			if err := s.refresh(ctx, "interval"); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled trending refresh failed")
			}

		case <-burstC:
			count, users := s.activity.PlatformActivity()
			if count < s.config.BurstThreshold || users < s.config.BurstMinUsers {
				continue
			}
			if !s.limiter.Allow() {
				s.logger.Debug().
					Int64("count", count).
					Msg("burst refresh suppressed by rate limit")
				continue
			}
			metrics.RecordTrendingBurst()
			s.logger.Info().
				Int64("count", count).
				Int("unique_users", users).
				Msg("engagement burst detected, refreshing trending")
			if err := s.refresh(ctx, "burst"); err != nil {
				s.logger.Warn().Err(err).Msg("burst trending refresh failed")
			}
		}
	}
}

// refresh performs one warm cycle with proper context handling.
func (s *TrendingRefreshService) refresh(ctx context.Context, trigger string) error {
	refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	start := time.Now()
	err := s.engine.WarmTrending(refreshCtx, s.config.WindowDays, s.config.Limit)
	metrics.RecordTrendingRefresh(trigger, time.Since(start), err)
	return err
}

// String returns the service name for logging.
func (s *TrendingRefreshService) String() string {
	return s.name
}
