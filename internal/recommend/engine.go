// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Circuit breaker settings for the data provider. Five consecutive
// failures open the circuit; after thirty seconds it admits three probes.
const (
	breakerFailureThreshold = 5
	breakerProbeRequests    = 3
	breakerCountInterval    = 60 * time.Second
	breakerOpenTimeout      = 30 * time.Second
)

// Engine orchestrates the ranking pipeline: it validates inputs, consults
// the response cache, fetches collaborator data under a deadline and a
// circuit breaker, runs the pure ranking components and caches the result.
// It is safe for concurrent use.
//
// Collaborator failures never reach callers of the read operations; those
// degrade to an empty list and a warning log. Write failures from
// RecordEngagement are returned, callers must know an engagement was lost.
type Engine struct {
	config     *Config
	logger     zerolog.Logger
	components Components

	providerMu sync.RWMutex
	provider   DataProvider

	cache     ResponseCache
	publisher EventPublisher
	breaker   *gobreaker.CircuitBreaker[interface{}]

	// onBreakerChange, when set, observes breaker transitions. States
	// arrive as the gobreaker names: "closed", "half-open", "open".
	onBreakerChange func(name, from, to string)

	// nowFn supplies "now" to the pure components so scoring stays
	// deterministic under test.
	nowFn func() time.Time

	requests            atomic.Int64
	cacheHits           atomic.Int64
	cacheMisses         atomic.Int64
	degraded            atomic.Int64
	engagementsRecorded atomic.Int64
}

// ResponseCache is the cache surface the engine needs. The cache package's
// Cacher satisfies it; keeping the declaration here leaves this package
// free of internal dependencies.
type ResponseCache interface {
	Get(key string) (interface{}, bool)
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	DeleteByPrefix(prefix string) int
}

// NewEngine creates an engine from a validated config and a complete set
// of ranking components. A nil config gets defaults.
func NewEngine(config *Config, components Components, logger zerolog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if err := components.complete(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:     config.Clone(),
		logger:     logger.With().Str("component", "recommend").Logger(),
		components: components,
		nowFn:      time.Now,
	}

	e.breaker = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        "recommend-data-provider",
		MaxRequests: breakerProbeRequests,
		Interval:    breakerCountInterval,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		// A missing bill is an answer, not a provider outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrItemNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			if fn := e.onBreakerChange; fn != nil {
				fn(name, from.String(), to.String())
			}
		},
	})

	return e, nil
}

// complete reports the first missing component, if any.
func (c Components) complete() error {
	switch {
	case c.Scorer == nil:
		return fmt.Errorf("missing component: scorer")
	case c.Similarity == nil:
		return fmt.Errorf("missing component: similarity ranker")
	case c.Trending == nil:
		return fmt.Errorf("missing component: trend ranker")
	case c.Collaborative == nil:
		return fmt.Errorf("missing component: collaborative ranker")
	case c.Diversity == nil:
		return fmt.Errorf("missing component: diversity reranker")
	}
	return nil
}

// SetDataProvider attaches the storage collaborator. Safe to call while
// the engine is serving.
func (e *Engine) SetDataProvider(provider DataProvider) {
	e.providerMu.Lock()
	e.provider = provider
	e.providerMu.Unlock()
}

// SetCache attaches a response cache. Without one every request computes
// from scratch.
func (e *Engine) SetCache(cache ResponseCache) {
	e.cache = cache
}

// SetPublisher attaches the engagement event publisher. Publishing is
// best effort; a nil publisher disables it.
func (e *Engine) SetPublisher(publisher EventPublisher) {
	e.publisher = publisher
}

// SetBreakerStateFunc registers an observer for circuit breaker state
// transitions, called after the transition is logged. Register before the
// engine starts serving; the callback runs on the request goroutine that
// tripped the breaker and must not block.
func (e *Engine) SetBreakerStateFunc(fn func(name, from, to string)) {
	e.onBreakerChange = fn
}

func (e *Engine) dataProvider() DataProvider {
	e.providerMu.RLock()
	defer e.providerMu.RUnlock()
	return e.provider
}

// Personalized ranks the candidate pool for one user: composite scoring
// per bill with any peer signal blended in, then a diversity pass, then
// truncation to limit.
func (e *Engine) Personalized(ctx context.Context, userID string, limit int) ([]ScoredCandidate, error) {
	e.requests.Add(1)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	limit = e.clampLimit(limit)

	key := fmt.Sprintf("rec:user:%s:personalized:%d", userID, limit)
	if cached, ok := cachedList[ScoredCandidate](e, key); ok {
		return cached, nil
	}

	fetchCtx, cancel := e.collaboratorContext(ctx)
	defer cancel()

	userCtx, err := e.fetchUserContext(fetchCtx, userID)
	if err != nil {
		e.degrade("personalized", err)
		return []ScoredCandidate{}, nil
	}
	pool, err := e.fetchCandidatePool(fetchCtx)
	if err != nil {
		e.degrade("personalized", err)
		return []ScoredCandidate{}, nil
	}
	peers, err := e.fetchPeerEngagements(fetchCtx, userCtx.Interests, userID)
	if err != nil {
		e.degrade("personalized", err)
		return []ScoredCandidate{}, nil
	}

	now := e.nowFn()

	// Reuse the collaborative aggregator for per-bill peer signals; the
	// scorer clamps them into [0,1] before weighting.
	signals := make(map[int64]float64)
	if len(peers) > 0 {
		for _, res := range e.components.Collaborative.Aggregate(userCtx.ExcludedItemIDs, peers, pool, len(pool)) {
			signals[res.Item.ID] = res.Score
		}
	}

	candidates := make([]ScoredCandidate, 0, len(pool))
	for _, item := range pool {
		if _, seen := userCtx.ExcludedItemIDs[item.ID]; seen {
			continue
		}
		candidates = append(candidates, e.components.Scorer.Score(item, *userCtx, signals[item.ID], now))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	candidates = e.components.Diversity.Rerank(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	e.storeCache(key, candidates, e.config.Cache.UserTTL)
	return candidates, nil
}

// SimilarItems ranks the pool by similarity to one source bill. An
// unknown source bill yields an empty list, not an error.
func (e *Engine) SimilarItems(ctx context.Context, itemID int64, limit int) ([]SimilarityResult, error) {
	e.requests.Add(1)
	if itemID <= 0 {
		return nil, fmt.Errorf("%w: item id must be positive", ErrInvalidInput)
	}
	limit = e.clampLimit(limit)

	key := fmt.Sprintf("rec:similar:%d:%d", itemID, limit)
	if cached, ok := cachedList[SimilarityResult](e, key); ok {
		return cached, nil
	}

	fetchCtx, cancel := e.collaboratorContext(ctx)
	defer cancel()

	source, err := e.fetchItem(fetchCtx, itemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			e.logger.Debug().Int64("item_id", itemID).Msg("similar items requested for unknown bill")
		} else {
			e.degrade("similar_items", err)
		}
		return []SimilarityResult{}, nil
	}
	pool, err := e.fetchCandidatePool(fetchCtx)
	if err != nil {
		e.degrade("similar_items", err)
		return []SimilarityResult{}, nil
	}

	results := e.components.Similarity.RankSimilar(*source, pool, limit)

	e.storeCache(key, results, e.config.Cache.SharedTTL)
	return results, nil
}

// Trending ranks bills by recent engagement momentum over a trailing
// window of days.
func (e *Engine) Trending(ctx context.Context, windowDays, limit int) ([]TrendResult, error) {
	e.requests.Add(1)
	windowDays = e.clampWindowDays(windowDays)
	limit = e.clampLimit(limit)

	key := trendingCacheKey(windowDays, limit)
	if cached, ok := cachedList[TrendResult](e, key); ok {
		return cached, nil
	}

	results, err := e.computeTrending(ctx, windowDays, limit)
	if err != nil {
		e.degrade("trending", err)
		return []TrendResult{}, nil
	}

	e.storeCache(key, results, e.config.Cache.SharedTTL)
	return results, nil
}

// WarmTrending recomputes a trending list and overwrites its cache entry
// without consulting the cached copy first. The background refresher calls
// this so interactive requests keep hitting warm entries. Unlike Trending
// it surfaces provider errors, the caller decides how to retry.
func (e *Engine) WarmTrending(ctx context.Context, windowDays, limit int) error {
	windowDays = e.clampWindowDays(windowDays)
	limit = e.clampLimit(limit)

	results, err := e.computeTrending(ctx, windowDays, limit)
	if err != nil {
		return fmt.Errorf("warm trending: %w", err)
	}

	e.storeCache(trendingCacheKey(windowDays, limit), results, e.config.Cache.SharedTTL)
	return nil
}

func (e *Engine) computeTrending(ctx context.Context, windowDays, limit int) ([]TrendResult, error) {
	fetchCtx, cancel := e.collaboratorContext(ctx)
	defer cancel()

	pool, err := e.fetchCandidatePool(fetchCtx)
	if err != nil {
		return nil, err
	}
	events, err := e.fetchWindowedEngagements(fetchCtx, windowDays)
	if err != nil {
		return nil, err
	}

	return e.components.Trending.Rank(pool, events, windowDays, limit, e.nowFn()), nil
}

func trendingCacheKey(windowDays, limit int) string {
	return fmt.Sprintf("rec:trending:%d:%d", windowDays, limit)
}

// Collaborative ranks bills by engagement from users similar to this one.
func (e *Engine) Collaborative(ctx context.Context, userID string, limit int) ([]CollaborativeResult, error) {
	e.requests.Add(1)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	limit = e.clampLimit(limit)

	key := fmt.Sprintf("rec:user:%s:collaborative:%d", userID, limit)
	if cached, ok := cachedList[CollaborativeResult](e, key); ok {
		return cached, nil
	}

	fetchCtx, cancel := e.collaboratorContext(ctx)
	defer cancel()

	userCtx, err := e.fetchUserContext(fetchCtx, userID)
	if err != nil {
		e.degrade("collaborative", err)
		return []CollaborativeResult{}, nil
	}
	peers, err := e.fetchPeerEngagements(fetchCtx, userCtx.Interests, userID)
	if err != nil {
		e.degrade("collaborative", err)
		return []CollaborativeResult{}, nil
	}
	pool, err := e.fetchCandidatePool(fetchCtx)
	if err != nil {
		e.degrade("collaborative", err)
		return []CollaborativeResult{}, nil
	}

	results := e.components.Collaborative.Aggregate(userCtx.ExcludedItemIDs, peers, pool, limit)

	e.storeCache(key, results, e.config.Cache.UserTTL)
	return results, nil
}

// RecordEngagement persists one engagement through the store's atomic
// upsert, publishes the event for background consumers and synchronously
// drops the user's cached recommendations so the next read reflects it.
func (e *Engine) RecordEngagement(ctx context.Context, userID string, itemID int64, engagementType EngagementType) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if itemID <= 0 {
		return fmt.Errorf("%w: item id must be positive", ErrInvalidInput)
	}
	if !engagementType.IsValid() {
		return fmt.Errorf("%w: unknown engagement type %q", ErrInvalidInput, engagementType)
	}

	provider := e.dataProvider()
	if provider == nil {
		return ErrNoDataProvider
	}
	if err := provider.RecordEngagement(ctx, userID, itemID, engagementType); err != nil {
		return fmt.Errorf("record engagement: %w", err)
	}
	e.engagementsRecorded.Add(1)

	event := EngagementEvent{ItemID: itemID, Type: engagementType, Timestamp: e.nowFn()}
	if e.publisher != nil {
		if err := e.publisher.PublishEngagement(userID, event); err != nil {
			e.logger.Warn().Err(err).Str("user_id", userID).Msg("engagement event publish failed")
		}
	}

	e.invalidateUser(userID)
	return nil
}

// invalidateUser drops every cached response keyed to this user.
func (e *Engine) invalidateUser(userID string) {
	if e.cache == nil || !e.config.Cache.Enabled {
		return
	}
	removed := e.cache.DeleteByPrefix(fmt.Sprintf("rec:user:%s:", userID))
	if removed > 0 {
		e.logger.Debug().Str("user_id", userID).Int("entries", removed).Msg("invalidated user cache")
	}
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:            e.requests.Load(),
		CacheHits:           e.cacheHits.Load(),
		CacheMisses:         e.cacheMisses.Load(),
		Degraded:            e.degraded.Load(),
		EngagementsRecorded: e.engagementsRecorded.Load(),
	}
}

// BreakerState reports the data provider circuit state for health checks
// and metrics.
func (e *Engine) BreakerState() string {
	return e.breaker.State().String()
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// clampLimit applies the default for non-positive limits and the
// configured ceiling above it. The API layer rejects out-of-range values
// before they get here; clamping keeps library callers safe too.
func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.config.Limits.DefaultLimit
	}
	if limit > e.config.Limits.MaxLimit {
		return e.config.Limits.MaxLimit
	}
	return limit
}

func (e *Engine) clampWindowDays(windowDays int) int {
	if windowDays <= 0 {
		return e.config.Trending.DefaultWindowDays
	}
	if windowDays > e.config.Limits.MaxWindowDays {
		return e.config.Limits.MaxWindowDays
	}
	return windowDays
}

// collaboratorContext bounds provider calls with the configured query
// timeout. Pure computation runs outside it.
func (e *Engine) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.Limits.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.config.Limits.QueryTimeout)
}

func (e *Engine) degrade(operation string, err error) {
	e.degraded.Add(1)
	e.logger.Warn().Err(err).Str("operation", operation).Msg("collaborator failure, serving empty result")
}

// execute routes a provider call through the circuit breaker.
func (e *Engine) execute(fn func() (interface{}, error)) (interface{}, error) {
	if e.breaker == nil {
		return fn()
	}
	return e.breaker.Execute(fn)
}

func (e *Engine) fetchCandidatePool(ctx context.Context) ([]Item, error) {
	provider := e.dataProvider()
	if provider == nil {
		return nil, ErrNoDataProvider
	}
	v, err := e.execute(func() (interface{}, error) {
		return provider.GetCandidatePool(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pool: %w", err)
	}
	return v.([]Item), nil
}

func (e *Engine) fetchItem(ctx context.Context, itemID int64) (*Item, error) {
	provider := e.dataProvider()
	if provider == nil {
		return nil, ErrNoDataProvider
	}
	v, err := e.execute(func() (interface{}, error) {
		return provider.GetItem(ctx, itemID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	return v.(*Item), nil
}

func (e *Engine) fetchUserContext(ctx context.Context, userID string) (*UserContext, error) {
	provider := e.dataProvider()
	if provider == nil {
		return nil, ErrNoDataProvider
	}
	v, err := e.execute(func() (interface{}, error) {
		return provider.GetUserContext(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch user context: %w", err)
	}
	return v.(*UserContext), nil
}

func (e *Engine) fetchPeerEngagements(ctx context.Context, interests []string, excludeUserID string) ([]PeerEngagement, error) {
	provider := e.dataProvider()
	if provider == nil {
		return nil, ErrNoDataProvider
	}
	v, err := e.execute(func() (interface{}, error) {
		return provider.GetPeerEngagements(ctx, interests, excludeUserID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch peer engagements: %w", err)
	}
	return v.([]PeerEngagement), nil
}

func (e *Engine) fetchWindowedEngagements(ctx context.Context, windowDays int) ([]EngagementEvent, error) {
	provider := e.dataProvider()
	if provider == nil {
		return nil, ErrNoDataProvider
	}
	v, err := e.execute(func() (interface{}, error) {
		return provider.GetWindowedEngagements(ctx, windowDays)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch windowed engagements: %w", err)
	}
	return v.([]EngagementEvent), nil
}

// cachedList reads a typed slice from the cache, counting hits and
// misses. Returns a copy so callers cannot mutate the cached entry.
func cachedList[T any](e *Engine, key string) ([]T, bool) {
	if e.cache == nil || !e.config.Cache.Enabled {
		return nil, false
	}
	v, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil, false
	}
	list, ok := v.([]T)
	if !ok {
		e.cacheMisses.Add(1)
		return nil, false
	}
	e.cacheHits.Add(1)
	out := make([]T, len(list))
	copy(out, list)
	return out, true
}

func (e *Engine) storeCache(key string, value interface{}, ttl time.Duration) {
	if e.cache == nil || !e.config.Cache.Enabled || ttl <= 0 {
		return
	}
	e.cache.SetWithTTL(key, value, ttl)
}
