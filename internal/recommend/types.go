// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package recommend

import (
	"context"
	"time"
)

// Note: This package has no dependencies on other internal packages.
// Domain data arrives through the DataProvider interface, which the
// database layer implements, so no circular imports can form between
// ranking and persistence.

// EngagementType classifies a user interaction with a bill.
type EngagementType string

// Engagement types recognized by the ranking core.
const (
	EngagementView    EngagementType = "view"
	EngagementComment EngagementType = "comment"
	EngagementShare   EngagementType = "share"
)

// IsValid reports whether the engagement type is recognized.
func (t EngagementType) IsValid() bool {
	switch t {
	case EngagementView, EngagementComment, EngagementShare:
		return true
	default:
		return false
	}
}

// Item is an immutable snapshot of a recommendable bill.
//
// The ranking core only reads these snapshots; the persistence layer owns
// the underlying records. Category and SponsorID are optional: empty string
// and zero mean absent. A zero CreatedAt means the creation time is unknown.
type Item struct {
	// ID is the bill identifier.
	ID int64 `json:"id"`

	// Title is the bill title.
	Title string `json:"title"`

	// Description is the bill summary text.
	Description string `json:"description"`

	// Category is the policy area (optional).
	Category string `json:"category,omitempty"`

	// Tags is the set of topic tags (may be empty).
	Tags []string `json:"tags"`

	// SponsorID identifies the primary sponsor (0 = absent).
	SponsorID int64 `json:"sponsorId,omitempty"`

	// Status is the bill lifecycle state.
	Status string `json:"status"`

	// CreatedAt is when the bill was introduced on the platform.
	CreatedAt time.Time `json:"createdAt"`

	// ViewCount is the total number of views.
	ViewCount int64 `json:"viewCount"`

	// CommentCount is the total number of comments.
	CommentCount int64 `json:"commentCount"`

	// ShareCount is the total number of shares.
	ShareCount int64 `json:"shareCount"`
}

// UserContext carries everything the ranking core knows about a user.
type UserContext struct {
	// UserID is the platform account identifier.
	UserID string `json:"userId"`

	// Interests is the user's declared interest terms.
	// Comparison against item text is case-insensitive.
	Interests []string `json:"interests"`

	// ExcludedItemIDs are bills the user has already engaged with.
	// They are removed from candidate pools before scoring and are
	// never recommended.
	ExcludedItemIDs map[int64]struct{} `json:"-"`

	// RecentActivity is the user's engagement events inside the lookback
	// window, most recent first.
	RecentActivity []EngagementEvent `json:"recentActivity,omitempty"`
}

// EngagementEvent is a single recorded interaction with a bill.
type EngagementEvent struct {
	// ItemID is the bill the event applies to.
	ItemID int64 `json:"itemId"`

	// Type is the engagement type (view, comment, share).
	Type EngagementType `json:"type"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
}

// PeerEngagement is one joined row of peer activity: a user with overlapping
// interests engaged with a bill. The persistence layer precomputes
// Similarity from shared-interest counting; the ranking core never builds
// that query.
type PeerEngagement struct {
	// PeerUserID identifies the similar user.
	PeerUserID string `json:"peerUserId"`

	// ItemID is the bill the peer engaged with.
	ItemID int64 `json:"itemId"`

	// Type is the engagement type.
	Type EngagementType `json:"type"`

	// Timestamp is when the peer engagement occurred.
	Timestamp time.Time `json:"timestamp"`

	// Similarity is the peer's interest-overlap score with the target
	// user, in [0,1].
	Similarity float64 `json:"similarity"`
}

// Confidence is a discrete label derived from a score via fixed thresholds.
type Confidence string

// Confidence bands for scored candidates.
const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceMinimal Confidence = "minimal"
)

// ConfidenceFor maps a composite score to its confidence band.
// Banding is a pure step function with no smoothing.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	case score >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceMinimal
	}
}

// ScoredCandidate is a candidate bill with its composite relevance score.
type ScoredCandidate struct {
	// Item is the scored bill snapshot.
	Item Item `json:"item"`

	// Score is the composite relevance score, rounded to 2 decimals.
	Score float64 `json:"score"`

	// Reasons explains the score, in the order factors were applied.
	Reasons []string `json:"reasons"`

	// Confidence is the score band (high, medium, low, minimal).
	Confidence Confidence `json:"confidence"`
}

// SimilarityResult is one bill ranked by similarity to a source bill.
type SimilarityResult struct {
	// Item is the similar bill.
	Item Item `json:"item"`

	// SimilarityScore is the bounded similarity in [0,1].
	SimilarityScore float64 `json:"similarityScore"`

	// Reasons lists the matched similarity factors.
	Reasons []string `json:"reasons"`
}

// TrendResult is one bill ranked by time-decayed engagement.
type TrendResult struct {
	// Item is the trending bill.
	Item Item `json:"item"`

	// TrendScore is the decayed engagement magnitude (>= 0, unbounded).
	TrendScore float64 `json:"trendScore"`

	// Velocity is engagements per day inside the analysis window.
	Velocity float64 `json:"velocity"`
}

// CollaborativeResult is one bill ranked by similarity-weighted peer
// engagement.
type CollaborativeResult struct {
	// Item is the recommended bill.
	Item Item `json:"item"`

	// Score is the accumulated similarity-weighted score.
	Score float64 `json:"score"`

	// SupportingUserCount is the number of distinct peers who engaged.
	SupportingUserCount int `json:"supportingUserCount"`

	// Reasons reports the peer support (e.g. "Liked by 3 similar user(s)").
	Reasons []string `json:"reasons"`
}

// DataProvider is the persistence collaborator contract. The database layer
// implements it; the engine never constructs queries itself.
type DataProvider interface {
	// GetCandidatePool returns recent, active-status bills eligible for
	// ranking, bounded by the store's pool limit.
	GetCandidatePool(ctx context.Context) ([]Item, error)

	// GetItem returns one bill snapshot, or ErrItemNotFound.
	GetItem(ctx context.Context, itemID int64) (*Item, error)

	// GetUserContext assembles the user's interests, excluded items and
	// recent activity.
	GetUserContext(ctx context.Context, userID string) (*UserContext, error)

	// GetPeerEngagements returns joined peer-activity tuples for users
	// sharing interests with the given set, excluding the target user.
	GetPeerEngagements(ctx context.Context, interests []string, excludeUserID string) ([]PeerEngagement, error)

	// GetWindowedEngagements returns engagement events inside the trailing
	// window, newest first.
	GetWindowedEngagements(ctx context.Context, windowDays int) ([]EngagementEvent, error)

	// RecordEngagement atomically upserts one engagement for a
	// (user, bill, type) triple.
	RecordEngagement(ctx context.Context, userID string, itemID int64, engagementType EngagementType) error
}

// EventPublisher receives engagement events after they are durably recorded.
// Implementations must not block the recording path for long; failures are
// logged and never surfaced to callers.
type EventPublisher interface {
	PublishEngagement(userID string, event EngagementEvent) error
}

// ItemScorer computes a composite relevance score for one candidate.
// The collaborative argument is the pre-aggregated peer sub-score in [0,1];
// pass 0 when no peer signal exists.
type ItemScorer interface {
	Score(item Item, user UserContext, collaborative float64, now time.Time) ScoredCandidate
}

// SimilarityRanker ranks pool items by similarity to a source item.
type SimilarityRanker interface {
	RankSimilar(source Item, pool []Item, limit int) []SimilarityResult
}

// TrendRanker ranks pool items by decayed engagement inside a window.
type TrendRanker interface {
	Rank(pool []Item, events []EngagementEvent, windowDays, limit int, now time.Time) []TrendResult
}

// CollaborativeRanker aggregates peer engagements into per-item scores.
type CollaborativeRanker interface {
	Aggregate(excluded map[int64]struct{}, peers []PeerEngagement, pool []Item, limit int) []CollaborativeResult
}

// Reranker adjusts an already-sorted candidate list for a secondary
// objective such as diversity.
type Reranker interface {
	Rerank(candidates []ScoredCandidate) []ScoredCandidate
}

// Components bundles the pure scoring implementations the engine composes.
// All of them are stateless and safe for concurrent use.
type Components struct {
	Scorer        ItemScorer
	Similarity    SimilarityRanker
	Trending      TrendRanker
	Collaborative CollaborativeRanker
	Diversity     Reranker
}

// Stats reports engine counters for observability endpoints.
type Stats struct {
	// Requests is the total number of ranking requests served.
	Requests int64 `json:"requests"`

	// CacheHits is the number of responses served from cache.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// Degraded is the number of requests that fell back to an empty
	// result after a collaborator failure.
	Degraded int64 `json:"degraded"`

	// EngagementsRecorded is the number of accepted engagement writes.
	EngagementsRecorded int64 `json:"engagements_recorded"`
}
