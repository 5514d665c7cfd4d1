// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package scoring implements the pure ranking computations behind bill
// recommendations: interest scoring, item similarity, trend detection,
// collaborative aggregation and diversity reranking.
//
// Every function here is deterministic and total over its documented input
// domain. Nothing reads the wall clock; callers pass "now" in. Nothing
// touches caches or storage. All types are safe for concurrent use.
package scoring

import (
	"math"

	"github.com/agora-civic/agora/internal/recommend"
)

// eventWeights maps engagement types to their signal value. Comments carry
// the strongest intent signal, shares spread reach, views are cheap.
//
// This is the single source of truth shared by the composite scorer, the
// trend detector and the collaborative aggregator. The popularity
// saturation constants below encode the same engagement-value assumption;
// rebalancing one table requires rebalancing the other.
var eventWeights = map[recommend.EngagementType]float64{
	recommend.EngagementView:    0.1,
	recommend.EngagementComment: 0.5,
	recommend.EngagementShare:   0.3,
}

// Engagement counts at which each counter alone saturates the popularity
// score. Kept next to eventWeights; see that comment.
const (
	viewSaturation    = 1000
	commentSaturation = 100
	shareSaturation   = 50
)

// EventWeight returns the signal value of an engagement type.
// Unknown types weigh zero.
func EventWeight(t recommend.EngagementType) float64 {
	return eventWeights[t]
}

// PopularityScore converts raw engagement counters into a single magnitude
// in [0,1]. Each counter contributes linearly until its saturation count;
// the sum is clamped so heavily engaged bills plateau at 1.
func PopularityScore(views, comments, shares int64) float64 {
	raw := float64(views)/viewSaturation +
		float64(comments)/commentSaturation +
		float64(shares)/shareSaturation
	return math.Min(1, raw)
}

// clamp01 bounds v to [0,1]. Every sub-score passes through this before
// weighting.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round2 rounds to 2 decimal places, the precision of composite scores.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
