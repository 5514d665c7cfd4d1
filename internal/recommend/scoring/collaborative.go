// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package scoring

import (
	"sort"

	"github.com/agora-civic/agora/internal/recommend"
)

// CollaborativeAggregator turns peer engagement into per-bill
// recommendation scores: bills that users similar to you engaged with,
// weighted by how similar those users are and how strong the engagement
// signal was.
type CollaborativeAggregator struct {
	minSimilarity float64
}

// NewCollaborativeAggregator builds an aggregator that ignores peers whose
// similarity to the target user falls below minSimilarity. The threshold
// is clamped to [0,1].
func NewCollaborativeAggregator(minSimilarity float64) *CollaborativeAggregator {
	return &CollaborativeAggregator{minSimilarity: clamp01(minSimilarity)}
}

// Aggregate folds peer engagements into ranked collaborative results.
//
// Each tuple whose peer clears the similarity threshold adds
// eventWeight * similarity to its bill's score, skipping excluded bills
// (already seen by the user) and bills outside pool. Supporting-user
// counts are distinct peers, so one enthusiastic peer commenting five
// times still reads "Liked by 1 similar user(s)". Results sort by
// descending score; ties keep pool order.
func (a *CollaborativeAggregator) Aggregate(excluded map[int64]struct{}, peers []recommend.PeerEngagement, pool []recommend.Item, limit int) []recommend.CollaborativeResult {
	results := make([]recommend.CollaborativeResult, 0, len(pool))
	if limit <= 0 || len(pool) == 0 {
		return results
	}

	inPool := make(map[int64]struct{}, len(pool))
	for _, item := range pool {
		inPool[item.ID] = struct{}{}
	}

	scores := make(map[int64]float64)
	supporters := make(map[int64]map[string]struct{})
	for _, peer := range peers {
		if peer.Similarity < a.minSimilarity {
			continue
		}
		if _, ok := excluded[peer.ItemID]; ok {
			continue
		}
		if _, ok := inPool[peer.ItemID]; !ok {
			continue
		}
		scores[peer.ItemID] += EventWeight(peer.Type) * peer.Similarity
		if supporters[peer.ItemID] == nil {
			supporters[peer.ItemID] = make(map[string]struct{})
		}
		supporters[peer.ItemID][peer.PeerUserID] = struct{}{}
	}

	for _, item := range pool {
		score, ok := scores[item.ID]
		if !ok || score <= 0 {
			continue
		}
		count := len(supporters[item.ID])
		results = append(results, recommend.CollaborativeResult{
			Item:                item,
			Score:               score,
			SupportingUserCount: count,
			Reasons:             []string{PeerSupportReason(count)},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

var _ recommend.CollaborativeRanker = (*CollaborativeAggregator)(nil)
