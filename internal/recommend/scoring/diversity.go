// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package scoring

import (
	"sort"
	"strings"

	"github.com/agora-civic/agora/internal/recommend"
)

// DiversityRanker penalizes repeated categories and sponsors in a ranked
// list so the top results do not collapse into one policy area or one
// legislator's agenda. It only ever lowers scores, never raises them.
type DiversityRanker struct {
	factor float64
}

// NewDiversityRanker builds a ranker with the given penalty factor in
// [0,1]. Factor 0 disables the pass; factor 1 zeroes every repeat.
func NewDiversityRanker(factor float64) *DiversityRanker {
	return &DiversityRanker{factor: clamp01(factor)}
}

// Rerank walks candidates in their current (score-descending) order and
// multiplies the score of any bill whose category or sponsor already
// appeared by (1 - factor), then re-sorts by the adjusted scores.
//
// A penalized bill still claims its category and sponsor, so the second
// and third repeats in a run are measured against the full set seen so
// far, not just the unpenalized leaders. Confidence is re-derived from
// the adjusted score. Ties after re-sorting keep their prior order.
func (r *DiversityRanker) Rerank(candidates []recommend.ScoredCandidate) []recommend.ScoredCandidate {
	if r.factor == 0 || len(candidates) <= 1 {
		return candidates
	}

	seenCategories := make(map[string]struct{})
	seenSponsors := make(map[int64]struct{})

	reranked := make([]recommend.ScoredCandidate, len(candidates))
	copy(reranked, candidates)

	for i := range reranked {
		item := reranked[i].Item
		category := strings.ToLower(item.Category)

		repeat := false
		if item.Category != "" {
			if _, ok := seenCategories[category]; ok {
				repeat = true
			}
		}
		if item.SponsorID != 0 {
			if _, ok := seenSponsors[item.SponsorID]; ok {
				repeat = true
			}
		}

		if repeat {
			reranked[i].Score *= 1 - r.factor
			reranked[i].Confidence = recommend.ConfidenceFor(reranked[i].Score)
		}

		if item.Category != "" {
			seenCategories[category] = struct{}{}
		}
		if item.SponsorID != 0 {
			seenSponsors[item.SponsorID] = struct{}{}
		}
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})
	return reranked
}

var _ recommend.Reranker = (*DiversityRanker)(nil)
