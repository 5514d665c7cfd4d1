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

// SimilarityCalculator ranks bills by pairwise similarity to a source
// bill. Similarity blends tag overlap (up to 0.5), shared policy category
// (0.3) and shared sponsor (0.2); the measure is symmetric.
type SimilarityCalculator struct {
	minScore float64
}

// NewSimilarityCalculator builds a calculator that drops candidates
// scoring below minScore. The threshold is clamped to [0,1].
func NewSimilarityCalculator(minScore float64) *SimilarityCalculator {
	return &SimilarityCalculator{minScore: clamp01(minScore)}
}

// RankSimilar scores every pool bill against source, drops the source
// itself and anything under the threshold, and returns the top candidates
// sorted by descending similarity. Ties keep pool order; there is no
// secondary sort key.
func (c *SimilarityCalculator) RankSimilar(source recommend.Item, pool []recommend.Item, limit int) []recommend.SimilarityResult {
	results := make([]recommend.SimilarityResult, 0, len(pool))
	if limit <= 0 {
		return results
	}

	for _, candidate := range pool {
		if candidate.ID == source.ID {
			continue
		}
		score, reasons := Similarity(source, candidate)
		if score < c.minScore {
			continue
		}
		results = append(results, recommend.SimilarityResult{
			Item:            candidate,
			SimilarityScore: score,
			Reasons:         reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Similarity scores a pair of bills in [0,1] and reports which components
// matched. Category and sponsor only count when both sides carry a value;
// two bills with no sponsor on record are not "same sponsor".
func Similarity(a, b recommend.Item) (float64, []string) {
	score := 0.0
	reasons := make([]string, 0, 3)

	if overlap := TagOverlap(a.Tags, b.Tags); overlap > 0 {
		score += 0.5 * overlap
		reasons = append(reasons, ReasonSharedTags)
	}
	if a.Category != "" && b.Category != "" && strings.EqualFold(a.Category, b.Category) {
		score += 0.3
		reasons = append(reasons, ReasonSameCategory)
	}
	if a.SponsorID != 0 && b.SponsorID != 0 && a.SponsorID == b.SponsorID {
		score += 0.2
		reasons = append(reasons, ReasonSameSponsor)
	}

	return clamp01(score), reasons
}

// TagOverlap returns |a ∩ b| / max(|a|, |b|) over case-folded distinct
// tags. Either side empty scores 0; the max denominator keeps the measure
// symmetric and punishes lopsided tag lists.
func TagOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, tag := range a {
		setA[strings.ToLower(tag)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, tag := range b {
		setB[strings.ToLower(tag)] = struct{}{}
	}

	shared := 0
	for tag := range setB {
		if _, ok := setA[tag]; ok {
			shared++
		}
	}

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	return float64(shared) / float64(denom)
}

var _ recommend.SimilarityRanker = (*SimilarityCalculator)(nil)
