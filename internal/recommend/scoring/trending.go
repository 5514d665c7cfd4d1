// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/agora-civic/agora/internal/recommend"
)

// TrendDetector surfaces bills with recent engagement momentum. Each event
// contributes its type weight discounted by age, so a burst of comments
// today beats a slow drip of views last week.
type TrendDetector struct {
	decayFactor float64
}

// NewTrendDetector builds a detector with the given per-day decay factor.
// Values outside (0,1] fall back to 0.9, which halves an event's
// contribution roughly every six and a half days.
func NewTrendDetector(decayFactor float64) *TrendDetector {
	if decayFactor <= 0 || decayFactor > 1 {
		decayFactor = 0.9
	}
	return &TrendDetector{decayFactor: decayFactor}
}

// Rank aggregates windowed engagement events per bill and returns the top
// trending bills by descending trend score.
//
// Events referencing bills outside pool are discarded. A bill's trend
// score is the sum of eventWeight * decay^(ageHours/24) over its events;
// velocity is its raw event count divided by windowDays. Bills with no
// positive score are dropped entirely, so a quiet window yields a short or
// empty list rather than zero-score filler. Ties keep pool order.
func (d *TrendDetector) Rank(pool []recommend.Item, events []recommend.EngagementEvent, windowDays, limit int, now time.Time) []recommend.TrendResult {
	results := make([]recommend.TrendResult, 0, len(pool))
	if limit <= 0 || windowDays <= 0 || len(pool) == 0 {
		return results
	}

	inPool := make(map[int64]struct{}, len(pool))
	for _, item := range pool {
		inPool[item.ID] = struct{}{}
	}

	scores := make(map[int64]float64, len(pool))
	counts := make(map[int64]int, len(pool))
	for _, ev := range events {
		if _, ok := inPool[ev.ItemID]; !ok {
			continue
		}
		ageHours := now.Sub(ev.Timestamp).Hours()
		if ageHours < 0 {
			ageHours = 0
		}
		scores[ev.ItemID] += EventWeight(ev.Type) * math.Pow(d.decayFactor, ageHours/24)
		counts[ev.ItemID]++
	}

	for _, item := range pool {
		score, ok := scores[item.ID]
		if !ok || score <= 0 {
			continue
		}
		results = append(results, recommend.TrendResult{
			Item:       item,
			TrendScore: score,
			Velocity:   float64(counts[item.ID]) / float64(windowDays),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TrendScore > results[j].TrendScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

var _ recommend.TrendRanker = (*TrendDetector)(nil)
