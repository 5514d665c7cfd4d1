// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/agora-civic/agora/internal/recommend"
)

// recencyHalfScaleDays sets how fast freshness decays: exp(-age/30) puts a
// month-old bill at roughly 0.37 and a three-month-old bill near 0.05.
const recencyHalfScaleDays = 30

// Scorer computes the weighted composite score of a single bill for a
// single user. It is stateless apart from its weight vector; one instance
// serves all requests.
type Scorer struct {
	weights recommend.ScoringWeights
}

// NewScorer builds a Scorer. Weights are normalized so they sum to 1;
// an all-zero vector falls back to the default weights.
func NewScorer(weights recommend.ScoringWeights) *Scorer {
	return &Scorer{weights: weights.Normalize()}
}

// Score produces the scored candidate for item as seen by user.
//
// Each sub-score is clamped to [0,1] before weighting, the composite is
// rounded to 2 decimals, and a human-readable reason is attached for every
// sub-score that contributed anything. The collaborative sub-score is
// computed upstream from peer activity and passed in; callers with no peer
// signal pass 0.
func (s *Scorer) Score(item recommend.Item, user recommend.UserContext, collaborative float64, now time.Time) recommend.ScoredCandidate {
	interest := InterestScore(item, user.Interests)
	recency := RecencyScore(item.CreatedAt, now)
	popularity := PopularityScore(item.ViewCount, item.CommentCount, item.ShareCount)
	collaborative = clamp01(collaborative)

	composite := round2(s.weights.Interest*interest +
		s.weights.Recency*recency +
		s.weights.Popularity*popularity +
		s.weights.Collaborative*collaborative)

	reasons := make([]string, 0, 4)
	if interest > 0 {
		reasons = append(reasons, ReasonInterestMatch)
	}
	if recency > 0 {
		reasons = append(reasons, ReasonRecent)
	}
	if popularity > 0 {
		reasons = append(reasons, ReasonPopular)
	}
	if collaborative > 0 {
		reasons = append(reasons, ReasonPeerActivity)
	}

	return recommend.ScoredCandidate{
		Item:       item,
		Score:      composite,
		Reasons:    reasons,
		Confidence: recommend.ConfidenceFor(composite),
	}
}

// InterestScore measures how well a bill matches the user's declared
// interests, in [0,1].
//
// Matching is case-insensitive substring containment, checked two ways:
// against the bill's tags (worth up to 0.5) and against its title,
// description and category text (worth up to 0.3). Each channel scores the
// fraction of interests it matched, so a user with four interests and one
// tag hit gets 0.5*(1/4). No declared interests means no signal, never a
// neutral constant.
func InterestScore(item recommend.Item, interests []string) float64 {
	if len(interests) == 0 {
		return 0
	}

	text := strings.ToLower(item.Title + " " + item.Description + " " + item.Category)

	var tagMatches, textMatches int
	for _, interest := range interests {
		term := strings.ToLower(strings.TrimSpace(interest))
		if term == "" {
			continue
		}
		for _, tag := range item.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				tagMatches++
				break
			}
		}
		if strings.Contains(text, term) {
			textMatches++
		}
	}

	total := float64(len(interests))
	score := 0.5*float64(tagMatches)/total + 0.3*float64(textMatches)/total
	return clamp01(score)
}

// RecencyScore decays exponentially with bill age in days. A missing
// creation timestamp scores 0 rather than being treated as brand new.
func RecencyScore(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	days := now.Sub(createdAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return clamp01(math.Exp(-days / recencyHalfScaleDays))
}

var _ recommend.ItemScorer = (*Scorer)(nil)
