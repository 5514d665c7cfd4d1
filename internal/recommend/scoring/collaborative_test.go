// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package scoring

import (
	"testing"
	"time"

	"github.com/agora-civic/agora/internal/recommend"
)

func TestCollaborativeAggregator_Aggregate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	pool := []recommend.Item{
		{ID: 1, Title: "Transit Bond"},
		{ID: 2, Title: "Water Rights"},
		{ID: 3, Title: "School Funding"},
	}
	agg := NewCollaborativeAggregator(0.3)

	t.Run("single qualifying peer", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.5},
		}
		got := agg.Aggregate(nil, peers, pool, 10)

		if len(got) != 1 {
			t.Fatalf("len(got) = %d, want 1", len(got))
		}
		// comment weight 0.5 * similarity 0.5 = 0.25
		if !almostEqual(got[0].Score, 0.25) {
			t.Errorf("Score = %f, want 0.25", got[0].Score)
		}
		if got[0].SupportingUserCount != 1 {
			t.Errorf("SupportingUserCount = %d, want 1", got[0].SupportingUserCount)
		}
		if len(got[0].Reasons) != 1 || got[0].Reasons[0] != "Liked by 1 similar user(s)" {
			t.Errorf("Reasons = %v, want [Liked by 1 similar user(s)]", got[0].Reasons)
		}
	})

	t.Run("peers below the similarity threshold are ignored", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.2},
		}
		if got := agg.Aggregate(nil, peers, pool, 10); len(got) != 0 {
			t.Errorf("len(got) = %d, want 0", len(got))
		}
	})

	t.Run("similarity equal to the threshold qualifies", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementView, Timestamp: now, Similarity: 0.3},
		}
		if got := agg.Aggregate(nil, peers, pool, 10); len(got) != 1 {
			t.Errorf("len(got) = %d, want 1", len(got))
		}
	})

	t.Run("excluded bills are skipped", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.9},
			{PeerUserID: "p1", ItemID: 2, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.9},
		}
		excluded := map[int64]struct{}{1: {}}
		got := agg.Aggregate(excluded, peers, pool, 10)

		if len(got) != 1 || got[0].Item.ID != 2 {
			t.Fatalf("got = %+v, want only item 2", got)
		}
	})

	t.Run("engagements outside the pool are skipped", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 999, Type: recommend.EngagementShare, Timestamp: now, Similarity: 0.9},
		}
		if got := agg.Aggregate(nil, peers, pool, 10); len(got) != 0 {
			t.Errorf("len(got) = %d, want 0", len(got))
		}
	})

	t.Run("repeat engagements by one peer count once", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.5},
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementView, Timestamp: now, Similarity: 0.5},
		}
		got := agg.Aggregate(nil, peers, pool, 10)

		if len(got) != 1 {
			t.Fatalf("len(got) = %d, want 1", len(got))
		}
		// Score accumulates both events: 0.5*0.5 + 0.1*0.5 = 0.30.
		if !almostEqual(got[0].Score, 0.30) {
			t.Errorf("Score = %f, want 0.30", got[0].Score)
		}
		if got[0].SupportingUserCount != 1 {
			t.Errorf("SupportingUserCount = %d, want 1 (distinct peers)", got[0].SupportingUserCount)
		}
	})

	t.Run("multiple peers accumulate and count distinctly", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 2, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.8},
			{PeerUserID: "p2", ItemID: 2, Type: recommend.EngagementShare, Timestamp: now, Similarity: 0.5},
			{PeerUserID: "p3", ItemID: 2, Type: recommend.EngagementView, Timestamp: now, Similarity: 0.4},
		}
		got := agg.Aggregate(nil, peers, pool, 10)

		if len(got) != 1 {
			t.Fatalf("len(got) = %d, want 1", len(got))
		}
		// 0.5*0.8 + 0.3*0.5 + 0.1*0.4 = 0.59
		if !almostEqual(got[0].Score, 0.59) {
			t.Errorf("Score = %f, want 0.59", got[0].Score)
		}
		if got[0].SupportingUserCount != 3 {
			t.Errorf("SupportingUserCount = %d, want 3", got[0].SupportingUserCount)
		}
		if got[0].Reasons[0] != "Liked by 3 similar user(s)" {
			t.Errorf("Reasons[0] = %q, want %q", got[0].Reasons[0], "Liked by 3 similar user(s)")
		}
	})

	t.Run("results sort by descending score and truncate", func(t *testing.T) {
		peers := []recommend.PeerEngagement{
			{PeerUserID: "p1", ItemID: 1, Type: recommend.EngagementView, Timestamp: now, Similarity: 0.5},
			{PeerUserID: "p1", ItemID: 2, Type: recommend.EngagementComment, Timestamp: now, Similarity: 0.5},
			{PeerUserID: "p1", ItemID: 3, Type: recommend.EngagementShare, Timestamp: now, Similarity: 0.5},
		}
		got := agg.Aggregate(nil, peers, pool, 2)

		if len(got) != 2 {
			t.Fatalf("len(got) = %d, want 2", len(got))
		}
		if got[0].Item.ID != 2 || got[1].Item.ID != 3 {
			t.Errorf("got IDs = [%d %d], want [2 3]", got[0].Item.ID, got[1].Item.ID)
		}
	})

	t.Run("no peers yields empty list", func(t *testing.T) {
		if got := agg.Aggregate(nil, nil, pool, 10); len(got) != 0 {
			t.Errorf("len(got) = %d, want 0", len(got))
		}
	})
}
