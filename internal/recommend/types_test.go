// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package recommend

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Confidence
	}{
		{1.0, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.79, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.59, ConfidenceLow},
		{0.4, ConfidenceLow},
		{0.39, ConfidenceMinimal},
		{0.0, ConfidenceMinimal},
		{-0.5, ConfidenceMinimal},
	}

	for _, tt := range tests {
		if got := ConfidenceFor(tt.score); got != tt.want {
			t.Errorf("ConfidenceFor(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestEngagementType_IsValid(t *testing.T) {
	valid := []EngagementType{EngagementView, EngagementComment, EngagementShare}
	for _, typ := range valid {
		if !typ.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", typ)
		}
	}

	invalid := []EngagementType{"", "bookmark", "VIEW", "View"}
	for _, typ := range invalid {
		if typ.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", typ)
		}
	}
}

// Clients depend on these exact field names; renames break the public API.
func TestResultFieldNames(t *testing.T) {
	t.Run("scored candidate", func(t *testing.T) {
		data, err := json.Marshal(ScoredCandidate{
			Item:       Item{ID: 1, Title: "Transit Bond"},
			Score:      0.55,
			Reasons:    []string{"Matches your interests"},
			Confidence: ConfidenceLow,
		})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		for _, field := range []string{`"score"`, `"reasons"`, `"confidence"`, `"item"`} {
			if !strings.Contains(string(data), field) {
				t.Errorf("serialized candidate missing %s: %s", field, data)
			}
		}
	})

	t.Run("similarity result", func(t *testing.T) {
		data, err := json.Marshal(SimilarityResult{Item: Item{ID: 2}, SimilarityScore: 0.3})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if !strings.Contains(string(data), `"similarityScore"`) {
			t.Errorf("serialized similarity missing similarityScore: %s", data)
		}
	})

	t.Run("trend result", func(t *testing.T) {
		data, err := json.Marshal(TrendResult{Item: Item{ID: 3}, TrendScore: 0.3, Velocity: 0.14})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		for _, field := range []string{`"trendScore"`, `"velocity"`} {
			if !strings.Contains(string(data), field) {
				t.Errorf("serialized trend missing %s: %s", field, data)
			}
		}
	})

	t.Run("collaborative result", func(t *testing.T) {
		data, err := json.Marshal(CollaborativeResult{Item: Item{ID: 4}, Score: 0.25, SupportingUserCount: 1})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		for _, field := range []string{`"score"`, `"supportingUserCount"`} {
			if !strings.Contains(string(data), field) {
				t.Errorf("serialized collaborative missing %s: %s", field, data)
			}
		}
	})

	t.Run("item uses camelCase", func(t *testing.T) {
		data, err := json.Marshal(Item{ID: 5, SponsorID: 9, ViewCount: 3})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		for _, field := range []string{`"sponsorId"`, `"viewCount"`, `"createdAt"`} {
			if !strings.Contains(string(data), field) {
				t.Errorf("serialized item missing %s: %s", field, data)
			}
		}
	})
}

func TestUserContext_ExcludedNotSerialized(t *testing.T) {
	data, err := json.Marshal(UserContext{
		UserID:          "user-1",
		Interests:       []string{"health"},
		ExcludedItemIDs: map[int64]struct{}{1: {}},
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "Excluded") || strings.Contains(string(data), "excluded") {
		t.Errorf("excluded set leaked into JSON: %s", data)
	}
}
