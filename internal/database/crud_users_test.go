// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agora-civic/agora/internal/models"
)

func TestUpsertUser_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	created := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)
	in := &models.User{
		ID:        "u-alice",
		Name:      "Alice Nguyen",
		Interests: []string{"Climate", "energy", "climate", "  Conservation "},
		CreatedAt: created,
	}
	if err := db.UpsertUser(ctx, in); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	got, err := db.GetUser(ctx, "u-alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Name != "Alice Nguyen" {
		t.Errorf("Name = %q, want %q", got.Name, "Alice Nguyen")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}

	// Interests come back lowercased, trimmed, deduplicated and sorted.
	want := []string{"climate", "conservation", "energy"}
	if len(got.Interests) != len(want) {
		t.Fatalf("Interests = %v, want %v", got.Interests, want)
	}
	for i := range want {
		if got.Interests[i] != want[i] {
			t.Errorf("Interests[%d] = %q, want %q", i, got.Interests[i], want[i])
		}
	}
}

func TestUpsertUser_ReplacesProfile(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.UpsertUser(ctx, &models.User{
		ID:        "u-bruno",
		Name:      "Bruno",
		Interests: []string{"transit", "rail"},
	}); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	if err := db.UpsertUser(ctx, &models.User{
		ID:        "u-bruno",
		Name:      "Bruno Costa",
		Interests: []string{"housing"},
	}); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	got, err := db.GetUser(ctx, "u-bruno")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Name != "Bruno Costa" {
		t.Errorf("Name = %q, want updated name", got.Name)
	}
	if len(got.Interests) != 1 || got.Interests[0] != "housing" {
		t.Errorf("Interests = %v, want [housing]", got.Interests)
	}
}

func TestUpsertUser_EmptyID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.UpsertUser(context.Background(), &models.User{Name: "Nobody"}); err == nil {
		t.Error("Expected error for empty user id")
	}
}

func TestUpsertUser_NoInterests(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.UpsertUser(ctx, &models.User{ID: "u-carmen", Name: "Carmen"}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	got, err := db.GetUser(ctx, "u-carmen")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Interests == nil || len(got.Interests) != 0 {
		t.Errorf("Interests = %#v, want empty non-nil slice", got.Interests)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetUser(context.Background(), "u-ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserInterests_UnknownUserIsColdStart(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	interests, err := db.GetUserInterests(context.Background(), "u-ghost")
	if err != nil {
		t.Fatalf("GetUserInterests failed: %v", err)
	}
	if interests == nil || len(interests) != 0 {
		t.Errorf("Interests = %#v, want empty non-nil slice", interests)
	}
}

func TestNormalizeInterests(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"lowercase and sort", []string{"Energy", "climate"}, []string{"climate", "energy"}},
		{"dedupe", []string{"rail", "Rail", "RAIL"}, []string{"rail"}},
		{"trim and drop empty", []string{" transit ", "", "   "}, []string{"transit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeInterests(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("normalizeInterests(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
