// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"testing"

	"github.com/agora-civic/agora/internal/models"
)

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}

	billCount, err := db.CountBills(ctx, models.BillFilter{})
	if err != nil {
		t.Fatalf("CountBills failed: %v", err)
	}
	if billCount != len(demoBills()) {
		t.Errorf("Got %d bills, want %d", billCount, len(demoBills()))
	}

	user, err := db.GetUser(ctx, "u-alice")
	if err != nil {
		t.Fatalf("Seeded user missing: %v", err)
	}
	if len(user.Interests) == 0 {
		t.Error("Seeded user has no interests")
	}

	events, err := db.GetWindowedEngagements(ctx, 7)
	if err != nil {
		t.Fatalf("GetWindowedEngagements failed: %v", err)
	}
	if len(events) != len(demoEvents()) {
		t.Errorf("Got %d windowed events, want %d", len(events), len(demoEvents()))
	}
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	billCount, err := db.CountBills(ctx, models.BillFilter{})
	if err != nil {
		t.Fatalf("CountBills failed: %v", err)
	}
	if billCount != len(demoBills()) {
		t.Errorf("Second seed duplicated data: %d bills", billCount)
	}
}

func TestSeedDemoData_SkipsPopulatedDatabase(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	mustCreateBill(t, db, testBill(900))
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}

	billCount, err := db.CountBills(ctx, models.BillFilter{})
	if err != nil {
		t.Fatalf("CountBills failed: %v", err)
	}
	if billCount != 1 {
		t.Errorf("Seed ran against a populated database: %d bills", billCount)
	}
}

// TestSeedDemoData_CountersMatchEvents cross-checks the denormalized bill
// counters against the event log the seed wrote.
func TestSeedDemoData_CountersMatchEvents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}

	perBill := make(map[int64]map[models.EngagementType]int64)
	for _, ev := range demoEvents() {
		if perBill[ev.billID] == nil {
			perBill[ev.billID] = make(map[models.EngagementType]int64)
		}
		perBill[ev.billID][ev.typ]++
	}

	for billID, counts := range perBill {
		bill, err := db.GetBill(ctx, billID)
		if err != nil {
			t.Fatalf("GetBill(%d) failed: %v", billID, err)
		}
		if bill.ViewCount != counts[models.EngagementView] {
			t.Errorf("Bill %d ViewCount = %d, want %d", billID, bill.ViewCount, counts[models.EngagementView])
		}
		if bill.CommentCount != counts[models.EngagementComment] {
			t.Errorf("Bill %d CommentCount = %d, want %d", billID, bill.CommentCount, counts[models.EngagementComment])
		}
		if bill.ShareCount != counts[models.EngagementShare] {
			t.Errorf("Bill %d ShareCount = %d, want %d", billID, bill.ShareCount, counts[models.EngagementShare])
		}
	}
}
