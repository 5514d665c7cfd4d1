// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/agora-civic/agora/internal/logging"
	"github.com/agora-civic/agora/internal/models"
)

// seedBill is one demo bill. Age is relative so the recency signal stays
// meaningful no matter when the seed runs.
type seedBill struct {
	id          int64
	title       string
	description string
	category    string
	tags        []string
	sponsorID   int64
	status      models.BillStatus
	ageDays     int
}

// seedUser is one demo account with declared interests.
type seedUser struct {
	id        string
	name      string
	interests []string
}

// seedEvent is one demo engagement, back-dated by hoursAgo.
type seedEvent struct {
	userID   string
	billID   int64
	typ      models.EngagementType
	hoursAgo int
}

// SeedDemoData populates an empty database with a small legislature:
// bills across policy areas, users with overlapping interests, and a few
// days of engagement history so personalized, collaborative and trending
// results are non-trivial out of the box. A database that already contains
// bills is left untouched.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM bills`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing bills: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("bills", count).Msg("Database already populated, skipping demo seed")
		return nil
	}

	now := time.Now().UTC()
	bills := demoBills()
	users := demoUsers()
	events := demoEvents()

	// Oldest first so upserted last_engaged_at ends on the newest event.
	sort.Slice(events, func(i, j int) bool {
		return events[i].hoursAgo > events[j].hoursAgo
	})

	err := db.withTxRetry(ctx, func(tx *sql.Tx) error {
		for _, b := range bills {
			createdAt := now.AddDate(0, 0, -b.ageDays)
			tags, err := encodeTags(b.tags)
			if err != nil {
				return fmt.Errorf("failed to encode seed tags: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO bills (id, title, description, category, tags, sponsor_id, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				b.id, b.title, b.description, b.category, tags, b.sponsorID, string(b.status), createdAt, createdAt,
			)
			if err != nil {
				return fmt.Errorf("failed to seed bill %d: %w", b.id, err)
			}
		}

		for _, u := range users {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
				u.id, u.name, now.AddDate(0, -1, 0),
			)
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.id, err)
			}
			for _, interest := range normalizeInterests(u.interests) {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO user_interests (user_id, interest) VALUES (?, ?)`,
					u.id, interest,
				)
				if err != nil {
					return fmt.Errorf("failed to seed interest for %s: %w", u.id, err)
				}
			}
		}

		for _, ev := range events {
			occurredAt := now.Add(-time.Duration(ev.hoursAgo) * time.Hour)
			column, err := engagementCounterColumn(ev.typ)
			if err != nil {
				return err
			}
			bump := fmt.Sprintf(`UPDATE bills SET %s = %s + 1 WHERE id = ?`, column, column)
			if _, err := tx.ExecContext(ctx, bump, ev.billID); err != nil {
				return fmt.Errorf("failed to seed counter for bill %d: %w", ev.billID, err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO engagements (user_id, bill_id, engagement_type, count, last_engaged_at)
				VALUES (?, ?, ?, 1, ?)
				ON CONFLICT (user_id, bill_id, engagement_type)
				DO UPDATE SET count = count + 1, last_engaged_at = excluded.last_engaged_at`,
				ev.userID, ev.billID, string(ev.typ), occurredAt,
			)
			if err != nil {
				return fmt.Errorf("failed to seed engagement: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO engagement_events (id, user_id, bill_id, engagement_type, occurred_at)
				VALUES (?, ?, ?, ?, ?)`,
				uuid.New().String(), ev.userID, ev.billID, string(ev.typ), occurredAt,
			)
			if err != nil {
				return fmt.Errorf("failed to seed engagement event: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	logging.Info().
		Int("bills", len(bills)).
		Int("users", len(users)).
		Int("events", len(events)).
		Msg("Seeded demo data")

	return nil
}

func demoBills() []seedBill {
	return []seedBill{
		{1, "Clean Rivers Restoration Act", "Funds watershed cleanup and riparian buffer restoration along urban waterways.", "environment", []string{"water", "conservation", "infrastructure"}, 101, models.StatusIntroduced, 2},
		{2, "Municipal Broadband Expansion Act", "Authorizes municipalities to build and operate public broadband networks.", "technology", []string{"broadband", "infrastructure", "rural"}, 102, models.StatusCommittee, 5},
		{3, "Affordable Housing Trust Fund", "Establishes a dedicated fund for below-market housing construction.", "housing", []string{"housing", "affordability", "zoning"}, 103, models.StatusFloorVote, 8},
		{4, "School Meal Access Act", "Extends no-cost school meals to all public school students.", "education", []string{"nutrition", "schools", "children"}, 104, models.StatusIntroduced, 1},
		{5, "Transit Modernization Bond", "Issues bonds for rolling stock replacement and signal upgrades.", "transportation", []string{"transit", "funding", "rail"}, 105, models.StatusCommittee, 12},
		{6, "Community Solar Incentive Act", "Creates shared solar subscriptions with bill credits for renters.", "environment", []string{"solar", "energy", "climate"}, 101, models.StatusIntroduced, 3},
		{7, "Small Business Licensing Reform", "Consolidates overlapping municipal licenses into a single permit.", "economy", []string{"small-business", "licensing", "reform"}, 106, models.StatusCommittee, 20},
		{8, "Telehealth Access Expansion", "Requires insurers to reimburse telehealth visits at parity.", "healthcare", []string{"telehealth", "insurance", "rural"}, 107, models.StatusFloorVote, 6},
		{9, "Open Records Modernization Act", "Moves public records requests to a searchable online portal.", "justice", []string{"transparency", "records", "technology"}, 108, models.StatusIntroduced, 4},
		{10, "Urban Tree Canopy Initiative", "Targets tree planting in neighborhoods with the least shade cover.", "environment", []string{"climate", "parks", "conservation"}, 103, models.StatusIntroduced, 9},
		{11, "Teacher Retention Grant Program", "Funds retention bonuses and housing stipends for public school teachers.", "education", []string{"teachers", "funding", "schools"}, 104, models.StatusCommittee, 15},
		{12, "Regional Rail Safety Act", "Mandates grade crossing upgrades on regional freight corridors.", "transportation", []string{"rail", "safety", "infrastructure"}, 105, models.StatusIntroduced, 7},
		{13, "Prescription Cost Transparency Act", "Requires drug makers to disclose price increases above inflation.", "healthcare", []string{"pharmaceuticals", "transparency", "pricing"}, 107, models.StatusCommittee, 11},
		{14, "Youth Civic Apprenticeship Act", "Places high school students in paid local government apprenticeships.", "education", []string{"youth", "civics", "employment"}, 108, models.StatusIntroduced, 2},
		{15, "Floodplain Resilience Act", "Updates floodplain maps and funds voluntary buyouts.", "environment", []string{"flooding", "climate", "insurance"}, 101, models.StatusPassed, 40},
	}
}

func demoUsers() []seedUser {
	return []seedUser{
		{"u-alice", "Alice Nguyen", []string{"environment", "climate", "conservation"}},
		{"u-bruno", "Bruno Costa", []string{"transit", "infrastructure", "rail"}},
		{"u-carmen", "Carmen Reyes", []string{"education", "schools", "youth"}},
		{"u-devi", "Devi Sharma", []string{"healthcare", "telehealth", "pricing"}},
		{"u-elias", "Elias Berg", []string{"climate", "energy", "environment"}},
		{"u-farah", "Farah Haddad", []string{"housing", "zoning", "affordability"}},
	}
}

// demoEvents concentrates recent activity on the environment bills so the
// trending window has a clear signal, and has u-elias engage with bills
// u-alice has not seen so her collaborative results are non-empty.
func demoEvents() []seedEvent {
	return []seedEvent{
		{"u-alice", 1, models.EngagementView, 30},
		{"u-alice", 1, models.EngagementComment, 28},
		{"u-alice", 10, models.EngagementView, 50},
		{"u-elias", 1, models.EngagementView, 26},
		{"u-elias", 6, models.EngagementView, 10},
		{"u-elias", 6, models.EngagementComment, 9},
		{"u-elias", 6, models.EngagementShare, 8},
		{"u-elias", 10, models.EngagementComment, 40},
		{"u-bruno", 5, models.EngagementView, 60},
		{"u-bruno", 5, models.EngagementComment, 58},
		{"u-bruno", 12, models.EngagementView, 22},
		{"u-bruno", 12, models.EngagementShare, 20},
		{"u-bruno", 2, models.EngagementView, 45},
		{"u-carmen", 4, models.EngagementView, 6},
		{"u-carmen", 4, models.EngagementComment, 5},
		{"u-carmen", 4, models.EngagementShare, 4},
		{"u-carmen", 11, models.EngagementView, 70},
		{"u-carmen", 14, models.EngagementView, 12},
		{"u-devi", 8, models.EngagementView, 16},
		{"u-devi", 8, models.EngagementComment, 14},
		{"u-devi", 13, models.EngagementView, 33},
		{"u-devi", 13, models.EngagementShare, 31},
		{"u-farah", 3, models.EngagementView, 18},
		{"u-farah", 3, models.EngagementComment, 17},
		{"u-farah", 3, models.EngagementShare, 15},
		{"u-farah", 9, models.EngagementView, 48},
		{"u-alice", 6, models.EngagementView, 2},
		{"u-elias", 12, models.EngagementView, 36},
		{"u-bruno", 6, models.EngagementView, 7},
		{"u-carmen", 6, models.EngagementView, 3},
		{"u-devi", 6, models.EngagementView, 1},
		{"u-farah", 6, models.EngagementView, 5},
	}
}
