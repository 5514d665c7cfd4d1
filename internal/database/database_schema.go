// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
database_schema.go - Database Schema Management

This file manages the DuckDB database schema including table creation
and index management for optimal query performance.

Tables:
  - bills: Tracked legislation with denormalized engagement counters
    (view_count, comment_count, share_count maintained by the engagement
    upsert). Tags are stored as a JSON array in a TEXT column.
  - users: Platform accounts.
  - user_interests: One row per (user, interest term), lowercased at write
    time so the peer-overlap query can match terms with plain equality.
  - engagements: Aggregated engagement state, one row per
    (user_id, bill_id, engagement_type) with count and last_engaged_at,
    upserted atomically.
  - engagement_events: Append-only log of individual engagements, driving
    trending windows and the event bus.

Schema Strategy (Pre-Release):
All columns are defined in the initial CREATE TABLE statement. Versioned
migrations in migrations.go take over once real deployments exist.

Index Strategy:
Indexes cover the hot paths: candidate pool selection (status + recency),
per-user engagement lookups, per-bill engagement lookups, the trailing
trending window on the event log, and interest-overlap grouping.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// tableCreationQueries returns the table creation SQL statements.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS bills (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			sponsor_id BIGINT,
			status TEXT NOT NULL DEFAULT 'introduced',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			view_count BIGINT NOT NULL DEFAULT 0,
			comment_count BIGINT NOT NULL DEFAULT 0,
			share_count BIGINT NOT NULL DEFAULT 0
		);`,

		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS user_interests (
			user_id TEXT NOT NULL,
			interest TEXT NOT NULL,
			PRIMARY KEY (user_id, interest)
		);`,

		`CREATE TABLE IF NOT EXISTS engagements (
			user_id TEXT NOT NULL,
			bill_id BIGINT NOT NULL,
			engagement_type TEXT NOT NULL,
			count BIGINT NOT NULL DEFAULT 1,
			last_engaged_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, bill_id, engagement_type)
		);`,

		`CREATE TABLE IF NOT EXISTS engagement_events (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			bill_id BIGINT NOT NULL,
			engagement_type TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
}

// createIndexes creates indexes for frequently queried columns.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_bills_status_created ON bills(status, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_bills_category ON bills(category);`,

		`CREATE INDEX IF NOT EXISTS idx_engagements_user ON engagements(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_engagements_bill ON engagements(bill_id);`,

		`CREATE INDEX IF NOT EXISTS idx_events_occurred ON engagement_events(occurred_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_events_user ON engagement_events(user_id, occurred_at DESC);`,

		`CREATE INDEX IF NOT EXISTS idx_user_interests_interest ON user_interests(interest);`,
	}

	for _, idx := range indexes {
		if _, err := db.conn.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", idx, err)
		}
	}

	return nil
}
