// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/models"
)

// Row bounds for unbounded-growth tables. The event log can hold years of
// activity; callers never need more than the trailing window.
const (
	maxWindowedEventRows = 10000
	maxRecentActivity    = 100
)

// RecordEngagement atomically records one engagement: the aggregated
// (user, bill, type) row is upserted, the bill's denormalized counter is
// bumped, and an event is appended to the log. All three happen in one
// transaction; an unknown bill fails with ErrBillNotFound and writes
// nothing.
func (db *DB) RecordEngagement(ctx context.Context, userID string, billID int64, engagementType models.EngagementType) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if billID <= 0 {
		return fmt.Errorf("bill id must be positive, got %d", billID)
	}
	counterColumn, err := engagementCounterColumn(engagementType)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	eventID := uuid.New().String()

	start := time.Now()
	err = db.withTxRetry(ctx, func(tx *sql.Tx) error {
		// Bumping the counter first doubles as the existence check.
		// counterColumn comes from engagementCounterColumn, never from input.
		bump := fmt.Sprintf(`UPDATE bills SET %s = %s + 1, updated_at = ? WHERE id = ?`, counterColumn, counterColumn)
		res, err := tx.ExecContext(ctx, bump, now, billID)
		if err != nil {
			return fmt.Errorf("failed to update bill counters: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return ErrBillNotFound
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO engagements (user_id, bill_id, engagement_type, count, last_engaged_at)
			VALUES (?, ?, ?, 1, ?)
			ON CONFLICT (user_id, bill_id, engagement_type)
			DO UPDATE SET count = count + 1, last_engaged_at = excluded.last_engaged_at`,
			userID, billID, string(engagementType), now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert engagement: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO engagement_events (id, user_id, bill_id, engagement_type, occurred_at)
			VALUES (?, ?, ?, ?, ?)`,
			eventID, userID, billID, string(engagementType), now,
		)
		if err != nil {
			return fmt.Errorf("failed to append engagement event: %w", err)
		}

		return nil
	})
	metrics.RecordDBQuery("UPSERT", "engagements", time.Since(start), ignoreNotFound(err))

	return err
}

// GetEngagement retrieves the aggregated engagement row for one
// (user, bill, type) triple. Returns nil with no error when the triple has
// never engaged.
func (db *DB) GetEngagement(ctx context.Context, userID string, billID int64, engagementType models.EngagementType) (*models.Engagement, error) {
	var e models.Engagement
	var typ string
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, bill_id, engagement_type, count, last_engaged_at
		FROM engagements
		WHERE user_id = ? AND bill_id = ? AND engagement_type = ?`,
		userID, billID, string(engagementType),
	).Scan(&e.UserID, &e.BillID, &typ, &e.Count, &e.LastEngagedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get engagement: %w", err)
	}
	e.Type = models.EngagementType(typ)
	return &e, nil
}

// GetUserEngagedBillIDs returns the distinct bills a user has engaged with,
// in any way. These are excluded from the user's recommendations.
func (db *DB) GetUserEngagedBillIDs(ctx context.Context, userID string) ([]int64, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT bill_id FROM engagements WHERE user_id = ?`, userID,
	)
	metrics.RecordDBQuery("SELECT", "engagements", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query engaged bills: %w", err)
	}
	defer closeQuietly(rows)

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bill id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating engaged bills: %w", err)
	}

	return ids, nil
}

// GetUserRecentActivity returns the user's most recent engagement events,
// newest first, capped at limit (maxRecentActivity when limit <= 0).
func (db *DB) GetUserRecentActivity(ctx context.Context, userID string, limit int) ([]models.EngagementEvent, error) {
	if limit <= 0 || limit > maxRecentActivity {
		limit = maxRecentActivity
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, bill_id, engagement_type, occurred_at
		FROM engagement_events
		WHERE user_id = ?
		ORDER BY occurred_at DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	defer closeQuietly(rows)

	return scanEngagementEvents(rows)
}

// GetWindowedEngagements returns engagement events inside the trailing
// window, newest first, capped at maxWindowedEventRows.
func (db *DB) GetWindowedEngagements(ctx context.Context, windowDays int) ([]models.EngagementEvent, error) {
	if windowDays <= 0 {
		return []models.EngagementEvent{}, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, bill_id, engagement_type, occurred_at
		FROM engagement_events
		WHERE occurred_at >= ?
		ORDER BY occurred_at DESC
		LIMIT ?`,
		cutoff, maxWindowedEventRows,
	)
	metrics.RecordDBQuery("SELECT", "engagement_events", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query windowed engagements: %w", err)
	}
	defer closeQuietly(rows)

	return scanEngagementEvents(rows)
}

// scanEngagementEvents drains event rows in select-list order.
func scanEngagementEvents(rows *sql.Rows) ([]models.EngagementEvent, error) {
	events := make([]models.EngagementEvent, 0)
	for rows.Next() {
		var ev models.EngagementEvent
		var typ string
		if err := rows.Scan(&ev.UserID, &ev.BillID, &typ, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan engagement event: %w", err)
		}
		ev.Type = models.EngagementType(typ)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating engagement events: %w", err)
	}
	return events, nil
}

// engagementCounterColumn maps an engagement type onto the bill counter it
// increments. The returned name is interpolated into SQL, so it must come
// from this closed set.
func engagementCounterColumn(t models.EngagementType) (string, error) {
	switch t {
	case models.EngagementView:
		return "view_count", nil
	case models.EngagementComment:
		return "comment_count", nil
	case models.EngagementShare:
		return "share_count", nil
	default:
		return "", fmt.Errorf("unknown engagement type %q", t)
	}
}
