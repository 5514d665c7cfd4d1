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
	"sort"
	"strings"
	"time"

	"github.com/agora-civic/agora/internal/models"
)

// UpsertUser creates or updates a user account. Interests are replaced
// wholesale; they are lowercased and deduplicated so the peer-overlap query
// can match terms with plain equality.
func (db *DB) UpsertUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	interests := normalizeInterests(user.Interests)

	return db.withTxRetry(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
			user.ID, user.Name, user.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = ?`, user.ID); err != nil {
			return fmt.Errorf("failed to clear user interests: %w", err)
		}

		for _, interest := range interests {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO user_interests (user_id, interest) VALUES (?, ?)`,
				user.ID, interest,
			)
			if err != nil {
				return fmt.Errorf("failed to insert interest %q: %w", interest, err)
			}
		}

		return nil
	})
}

// GetUser retrieves a user with interests, or ErrUserNotFound.
func (db *DB) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Interests, err = db.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserInterests returns a user's interest terms in sorted order. Unknown
// users yield an empty slice, not an error: an account with no profile row
// is treated as a cold-start user.
func (db *DB) GetUserInterests(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT interest FROM user_interests WHERE user_id = ? ORDER BY interest`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user interests: %w", err)
	}
	defer closeQuietly(rows)

	interests := make([]string, 0)
	for rows.Next() {
		var interest string
		if err := rows.Scan(&interest); err != nil {
			return nil, fmt.Errorf("failed to scan interest: %w", err)
		}
		interests = append(interests, interest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interests: %w", err)
	}

	return interests, nil
}

// normalizeInterests lowercases, trims, deduplicates and sorts interest
// terms. Empty terms are dropped.
func normalizeInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))
	for _, raw := range interests {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
