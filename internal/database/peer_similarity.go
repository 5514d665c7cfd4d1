// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/recommend"
)

// maxPeerEngagementRows bounds the peer-activity join. Collaborative scoring
// weights recent rows most, so the newest rows from the most similar peers
// are the ones worth returning.
const maxPeerEngagementRows = 1000

// GetPeerEngagements returns engagement rows of users who share declared
// interests with the given set, excluding the target user. Similarity is
// computed in SQL as the shared-interest count divided by the size of the
// target's interest set, clamped to 1. Rows arrive ordered by similarity,
// then recency, capped at maxPeerEngagementRows.
//
// An empty interest set has no peers and returns an empty slice.
func (db *DB) GetPeerEngagements(ctx context.Context, interests []string, excludeUserID string) ([]recommend.PeerEngagement, error) {
	terms := normalizeInterests(interests)
	if len(terms) == 0 {
		return []recommend.PeerEngagement{}, nil
	}

	query := fmt.Sprintf(`
		SELECT e.user_id, e.bill_id, e.engagement_type, e.last_engaged_at,
			LEAST(1.0, CAST(p.shared AS DOUBLE) / ?) AS similarity
		FROM (
			SELECT user_id, COUNT(DISTINCT interest) AS shared
			FROM user_interests
			WHERE interest IN (%s) AND user_id <> ?
			GROUP BY user_id
		) AS p
		JOIN engagements e ON e.user_id = p.user_id
		ORDER BY similarity DESC, e.last_engaged_at DESC
		LIMIT ?`,
		buildInClause(len(terms)),
	)

	args := make([]interface{}, 0, len(terms)+3)
	args = append(args, float64(len(terms)))
	for _, term := range terms {
		args = append(args, term)
	}
	args = append(args, excludeUserID, maxPeerEngagementRows)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "user_interests", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query peer engagements: %w", err)
	}
	defer closeQuietly(rows)

	peers := make([]recommend.PeerEngagement, 0)
	for rows.Next() {
		var pe recommend.PeerEngagement
		var typ string
		if err := rows.Scan(&pe.PeerUserID, &pe.ItemID, &typ, &pe.Timestamp, &pe.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan peer engagement: %w", err)
		}
		pe.Type = recommend.EngagementType(typ)
		peers = append(peers, pe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating peer engagements: %w", err)
	}

	return peers, nil
}

// buildInClause returns n comma-separated placeholders for an IN clause.
func buildInClause(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
