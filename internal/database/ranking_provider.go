// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/models"
	"github.com/agora-civic/agora/internal/recommend"
)

// defaultCandidatePoolSize bounds the ranking candidate pool. Candidates are
// the newest active bills, so growing this widens recall at the cost of
// scoring work per request.
const defaultCandidatePoolSize = 500

// RankingDataProvider adapts the store to the ranking core's DataProvider
// contract. It owns the translation between persistence models and ranking
// snapshots, including the not-found sentinel mapping, so the ranking core
// never sees database types.
type RankingDataProvider struct {
	db *DB
}

var _ recommend.DataProvider = (*RankingDataProvider)(nil)

// NewRankingDataProvider returns a DataProvider backed by the store.
func NewRankingDataProvider(db *DB) *RankingDataProvider {
	return &RankingDataProvider{db: db}
}

// GetCandidatePool returns the newest active bills as ranking snapshots.
func (p *RankingDataProvider) GetCandidatePool(ctx context.Context) ([]recommend.Item, error) {
	bills, err := p.db.ListCandidateBills(ctx, defaultCandidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	items := make([]recommend.Item, 0, len(bills))
	for i := range bills {
		items = append(items, toRankingItem(&bills[i]))
	}
	metrics.ObserveCandidatePool(len(items))

	return items, nil
}

// GetItem returns one bill snapshot, or recommend.ErrItemNotFound.
func (p *RankingDataProvider) GetItem(ctx context.Context, itemID int64) (*recommend.Item, error) {
	bill, err := p.db.GetBill(ctx, itemID)
	if errors.Is(err, ErrBillNotFound) {
		return nil, recommend.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	item := toRankingItem(bill)
	return &item, nil
}

// GetUserContext assembles interests, engaged-bill exclusions and recent
// activity. Unknown users resolve to a cold-start context with no error;
// only storage failures propagate.
func (p *RankingDataProvider) GetUserContext(ctx context.Context, userID string) (*recommend.UserContext, error) {
	interests, err := p.db.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user interests: %w", err)
	}

	engagedIDs, err := p.db.GetUserEngagedBillIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load engaged bills: %w", err)
	}
	excluded := make(map[int64]struct{}, len(engagedIDs))
	for _, id := range engagedIDs {
		excluded[id] = struct{}{}
	}

	activity, err := p.db.GetUserRecentActivity(ctx, userID, maxRecentActivity)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	return &recommend.UserContext{
		UserID:          userID,
		Interests:       interests,
		ExcludedItemIDs: excluded,
		RecentActivity:  toRankingEvents(activity),
	}, nil
}

// GetPeerEngagements returns similarity-weighted peer activity rows.
func (p *RankingDataProvider) GetPeerEngagements(ctx context.Context, interests []string, excludeUserID string) ([]recommend.PeerEngagement, error) {
	return p.db.GetPeerEngagements(ctx, interests, excludeUserID)
}

// GetWindowedEngagements returns engagement events inside the trailing
// window as ranking events.
func (p *RankingDataProvider) GetWindowedEngagements(ctx context.Context, windowDays int) ([]recommend.EngagementEvent, error) {
	events, err := p.db.GetWindowedEngagements(ctx, windowDays)
	if err != nil {
		return nil, err
	}
	return toRankingEvents(events), nil
}

// RecordEngagement persists one engagement. Unknown bills surface as
// recommend.ErrItemNotFound so callers match one sentinel for both reads
// and writes.
func (p *RankingDataProvider) RecordEngagement(ctx context.Context, userID string, itemID int64, engagementType recommend.EngagementType) error {
	err := p.db.RecordEngagement(ctx, userID, itemID, models.EngagementType(engagementType))
	if errors.Is(err, ErrBillNotFound) {
		return recommend.ErrItemNotFound
	}
	return err
}

// toRankingItem converts a persisted bill into a ranking snapshot.
func toRankingItem(b *models.Bill) recommend.Item {
	return recommend.Item{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		Category:     b.Category,
		Tags:         b.Tags,
		SponsorID:    b.SponsorID,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		ViewCount:    b.ViewCount,
		CommentCount: b.CommentCount,
		ShareCount:   b.ShareCount,
	}
}

// toRankingEvents converts logged events into ranking events. The ranking
// core keys activity by bill, not by user, so the user column is dropped.
func toRankingEvents(events []models.EngagementEvent) []recommend.EngagementEvent {
	out := make([]recommend.EngagementEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, recommend.EngagementEvent{
			ItemID:    ev.BillID,
			Type:      recommend.EngagementType(ev.Type),
			Timestamp: ev.OccurredAt,
		})
	}
	return out
}
