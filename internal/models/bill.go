// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package models defines data structures shared across the Agora application:
// bills, engagement records, users, and the API response envelope.
package models

import (
	"time"
)

// BillStatus is the lifecycle state of a bill.
type BillStatus string

// Bill lifecycle states, in rough legislative order.
const (
	StatusIntroduced BillStatus = "introduced"
	StatusCommittee  BillStatus = "committee"
	StatusFloorVote  BillStatus = "floor_vote"
	StatusPassed     BillStatus = "passed"
	StatusRejected   BillStatus = "rejected"
	StatusWithdrawn  BillStatus = "withdrawn"
)

// IsActive reports whether bills in this status are still moving through the
// legislature. Only active bills enter recommendation candidate pools.
func (s BillStatus) IsActive() bool {
	switch s {
	case StatusIntroduced, StatusCommittee, StatusFloorVote:
		return true
	case StatusPassed, StatusRejected, StatusWithdrawn:
		return false
	default:
		return false
	}
}

// IsValid reports whether the status is a known lifecycle state.
func (s BillStatus) IsValid() bool {
	switch s {
	case StatusIntroduced, StatusCommittee, StatusFloorVote,
		StatusPassed, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// Bill is a tracked piece of legislation.
//
// Category and SponsorID are optional: an empty string and zero value mean
// absent. Tags may be empty. Engagement counters are denormalized totals
// maintained by the engagement upsert; they are never negative.
type Bill struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category,omitempty"`
	Tags         []string   `json:"tags"`
	SponsorID    int64      `json:"sponsor_id,omitempty"`
	Status       BillStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ViewCount    int64      `json:"view_count"`
	CommentCount int64      `json:"comment_count"`
	ShareCount   int64      `json:"share_count"`
}

// EngagementType classifies a user interaction with a bill.
type EngagementType string

// Engagement types recognized by the platform.
const (
	EngagementView    EngagementType = "view"
	EngagementComment EngagementType = "comment"
	EngagementShare   EngagementType = "share"
)

// IsValid reports whether the engagement type is recognized.
func (t EngagementType) IsValid() bool {
	switch t {
	case EngagementView, EngagementComment, EngagementShare:
		return true
	default:
		return false
	}
}

// Engagement is the aggregated engagement state for one (user, bill, type)
// triple. Count increments atomically on each repeat interaction.
type Engagement struct {
	UserID        string         `json:"user_id"`
	BillID        int64          `json:"bill_id"`
	Type          EngagementType `json:"type"`
	Count         int64          `json:"count"`
	LastEngagedAt time.Time      `json:"last_engaged_at"`
}

// EngagementEvent is one row of the append-only engagement log. The log
// drives trending windows and the event bus; the aggregated Engagement rows
// drive exclusion and peer signals.
type EngagementEvent struct {
	UserID     string         `json:"user_id"`
	BillID     int64          `json:"bill_id"`
	Type       EngagementType `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// User is a platform account with declared legislative interests.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
}

// BillFilter narrows ListBills queries.
type BillFilter struct {
	Status   BillStatus
	Category string
	Limit    int
	Offset   int
}
