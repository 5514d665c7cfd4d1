// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package events

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version. Increment on breaking
// changes to EngagementRecorded.
const SchemaVersion = 1

// TopicEngagements is the bus topic engagement events are published to.
const TopicEngagements = "engagement.recorded"

// PlatformActivityKey is the activity-tracker key aggregating all
// engagement activity, used for burst detection.
const PlatformActivityKey = "platform"

// BillActivityKey returns the activity-tracker key for one bill.
func BillActivityKey(billID int64) string {
	return "bill:" + strconv.FormatInt(billID, 10)
}

// EngagementRecorded is the canonical event emitted after an engagement is
// durably recorded. Consumers must tolerate unknown fields from newer
// schema versions.
type EngagementRecorded struct {
	// SchemaVersion tracks the event format version (default: 1).
	SchemaVersion int `json:"schema_version,omitempty"`

	// EventID uniquely identifies this event instance.
	EventID string `json:"event_id"`

	// UserID is the engaging account.
	UserID string `json:"user_id"`

	// BillID is the bill engaged with.
	BillID int64 `json:"bill_id"`

	// Type is the engagement type (view, comment, share).
	Type string `json:"type"`

	// OccurredAt is when the engagement was recorded.
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEngagementRecorded creates an event with a fresh ID and the current
// schema version.
func NewEngagementRecorded(userID string, billID int64, engagementType string, occurredAt time.Time) *EngagementRecorded {
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return &EngagementRecorded{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		UserID:        userID,
		BillID:        billID,
		Type:          engagementType,
		OccurredAt:    occurredAt,
	}
}

// Validate checks required fields.
func (e *EngagementRecorded) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "required"}
	}
	if e.BillID <= 0 {
		return &ValidationError{Field: "bill_id", Message: "must be positive"}
	}
	switch e.Type {
	case "view", "comment", "share":
	default:
		return &ValidationError{Field: "type", Message: "unknown engagement type " + strconv.Quote(e.Type)}
	}
	return nil
}

// DedupKey identifies the logical engagement for debouncing. Repeats of the
// same (user, bill, type) within the dedup window are one sighting as far
// as activity tracking is concerned.
func (e *EngagementRecorded) DedupKey() string {
	return e.UserID + ":" + strconv.FormatInt(e.BillID, 10) + ":" + e.Type
}

// Marshal validates the event and encodes it as JSON.
func (e *EngagementRecorded) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// ParseEngagement decodes and validates an event payload.
func ParseEngagement(data []byte) (*EngagementRecorded, error) {
	var event EngagementRecorded
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if event.SchemaVersion == 0 {
		event.SchemaVersion = 1
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

// ValidationError reports a field that failed event validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
