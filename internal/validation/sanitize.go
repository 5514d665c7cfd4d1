// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Bounds for the recommendation endpoints. Handlers reject anything
// outside them before the engine ever sees the request.
const (
	MaxUserIDLength   = 100
	MaxItemID         = 999_999_999
	MinLimit          = 1
	MaxLimit          = 50
	DefaultLimit      = 10
	MinWindowDays     = 1
	MaxWindowDays     = 365
	DefaultWindowDays = 7
)

// engagementTypes is the closed set of recordable engagement kinds.
var engagementTypes = map[string]struct{}{
	"view":    {},
	"comment": {},
	"share":   {},
}

// SanitizeUserID trims and validates a user identifier: non-empty,
// at most MaxUserIDLength characters, letters, digits, '-' and '_' only.
func SanitizeUserID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errors.New("userId is required")
	}
	if len(id) > MaxUserIDLength {
		return "", fmt.Errorf("userId must be at most %d characters", MaxUserIDLength)
	}
	for _, r := range id {
		if !isUserIDRune(r) {
			return "", errors.New("userId may contain only letters, digits, '-' and '_'")
		}
	}
	return id, nil
}

func isUserIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

// SanitizeItemID parses a bill identifier from a path segment: a positive
// integer no larger than MaxItemID.
func SanitizeItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	if id < 1 {
		return 0, errors.New("id must be positive")
	}
	if id > MaxItemID {
		return 0, fmt.Errorf("id must be at most %d", MaxItemID)
	}
	return id, nil
}

// SanitizeLimit parses the limit query parameter. Absent means
// DefaultLimit; present means an integer in [MinLimit, MaxLimit].
func SanitizeLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	if limit < MinLimit || limit > MaxLimit {
		return 0, fmt.Errorf("limit must be between %d and %d", MinLimit, MaxLimit)
	}
	return limit, nil
}

// SanitizeWindowDays parses the days query parameter for trending
// windows. Absent means DefaultWindowDays; present means an integer in
// [MinWindowDays, MaxWindowDays].
func SanitizeWindowDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultWindowDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("days must be an integer")
	}
	if days < MinWindowDays || days > MaxWindowDays {
		return 0, fmt.Errorf("days must be between %d and %d", MinWindowDays, MaxWindowDays)
	}
	return days, nil
}

// SanitizeEngagementType validates an engagement type string against the
// closed view/comment/share set. The match is exact; callers lowercase
// nothing on the user's behalf.
func SanitizeEngagementType(raw string) (string, error) {
	typ := strings.TrimSpace(raw)
	if typ == "" {
		return "", errors.New("type is required")
	}
	if _, ok := engagementTypes[typ]; !ok {
		return "", errors.New("type must be one of: view, comment, share")
	}
	return typ, nil
}
