// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package recommend

import "errors"

// Sentinel errors callers can match with errors.Is. The API layer maps
// ErrInvalidInput to 400 responses; everything else is a 500 unless an
// operation degraded to an empty result instead of failing.
var (
	// ErrItemNotFound is returned by DataProvider.GetItem for unknown bills.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidInput wraps every input rejection so one errors.Is check
	// covers all sanitization failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDataProvider is returned when an operation needs storage but
	// none has been attached.
	ErrNoDataProvider = errors.New("no data provider configured")
)
