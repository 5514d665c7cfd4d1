// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"database/sql"
	"errors"
	"io"

	"github.com/agora-civic/agora/internal/logging"
)

// Store errors callers can match with errors.Is.
var (
	// ErrBillNotFound is returned when a bill id matches no row.
	ErrBillNotFound = errors.New("bill not found")

	// ErrUserNotFound is returned when a user id matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrBillExists is returned when creating a bill whose id already exists.
	ErrBillExists = errors.New("bill already exists")
)

// closeWithLog closes a resource and logs any error.
// Use this for cleanup operations where errors should be acknowledged but
// not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// rollbackQuietly rolls back a transaction and ignores the error; a failed
// rollback after a failed statement carries no extra information.
func rollbackQuietly(tx *sql.Tx) {
	if tx != nil {
		_ = tx.Rollback()
	}
}
