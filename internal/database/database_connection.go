// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Transaction retry tuning. DuckDB uses optimistic concurrency control, so
// two writers touching the same engagement row can conflict; the loser
// retries with a short linear backoff.
const (
	maxTxRetries = 3
	txRetryDelay = 50 * time.Millisecond
)

// configureConnectionPool sets connection pool parameters.
// - max_open: NumCPU() for parallelism
// - max_idle: 2 for connection reuse
// - max_lifetime: 1h to prevent stale connections
// - max_idle_time: 5m for idle connection cleanup
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// withTxRetry runs fn inside a transaction, retrying on DuckDB transaction
// conflicts. Any other error aborts immediately. fn must be safe to run
// again after a rollback.
func (db *DB) withTxRetry(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * txRetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := fn(tx); err != nil {
			rollbackQuietly(tx)
			if isTransactionConflict(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isTransactionConflict(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		return nil
	}

	return fmt.Errorf("transaction failed after %d attempts: %w", maxTxRetries, lastErr)
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict.
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update") ||
		strings.Contains(errStr, "cannot update a table that has been altered")
}
