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
	"path/filepath"
	"testing"
	"time"

	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/models"
)

// testDBSemaphore serializes DuckDB lifecycles across tests. Concurrent
// CGO database operations can hang under CI resource pressure, so only one
// test holds an open database at a time. Released via t.Cleanup when the
// test completes, not when setup returns.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory test database and holds the DuckDB
// semaphore for the whole test lifecycle.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}

// mustCreateBill inserts a bill or fails the test.
func mustCreateBill(t *testing.T, db *DB, bill *models.Bill) {
	t.Helper()
	if err := db.CreateBill(context.Background(), bill); err != nil {
		t.Fatalf("Failed to create bill %d: %v", bill.ID, err)
	}
}

// testBill returns a valid bill with predictable fields.
func testBill(id int64) *models.Bill {
	return &models.Bill{
		ID:          id,
		Title:       fmt.Sprintf("Test Bill %d", id),
		Description: "A bill used in tests.",
		Category:    "environment",
		Tags:        []string{"climate", "water"},
		SponsorID:   100 + id,
		Status:      models.StatusIntroduced,
	}
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNew_FileBackedPersistence(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      filepath.Join(t.TempDir(), "data", "agora.db"),
		MaxMemory: "512MB",
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create file-backed database: %v", err)
	}

	mustCreateBill(t, db, testBill(1))
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	// Reopen and verify the row survived the checkpoint-on-close.
	db, err = New(cfg)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	bill, err := db.GetBill(context.Background(), 1)
	if err != nil {
		t.Fatalf("Failed to get bill after reopen: %v", err)
	}
	if bill.Title != "Test Bill 1" {
		t.Errorf("Expected title %q, got %q", "Test Bill 1", bill.Title)
	}
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.Checkpoint(context.Background()); err != nil {
		t.Errorf("Checkpoint failed: %v", err)
	}
}

func TestSchemaInitialization_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// CREATE TABLE IF NOT EXISTS and the migration ledger make a second
	// initialization a no-op rather than an error.
	if err := db.initialize(); err != nil {
		t.Errorf("Second initialization failed: %v", err)
	}
}

func TestWithTxRetry_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	sentinel := errors.New("forced failure")
	err := db.withTxRetry(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
			"u-rollback", "Rollback", time.Now().UTC(),
		); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected forced failure, got %v", err)
	}

	if _, err := db.GetUser(ctx, "u-rollback"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after rollback, got %v", err)
	}
}

func TestIsTransactionConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"conflict on update", errors.New("Conflict on update of table bills"), true},
		{"transaction conflict", errors.New("TransactionContext Error: Transaction conflict"), true},
		{"altered table", errors.New("cannot update a table that has been altered"), true},
		{"other error", errors.New("syntax error near SELECT"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransactionConflict(tt.err); got != tt.want {
				t.Errorf("isTransactionConflict(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"unique constraint", errors.New(`Constraint Error: Duplicate key "id: 1" violates unique constraint`), true},
		{"duplicate key", errors.New("duplicate key value"), true},
		{"other error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueConstraintError(tt.err); got != tt.want {
				t.Errorf("isUniqueConstraintError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
