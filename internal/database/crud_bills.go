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
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/models"
)

// billColumns is the canonical select list for bill queries. scanBill
// expects exactly this order.
var billColumns = []string{
	"id", "title", "description", "category", "tags", "sponsor_id",
	"status", "created_at", "updated_at",
	"view_count", "comment_count", "share_count",
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// CreateBill inserts a new bill. The caller assigns the id; zero timestamps
// are filled with the current time.
func (db *DB) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID <= 0 {
		return fmt.Errorf("bill id must be positive, got %d", bill.ID)
	}
	now := time.Now().UTC()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	if bill.UpdatedAt.IsZero() {
		bill.UpdatedAt = bill.CreatedAt
	}
	if bill.Status == "" {
		bill.Status = models.StatusIntroduced
	}

	tagsJSON, err := encodeTags(bill.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO bills (
		id, title, description, category, tags, sponsor_id,
		status, created_at, updated_at,
		view_count, comment_count, share_count
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query,
		bill.ID, bill.Title, bill.Description, nullString(bill.Category), tagsJSON, nullInt64(bill.SponsorID),
		string(bill.Status), bill.CreatedAt, bill.UpdatedAt,
		bill.ViewCount, bill.CommentCount, bill.ShareCount,
	)
	metrics.RecordDBQuery("INSERT", "bills", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrBillExists
		}
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by id, or ErrBillNotFound.
func (db *DB) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	query := fmt.Sprintf(`SELECT %s FROM bills WHERE id = ?`, strings.Join(billColumns, ", "))

	start := time.Now()
	row := db.conn.QueryRowContext(ctx, query, id)
	bill, err := scanBill(row)
	metrics.RecordDBQuery("SELECT", "bills", time.Since(start), ignoreNotFound(err))
	return bill, err
}

// ListBills returns bills matching the filter, newest first. A zero-valued
// filter returns every bill (bounded by Limit when set).
func (db *DB) ListBills(ctx context.Context, filter models.BillFilter) ([]models.Bill, error) {
	qb := sq.Select(billColumns...).From("bills").OrderBy("created_at DESC", "id DESC")

	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Category != "" {
		qb = qb.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build bill query: %w", err)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "bills", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer closeQuietly(rows)

	bills := make([]models.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}

	return bills, nil
}

// CountBills returns the number of bills matching the filter's status and
// category, ignoring pagination.
func (db *DB) CountBills(ctx context.Context, filter models.BillFilter) (int, error) {
	qb := sq.Select("COUNT(*)").From("bills")
	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Category != "" {
		qb = qb.Where(sq.Eq{"category": filter.Category})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return count, nil
}

// ListCandidateBills returns the most recent bills still moving through the
// legislature, capped at limit. This is the recommendation candidate pool.
func (db *DB) ListCandidateBills(ctx context.Context, limit int) ([]models.Bill, error) {
	activeStatuses := []string{
		string(models.StatusIntroduced),
		string(models.StatusCommittee),
		string(models.StatusFloorVote),
	}

	qb := sq.Select(billColumns...).
		From("bills").
		Where(sq.Eq{"status": activeStatuses}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate query: %w", err)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "bills", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate bills: %w", err)
	}
	defer closeQuietly(rows)

	bills := make([]models.Bill, 0, limit)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate bills: %w", err)
	}

	return bills, nil
}

// scanBill reads one bill row in billColumns order.
func scanBill(row rowScanner) (*models.Bill, error) {
	var (
		b         models.Bill
		category  sql.NullString
		sponsorID sql.NullInt64
		status    string
		tagsJSON  string
	)

	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &category, &tagsJSON, &sponsorID,
		&status, &b.CreatedAt, &b.UpdatedAt,
		&b.ViewCount, &b.CommentCount, &b.ShareCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}

	b.Category = category.String
	b.SponsorID = sponsorID.Int64
	b.Status = models.BillStatus(status)
	b.Tags, err = decodeTags(tagsJSON)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// encodeTags serializes tags for the TEXT column. Nil becomes "[]" so the
// column never stores SQL NULL.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

// decodeTags parses the stored JSON tag array.
func decodeTags(tagsJSON string) ([]string, error) {
	if tagsJSON == "" || tagsJSON == "[]" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullInt64 maps zero to SQL NULL.
func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

// ignoreNotFound drops the not-found sentinels so metrics only count real
// query failures.
func ignoreNotFound(err error) error {
	if errors.Is(err, ErrBillNotFound) || errors.Is(err, ErrUserNotFound) {
		return nil
	}
	return err
}

// isUniqueConstraintError detects DuckDB unique constraint violations.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "unique constraint") || strings.Contains(errMsg, "duplicate key")
}
