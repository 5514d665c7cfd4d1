// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package database provides the persistence layer for bills, users and
// engagement data.
//
// # Overview
//
// This package sits between the application and DuckDB, owning schema
// management, CRUD for the civic domain, and the queries that feed the
// recommendation engine: candidate pools, user contexts, shared-interest
// peer lookups and windowed engagement logs.
//
// # Architecture
//
// The package is organized into domain-specific files:
//
//   - database.go: Connection lifecycle (open, initialize, checkpoint, close)
//   - database_connection.go: Pool tuning and transaction retry on conflicts
//   - database_schema.go: Table creation and index management
//   - migrations.go: Versioned schema migrations
//   - crud_bills.go: Bill CRUD and filtered listing
//   - crud_users.go: User upserts and interest profiles
//   - crud_engagements.go: Engagement recording and event log reads
//   - peer_similarity.go: Shared-interest peer activity query
//   - ranking_provider.go: Adapter implementing the ranking core's DataProvider
//   - seed.go: Demo data for empty databases
//
// # Database Technology
//
// The package uses DuckDB via the CGO driver (github.com/duckdb/duckdb-go/v2).
// DuckDB's columnar execution keeps the windowed event-log scans and
// grouped peer-similarity aggregation fast without precomputed rollups.
// No extensions are loaded; tags are stored as JSON text and decoded in Go.
//
// # Writes and Concurrency
//
// DuckDB uses optimistic concurrency, so concurrent writers can fail with
// transaction conflicts instead of blocking. All multi-statement writes go
// through withTxRetry, which retries conflicted transactions with linear
// backoff. Engagement recording is atomic: the aggregated engagement row,
// the bill's denormalized counter and the appended log event commit
// together or not at all.
//
// # Error Handling
//
//   - Errors are wrapped with fmt.Errorf and %w
//   - Missing rows surface as sentinel errors (ErrBillNotFound, ErrUserNotFound)
//   - Unknown users in interest lookups are cold-start users, not errors
//   - Query durations and failures are recorded via internal/metrics
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	provider := database.NewRankingDataProvider(db)
//	engine.SetDataProvider(provider)
//
// # Package Dependencies
//
// Internal:
//   - internal/models: Persistence model definitions
//   - internal/recommend: DataProvider contract and ranking snapshot types
//   - internal/metrics: Query instrumentation
//
// External:
//   - github.com/duckdb/duckdb-go/v2: DuckDB driver (CGO-based)
//   - github.com/Masterminds/squirrel: Dynamic filter construction for listings
//   - github.com/goccy/go-json: Tag column encoding
//   - github.com/google/uuid: Event log identifiers
package database
