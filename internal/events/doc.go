// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package events provides the in-process engagement event pipeline built on
// Watermill. Engagements are written to DuckDB first; the event published
// afterwards is a best-effort signal feeding the sliding-window activity
// tracker that drives trending burst detection.
//
// # Flow
//
//	┌────────────┐   ┌────────────┐   ┌──────────────┐
//	│ HTTP API   │──▶│  Ranking   │──▶│   DuckDB     │  ← durable write
//	│ (POST      │   │  Engine    │   │ (engagements)│
//	│ engagement)│   └─────┬──────┘   └──────────────┘
//	└────────────┘         │ publish (best effort)
//	                       ▼
//	             ┌──────────────────┐
//	             │ Watermill bus    │  topic: engagement.recorded
//	             │ (gochannel)      │
//	             └────────┬─────────┘
//	                      ▼
//	             ┌──────────────────┐
//	             │ ActivityConsumer │  dedup (user, bill, type)
//	             │                  │  then record:
//	             │  platform key    │  ← burst detection input
//	             │  bill:<id> keys  │  ← per-bill heat
//	             └──────────────────┘
//
// The bus is gochannel, so the pipeline lives entirely inside one process.
// That keeps single-binary deployments broker-free; the database remains the
// source of truth, and a dropped event only delays burst detection until the
// next scheduled trending refresh.
//
// # Components
//
//   - events.go: EngagementRecorded schema, validation, JSON codec
//   - bus.go: gochannel pub/sub wrapper
//   - publisher.go: recommend.EventPublisher implementation
//   - consumer.go: activity tracking with dedup debouncing
//   - router.go: Watermill router with recovery and retry middleware
//   - logger.go: zerolog adapter for Watermill's logging interface
package events
