// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package main is the entry point for the Agora server application.

Agora is a self-hosted legislative tracking platform for civic
organizations. Residents follow bills, record engagements (views,
comments, shares), and receive recommendations ranked by
interest match, recency, popularity, and the activity of users with
similar engagement histories.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("agora")
	├── EventsSupervisor ("events-layer")
	│   └── Event Router (engagement fan-out, dedup, activity tracking)
	├── RankingSupervisor ("ranking-layer")
	│   └── Trending Refresher (cache warming, burst detection)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API + Swagger)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB with the bills/users/engagements schema
 4. Event Pipeline: Watermill in-process pub/sub with dedup and activity tracking
 5. Ranking Engine: Scoring components, data provider, response cache, circuit breaker
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8080               # HTTP server port
	ENVIRONMENT=development      # development, staging, production
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Database
	DUCKDB_PATH=/data/agora.duckdb
	SEED_DEMO_DATA=false         # Seed demo bills/users for local development

	# Event pipeline
	EVENTS_ENABLED=true
	EVENTS_ACTIVITY_WINDOW=15m   # Sliding window for burst detection

	# Ranking
	RECOMMEND_ENABLED=true
	RECOMMEND_INTEREST_WEIGHT=0.4
	RECOMMEND_CACHE_ENABLED=true

	# Trending refresher
	TRENDING_ENABLED=true
	TRENDING_REFRESH_INTERVAL=10m
	TRENDING_BURST_THRESHOLD=500

See .env.example for the complete configuration reference.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Stops the trending refresher and event router
 4. Closes the event bus, then the database
 5. Reports any services that failed to stop

# Usage Examples

Local development with demo data:

	export SEED_DEMO_DATA=true
	export LOG_FORMAT=console
	export DISABLE_RATE_LIMIT=true
	go run ./cmd/server

Production:

	export DUCKDB_PATH=/data/agora.duckdb
	export ENVIRONMENT=production
	export CORS_ORIGINS=https://agora.example.org
	./agora

Docker:

	docker run -d \
	  -e DUCKDB_PATH=/data/agora.duckdb \
	  -e CORS_ORIGINS=https://agora.example.org \
	  -v agora-data:/data \
	  -p 8080:8080 \
	  ghcr.io/agora-civic/agora

# API Documentation

Swagger documentation is available at /swagger/index.html when the
server is running. The API is organized into categories:

  - Bills: Catalog listing, detail, similar-bill lookup
  - Recommendations: Personalized, collaborative, trending rankings
  - Engagements: Recording user interactions with bills
  - Operations: Health checks, statistics, Prometheus metrics

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/recommend: Ranking engine and scoring
  - internal/events: Engagement event pipeline
*/
package main
