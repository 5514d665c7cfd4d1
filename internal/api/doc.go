// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package api provides the HTTP REST API layer for Agora.

This package exposes the bill catalog, engagement recording and the ranking
engine over JSON endpoints. It is the interface between civic frontends and
the recommendation core.

Key Components:

  - Router: Chi route table and middleware stack
  - Handler: request handlers for all endpoints
  - Response formatting: standardized JSON envelope with timing metadata
  - Error handling: consistent error codes with appropriate HTTP statuses
  - Rate limiting: go-chi/httprate with per-group profiles
  - CORS: go-chi/cors, origins from configuration

API Categories:

1. Bill Catalog (/api/v1/bills):
  - Paginated listing with status and category filters
  - Single bill lookup
  - Similar bills by tag, category and sponsor overlap
  - Engagement recording (view, comment, share)

2. Ranking (/api/v1/recommendations, /api/v1/trending):
  - Personalized rankings per user
  - Collaborative rankings from interest-similar peers
  - Trending bills over a trailing window

3. Operations:
  - Health endpoints (/api/v1/health, /live, /ready)
  - Server stats (/api/v1/stats)
  - Prometheus metrics (/metrics)
  - Swagger UI (/swagger/)

Response Envelope:

Every JSON endpoint wraps its payload in models.APIResponse:

	{
	  "status": "success",
	  "data": { ... },
	  "metadata": {"timestamp": "...", "query_time_ms": 4}
	}

Errors carry a machine-readable code:

	{
	  "status": "error",
	  "error": {"code": "NOT_FOUND", "message": "Bill not found"}
	}

Usage Example:

	import (
	    "github.com/agora-civic/agora/internal/api"
	    "github.com/agora-civic/agora/internal/database"
	)

	db, _ := database.New(&cfg.Database)
	handler := api.NewHandler(db, engine, cfg, version)
	router := api.NewRouter(handler, cfg)

	http.ListenAndServe(":8080", router.Setup())

Degradation Behavior:

Ranking endpoints never fail because of storage trouble: the engine
degrades to empty result lists and the handlers return them with a 200.
Only invalid input (400) and engagement writes against missing bills (404)
produce error statuses on the ranking surface.
*/
package api
