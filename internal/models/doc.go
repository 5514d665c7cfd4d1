// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

/*
Package models defines data structures for the Agora application.

This package contains the persistence and API models shared across the
application: bills and their lifecycle, user accounts with interest
profiles, engagement records, and the standardized API response
envelope. It is the single source of truth for these definitions; the
ranking core deliberately keeps its own snapshot types and converts at
the database adapter instead of importing this package.

Key Components:

  - Bill: Tracked legislation with denormalized engagement counters
  - BillStatus: Lifecycle states; IsActive gates recommendation pools
  - User: Platform account with lowercased interest terms
  - Engagement / EngagementEvent: Aggregated state and the append-only log
  - APIResponse: Standardized API response wrapper

Model Categories:

1. Domain Models:
  - Bill: Title, description, category, tags, sponsor, lifecycle status
  - User: Account identity plus declared interests
  - Engagement: One row per (user, bill, type) with count and recency
  - EngagementEvent: One row per individual engagement for windowed queries

2. API Request/Response Models:
  - APIResponse: Standard response wrapper
  - APIError: Error code, message and field details
  - Metadata: Response metadata (timestamp, query time, cache flag)
  - PaginationInfo: Listing page bounds and totals
  - HealthStatus: Health endpoint payload

3. Filter Models:
  - BillFilter: Status and category selection with limit/offset paging

Usage Example - Domain Models:

	import "github.com/agora-civic/agora/internal/models"

	bill := &models.Bill{
	    ID:        42,
	    Title:     "Clean Rivers Restoration Act",
	    Category:  "environment",
	    Tags:      []string{"water", "conservation"},
	    SponsorID: 101,
	    Status:    models.StatusIntroduced,
	}

	db.CreateBill(ctx, bill)

Usage Example - API Response:

	import "github.com/agora-civic/agora/internal/models"

	// Success response
	response := models.APIResponse{
	    Status: "success",
	    Data:   bills,
	    Metadata: models.Metadata{
	        Timestamp:   time.Now().UTC(),
	        QueryTimeMS: 45,
	    },
	}

	json.NewEncoder(w).Encode(response)

	// Error response
	errorResponse := models.APIResponse{
	    Status: "error",
	    Error: &models.APIError{
	        Code:    "VALIDATION_ERROR",
	        Message: "Invalid status filter",
	        Details: map[string]interface{}{
	            "field": "status",
	        },
	    },
	}

Bill Lifecycle:

Bills move through six states:

	introduced -> committee -> floor_vote -> passed
	                                      -> rejected
	any active state -> withdrawn

The first three are "active": only active bills enter recommendation
candidate pools. Terminal bills stay readable through the catalog
endpoints and keep contributing to trending while their engagement
events remain inside the window.

Thread Safety:

All models are:
  - Immutable after creation (pass-by-value or pointers)
  - Safe for concurrent read access
  - No internal mutexes needed (data structures only)

JSON Marshaling:

All models support JSON serialization:
  - Struct tags for field naming (camelCase for API payloads)
  - Omitempty tags for optional fields
  - Time.Time uses RFC3339 format

See Also:

  - internal/database: Database operations using these models
  - internal/api: API handlers returning these models
  - internal/recommend: Ranking snapshot types converted from these models
*/
package models
