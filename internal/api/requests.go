// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package api request structs carry go-playground/validator tags and are
// checked with validateRequest before any handler touches the store or the
// ranking engine.
//
// Example:
//
//	req := ListBillsRequest{
//	    Status: r.URL.Query().Get("status"),
//	    Limit:  getIntParam(r, "limit", defaultPageSize),
//	}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package api

// RankingQueryRequest validates the query parameters shared by the four
// ranking endpoints. Limit 0 means "use the engine default"; the engine
// clamps values above its configured maximum, so the API bound only guards
// against absurd input.
type RankingQueryRequest struct {
	UserID string `validate:"omitempty,min=1,max=128"`
	Limit  int    `validate:"min=0,max=1000"`
	Days   int    `validate:"min=0,max=3650"`
}

// ListBillsRequest validates query parameters for the bill listing endpoint.
type ListBillsRequest struct {
	Status   string `validate:"omitempty,oneof=introduced committee floor_vote passed rejected withdrawn"`
	Category string `validate:"omitempty,max=100"`
	Limit    int    `validate:"min=1,max=200"`
	Offset   int    `validate:"min=0,max=1000000"`
}

// EngagementRequest is the request body for recording an engagement.
// Field names are camelCase on the wire to match the public API contract.
type EngagementRequest struct {
	UserID string `json:"userId" validate:"required,min=1,max=128"`
	Type   string `json:"type" validate:"required,oneof=view comment share"`
}
