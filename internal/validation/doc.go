// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package validation guards the API boundary of the recommendation
// service. It has two halves: struct validation built on
// go-playground/validator v10, and plain sanitizers for the raw path and
// query parameters the endpoints accept.
//
// # Struct validation
//
// The validator is a thread-safe singleton; struct metadata is parsed
// once and cached. Failures translate into the API's VALIDATION_ERROR
// shape with per-field details.
//
//	type EngagementRequest struct {
//	    UserID string `json:"userId" validate:"required,max=100"`
//	    Type   string `json:"type" validate:"required,oneof=view comment share"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Parameter sanitizers
//
// Path and query parameters arrive as strings and carry strict bounds:
//
//	userID, err := validation.SanitizeUserID(chi.URLParam(r, "userId"))
//	itemID, err := validation.SanitizeItemID(chi.URLParam(r, "id"))
//	limit, err := validation.SanitizeLimit(r.URL.Query().Get("limit"))
//	days, err := validation.SanitizeWindowDays(r.URL.Query().Get("days"))
//	typ, err := validation.SanitizeEngagementType(req.Type)
//
// Sanitizers fail closed: anything outside the documented character sets
// and ranges is rejected before it reaches the engine or a SQL query.
// User identifiers allow letters, digits, '-' and '_' up to 100
// characters; bill identifiers are positive integers up to 999,999,999;
// limits span 1-50 (default 10); trending windows span 1-365 days
// (default 7).
package validation
