// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/recommend"
)

// RecordEngagement handles engagement submissions.
//
// The write path is durable-first: the engagement lands in the database and
// bumps the bill's counter before the activity event is published, so a lost
// event never loses an engagement. Repeat submissions of the same
// (user, bill, type) are idempotent and still return 201.
//
// @Summary Record an engagement
// @Description Records that a user viewed, commented on or shared a bill. Increments the bill's counter, refreshes the user's engagement history and invalidates their cached recommendations.
// @Tags Engagements
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param engagement body EngagementRequest true "Engagement to record"
// @Success 201 {object} models.APIResponse{data=EngagementResponse} "Engagement recorded"
// @Failure 400 {object} models.APIResponse "Invalid bill ID, JSON body or engagement type"
// @Failure 404 {object} models.APIResponse "Bill not found"
// @Failure 500 {object} models.APIResponse "Database failure"
// @Router /bills/{id}/engagements [post]
func (h *Handler) RecordEngagement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	billID, err := pathInt64(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, "Invalid bill ID", err)
		return
	}

	var req EngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidJSON, "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	err = h.engine.RecordEngagement(r.Context(), req.UserID, billID, recommend.EngagementType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, errCodeValidation, "Invalid engagement", err)
		case errors.Is(err, recommend.ErrItemNotFound):
			respondError(w, http.StatusNotFound, errCodeNotFound, "Bill not found", nil)
		default:
			respondError(w, http.StatusInternalServerError, errCodeDatabase, "Failed to record engagement", err)
		}
		return
	}

	metrics.RecordEngagement(req.Type)
	respondSuccess(w, http.StatusCreated, &EngagementResponse{
		BillID:     billID,
		UserID:     req.UserID,
		Type:       req.Type,
		RecordedAt: time.Now().UTC(),
	}, start)
}

// EngagementResponse confirms a recorded engagement.
type EngagementResponse struct {
	BillID     int64     `json:"billId"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	RecordedAt time.Time `json:"recordedAt"`
}
