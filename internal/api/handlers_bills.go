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

	"github.com/agora-civic/agora/internal/cache"
	"github.com/agora-civic/agora/internal/database"
	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/models"
)

// ListBills handles bill catalog listing with filtering and pagination.
//
// @Summary List bills
// @Description Returns bills ordered newest first, optionally filtered by status and category. Responses are cached briefly; the Cached metadata flag reports when a cached page was served.
// @Tags Bills
// @Produce json
// @Param status query string false "Filter by status" Enums(introduced, committee, floor_vote, passed, rejected, withdrawn)
// @Param category query string false "Filter by category"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} models.APIResponse{data=BillListResponse} "Bill page with pagination info"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Database failure"
// @Router /bills [get]
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ListBillsRequest{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Limit:    getIntParam(r, "limit", h.config.API.DefaultPageSize),
		Offset:   getIntParam(r, "offset", 0),
	}
	if req.Limit > h.config.API.MaxPageSize {
		req.Limit = h.config.API.MaxPageSize
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	cacheKey := cache.GenerateKey("bill_list", req)
	if entry, found := h.listCache.Get(cacheKey); found {
		if payload, ok := entry.(*BillListResponse); ok {
			metrics.RecordCacheHit("bill_list")
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   payload,
				Metadata: models.Metadata{
					Timestamp:   time.Now().UTC(),
					QueryTimeMS: time.Since(start).Milliseconds(),
					Cached:      true,
				},
			})
			return
		}
	}
	metrics.RecordCacheMiss("bill_list")

	filter := models.BillFilter{
		Status:   models.BillStatus(req.Status),
		Category: req.Category,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}

	bills, err := h.db.ListBills(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeDatabase, "Failed to list bills", err)
		return
	}
	total, err := h.db.CountBills(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeDatabase, "Failed to count bills", err)
		return
	}

	payload := &BillListResponse{
		Bills: bills,
		Pagination: models.PaginationInfo{
			Limit:      req.Limit,
			Offset:     req.Offset,
			HasMore:    req.Offset+len(bills) < total,
			TotalCount: total,
		},
	}
	h.listCache.Set(cacheKey, payload)

	respondSuccess(w, http.StatusOK, payload, start)
}

// GetBill handles single bill lookups.
//
// @Summary Get a bill
// @Description Returns one bill by ID including its engagement counters.
// @Tags Bills
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} models.APIResponse{data=models.Bill} "The bill"
// @Failure 400 {object} models.APIResponse "Invalid bill ID"
// @Failure 404 {object} models.APIResponse "Bill not found"
// @Failure 500 {object} models.APIResponse "Database failure"
// @Router /bills/{id} [get]
func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	billID, err := pathInt64(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, "Invalid bill ID", err)
		return
	}

	bill, err := h.db.GetBill(r.Context(), billID)
	if err != nil {
		if errors.Is(err, database.ErrBillNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "Bill not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, errCodeDatabase, "Failed to load bill", err)
		return
	}

	respondSuccess(w, http.StatusOK, bill, start)
}

// BillListResponse is the payload for bill catalog pages.
type BillListResponse struct {
	Bills      []models.Bill         `json:"bills"`
	Pagination models.PaginationInfo `json:"pagination"`
}
