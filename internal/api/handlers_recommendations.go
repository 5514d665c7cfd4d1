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

	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/recommend"
)

// GetPersonalizedRecommendations handles personalized ranking requests.
//
// @Summary Get personalized recommendations
// @Description Returns bills ranked for one user by interest match, recency, popularity and peer engagement. Bills the user already engaged with are excluded. Unknown users receive cold-start rankings; storage failures degrade to an empty list rather than an error.
// @Tags Recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Maximum results (engine clamps to its configured max)" default(10)
// @Success 200 {object} models.APIResponse{data=RecommendationsResponse} "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Ranking failure"
// @Router /recommendations/{userId} [get]
func (h *Handler) GetPersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userId")
	limit := getIntParam(r, "limit", 0)

	req := RankingQueryRequest{UserID: userID, Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	results, err := h.engine.Personalized(r.Context(), userID, limit)
	if err != nil {
		h.respondRankingError(w, "personalized", start, err)
		return
	}

	metrics.RecordRecommendation("personalized", "success", time.Since(start), len(results))
	respondSuccess(w, http.StatusOK, &RecommendationsResponse{
		UserID:          userID,
		Recommendations: results,
		Count:           len(results),
	}, start)
}

// GetCollaborativeRecommendations handles peer-based ranking requests.
//
// @Summary Get collaborative recommendations
// @Description Returns bills engaged with by users whose declared interests overlap this user's, weighted by interest similarity and engagement strength. Users with no interests or no similar peers receive an empty list.
// @Tags Recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Maximum results (engine clamps to its configured max)" default(10)
// @Success 200 {object} models.APIResponse{data=CollaborativeResponse} "Peer-supported recommendations"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Ranking failure"
// @Router /recommendations/{userId}/collaborative [get]
func (h *Handler) GetCollaborativeRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userId")
	limit := getIntParam(r, "limit", 0)

	req := RankingQueryRequest{UserID: userID, Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	results, err := h.engine.Collaborative(r.Context(), userID, limit)
	if err != nil {
		h.respondRankingError(w, "collaborative", start, err)
		return
	}

	metrics.RecordRecommendation("collaborative", "success", time.Since(start), len(results))
	respondSuccess(w, http.StatusOK, &CollaborativeResponse{
		UserID:          userID,
		Recommendations: results,
		Count:           len(results),
	}, start)
}

// GetSimilarBills handles item-to-item similarity requests.
//
// @Summary Get similar bills
// @Description Returns bills similar to the given bill by tag overlap, category and sponsor. An unknown source bill yields an empty list, not a 404, so clients can render the section unconditionally.
// @Tags Recommendations
// @Produce json
// @Param id path int true "Source bill ID"
// @Param limit query int false "Maximum results (engine clamps to its configured max)" default(10)
// @Success 200 {object} models.APIResponse{data=SimilarBillsResponse} "Similar bills above the similarity threshold"
// @Failure 400 {object} models.APIResponse "Invalid bill ID"
// @Failure 500 {object} models.APIResponse "Ranking failure"
// @Router /bills/{id}/similar [get]
func (h *Handler) GetSimilarBills(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	billID, err := pathInt64(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, "Invalid bill ID", err)
		return
	}
	limit := getIntParam(r, "limit", 0)

	req := RankingQueryRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	results, err := h.engine.SimilarItems(r.Context(), billID, limit)
	if err != nil {
		h.respondRankingError(w, "similar_items", start, err)
		return
	}

	metrics.RecordRecommendation("similar_items", "success", time.Since(start), len(results))
	respondSuccess(w, http.StatusOK, &SimilarBillsResponse{
		BillID:  billID,
		Similar: results,
		Count:   len(results),
	}, start)
}

// GetTrendingBills handles trending requests.
//
// @Summary Get trending bills
// @Description Returns bills ranked by time-decayed engagement momentum over a trailing window. A background refresher keeps the default window warm, so most requests are served from cache.
// @Tags Recommendations
// @Produce json
// @Param days query int false "Trailing window in days (engine clamps to its configured max)" default(7)
// @Param limit query int false "Maximum results (engine clamps to its configured max)" default(10)
// @Success 200 {object} models.APIResponse{data=TrendingResponse} "Trending bills with positive trend scores"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Ranking failure"
// @Router /trending [get]
func (h *Handler) GetTrendingBills(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	days := getIntParam(r, "days", 0)
	limit := getIntParam(r, "limit", 0)

	req := RankingQueryRequest{Limit: limit, Days: days}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	results, err := h.engine.Trending(r.Context(), days, limit)
	if err != nil {
		h.respondRankingError(w, "trending", start, err)
		return
	}

	metrics.RecordRecommendation("trending", "success", time.Since(start), len(results))
	respondSuccess(w, http.StatusOK, &TrendingResponse{
		WindowDays: days,
		Trending:   results,
		Count:      len(results),
	}, start)
}

// respondRankingError maps engine errors onto API responses. Provider
// failures degrade inside the engine, so anything surfacing here is either
// rejected input or a genuine internal fault.
func (h *Handler) respondRankingError(w http.ResponseWriter, operation string, start time.Time, err error) {
	if errors.Is(err, recommend.ErrInvalidInput) {
		metrics.RecordRecommendation(operation, "invalid", time.Since(start), 0)
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error(), nil)
		return
	}

	metrics.RecordRecommendation(operation, "error", time.Since(start), 0)
	respondError(w, http.StatusInternalServerError, errCodeRecommend, "Failed to generate recommendations", err)
}

// RecommendationsResponse is the payload for personalized rankings.
type RecommendationsResponse struct {
	UserID          string                      `json:"userId"`
	Recommendations []recommend.ScoredCandidate `json:"recommendations"`
	Count           int                         `json:"count"`
}

// CollaborativeResponse is the payload for collaborative rankings.
type CollaborativeResponse struct {
	UserID          string                          `json:"userId"`
	Recommendations []recommend.CollaborativeResult `json:"recommendations"`
	Count           int                             `json:"count"`
}

// SimilarBillsResponse is the payload for similarity rankings.
type SimilarBillsResponse struct {
	BillID  int64                        `json:"billId"`
	Similar []recommend.SimilarityResult `json:"similar"`
	Count   int                          `json:"count"`
}

// TrendingResponse is the payload for trending rankings. WindowDays echoes
// the requested window before engine clamping, 0 meaning the default.
type TrendingResponse struct {
	WindowDays int                     `json:"windowDays"`
	Trending   []recommend.TrendResult `json:"trending"`
	Count      int                     `json:"count"`
}
