// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so our middleware package plugs into
// r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	handler       *Handler
	config        *config.Config
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router around the handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		config:        cfg,
		chiMiddleware: NewChiMiddlewareFromConfig(cfg),
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging()) // X-Request-ID header plus logging context
	if len(router.config.Security.TrustedProxies) > 0 {
		// Only honor X-Forwarded-For when the operator declares a proxy
		// in front, otherwise clients could spoof rate limit keys
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring tools can poll frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.handler.perfMon.Middleware)
		r.Use(chiMiddleware(middleware.Compression))

		// Bill catalog
		r.Get("/bills", router.handler.ListBills)
		r.Get("/bills/{id}", router.handler.GetBill)

		// Engagement writes get a tighter limit than reads
		r.With(router.chiMiddleware.RateLimitWrite()).
			Post("/bills/{id}/engagements", router.handler.RecordEngagement)

		// Ranking reads can be turned off wholesale via RECOMMEND_ENABLED
		if router.config.Recommend.Enabled {
			r.Get("/bills/{id}/similar", router.handler.GetSimilarBills)
			r.Get("/recommendations/{userId}", router.handler.GetPersonalizedRecommendations)
			r.Get("/recommendations/{userId}/collaborative", router.handler.GetCollaborativeRecommendations)
			r.Get("/trending", router.handler.GetTrendingBills)
		}

		// Operator stats
		r.Get("/stats", router.handler.GetServerStats)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
