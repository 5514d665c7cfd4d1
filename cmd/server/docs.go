// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package main provides the Agora HTTP server
//
// Agora API provides legislative tracking and personalized bill
// recommendations for civic engagement platforms.
//
// @title Agora API
// @version 1.0
// @description Legislative tracking and recommendation platform for civic engagement
// @description
// @description ## Features
// @description
// @description - **Bill Catalog**: Browse and filter legislative bills by status and category
// @description - **Personalized Recommendations**: Rankings weighted by interest match, recency, popularity, and peer activity
// @description - **Collaborative Filtering**: Suggestions from users with similar engagement histories
// @description - **Trending Bills**: Time-decayed engagement velocity over a configurable window
// @description - **Similar Bills**: Item-to-item similarity by tag overlap, category, and sponsor
// @description - **Engagement Tracking**: Views, comments, and shares with dedup
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Engagement writes use a tighter limit. Rate limit headers are included
// @description in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-25T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/agora-civic/agora/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Bills
// @tag.description Bill catalog endpoints for listing and inspecting legislative bills
//
// @tag.name Recommendations
// @tag.description Ranking endpoints for personalized, collaborative, trending, and similar-bill results
//
// @tag.name Engagements
// @tag.description Engagement recording endpoints for user interactions with bills
//
// @tag.name Core
// @tag.description Health checks, readiness probes, and server statistics
package main
