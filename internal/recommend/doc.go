// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package recommend ranks legislative bills for civic engagement: which
// bills a user should see next, which bills resemble one they are reading,
// which bills are gaining momentum, and which bills users with similar
// interests care about.
//
// The package splits into an orchestrating Engine and pure ranking
// components behind small interfaces (ItemScorer, SimilarityRanker,
// TrendRanker, CollaborativeRanker, Reranker). The components live in the
// scoring subpackage and hold no state beyond their configuration; all
// storage and caching flows through the DataProvider and ResponseCache
// collaborators attached to the Engine.
//
// Usage:
//
//	engine, err := recommend.NewEngine(cfg, components, logger)
//	if err != nil {
//		return err
//	}
//	engine.SetDataProvider(store)
//	engine.SetCache(responseCache)
//
//	ranked, err := engine.Personalized(ctx, "user-42", 10)
//
// Read operations degrade: if storage fails they log, count the failure
// and return an empty list so the product surface stays up. Writes via
// RecordEngagement return their errors.
//
// This package deliberately imports nothing from other internal packages.
// Integration happens through the interfaces declared here, which the
// database, cache and events packages satisfy from the outside.
package recommend
