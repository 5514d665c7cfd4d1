// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package logging provides centralized zerolog-based structured logging for Agora.
//
// All packages log through a single configured zerolog instance, producing
// JSON output for production and human-readable console output for
// development.
//
// # Quick Start
//
//	import "github.com/agora-civic/agora/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("user", "alice").Msg("engagement recorded")
//	logging.Error().Err(err).Int("bill_id", 42).Msg("lookup failed")
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	engineLogger := logging.With().Str("component", "recommend").Logger()
//	engineLogger.Info().Msg("engine ready")
//
// # Context-Aware Logging
//
// HTTP middleware stores a request-scoped logger and request ID in the
// context; retrieve it with Ctx:
//
//	logging.Ctx(ctx).Info().Msg("processing request")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	logging.Info().Str("user", u).Int("count", n).Msg("ranked")  // Correct
//	logging.Info().Msgf("ranked %d items for %s", n, u)          // Avoid
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// All exported functions are safe for concurrent use; the global logger is
// protected by sync.RWMutex for configuration changes.
package logging
