// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	if id1 == "" {
		t.Fatal("expected non-empty request ID")
	}
	if id1 == id2 {
		t.Error("expected unique request IDs")
	}
	if len(id1) != 36 {
		t.Errorf("expected UUID length 36, got %d", len(id1))
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("expected empty request ID from bare context, got %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("expected 'req-123', got %q", got)
	}
}

func TestCtxEnrichesWithRequestID(t *testing.T) {
	var buf bytes.Buffer

	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-456")

	logger := Ctx(ctx)
	logger.Info().Msg("handled")

	output := buf.String()
	if !strings.Contains(output, "req-456") {
		t.Errorf("expected request ID in output: %s", output)
	}
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(NewTestLogger(&buf))

	logger := Ctx(context.Background())
	logger.Info().Msg("fallback")

	if !strings.Contains(buf.String(), "fallback") {
		t.Errorf("expected global logger output, got: %s", buf.String())
	}
}
