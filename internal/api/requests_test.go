// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package api

import (
	"strings"
	"testing"
)

func TestRankingQueryRequest_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     RankingQueryRequest
		wantErr bool
	}{
		{"valid with user", RankingQueryRequest{UserID: "resident-1", Limit: 10}, false},
		{"valid without user", RankingQueryRequest{Limit: 10, Days: 7}, false},
		{"zero limit means default", RankingQueryRequest{UserID: "resident-1"}, false},
		{"negative limit", RankingQueryRequest{UserID: "resident-1", Limit: -1}, true},
		{"limit too large", RankingQueryRequest{UserID: "resident-1", Limit: 1001}, true},
		{"negative days", RankingQueryRequest{Days: -1}, true},
		{"days too large", RankingQueryRequest{Days: 3651}, true},
		{"user id too long", RankingQueryRequest{UserID: strings.Repeat("a", 129)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestListBillsRequest_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     ListBillsRequest
		wantErr bool
	}{
		{"valid minimal", ListBillsRequest{Limit: 20}, false},
		{"valid full", ListBillsRequest{Status: "committee", Category: "environment", Limit: 50, Offset: 100}, false},
		{"all statuses accepted", ListBillsRequest{Status: "withdrawn", Limit: 20}, false},
		{"unknown status", ListBillsRequest{Status: "pending", Limit: 20}, true},
		{"zero limit", ListBillsRequest{Limit: 0}, true},
		{"limit too large", ListBillsRequest{Limit: 201}, true},
		{"negative offset", ListBillsRequest{Limit: 20, Offset: -1}, true},
		{"category too long", ListBillsRequest{Limit: 20, Category: strings.Repeat("x", 101)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngagementRequest_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     EngagementRequest
		wantErr bool
	}{
		{"view", EngagementRequest{UserID: "resident-1", Type: "view"}, false},
		{"comment", EngagementRequest{UserID: "resident-1", Type: "comment"}, false},
		{"share", EngagementRequest{UserID: "resident-1", Type: "share"}, false},
		{"missing user", EngagementRequest{Type: "view"}, true},
		{"missing type", EngagementRequest{UserID: "resident-1"}, true},
		{"unknown type", EngagementRequest{UserID: "resident-1", Type: "bookmark"}, true},
		{"user id too long", EngagementRequest{UserID: strings.Repeat("a", 129), Type: "view"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
