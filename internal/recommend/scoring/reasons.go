// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

package scoring

import "fmt"

// Reason strings surface in API responses. They are stable copy: clients
// key UI treatments off them, so changing one is a breaking change.
const (
	ReasonInterestMatch = "Matches your interests"
	ReasonRecent        = "Recently introduced"
	ReasonPopular       = "Popular with other users"
	ReasonPeerActivity  = "People with similar interests engaged with this"
	ReasonSharedTags    = "Covers similar topics"
	ReasonSameCategory  = "Same policy area"
	ReasonSameSponsor   = "Same sponsor"
)

// PeerSupportReason phrases collaborative support for display.
func PeerSupportReason(count int) string {
	return fmt.Sprintf("Liked by %d similar user(s)", count)
}
