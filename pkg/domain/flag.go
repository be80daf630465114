package domain

import "time"

// FlagTTL is the freshness window for a cached completion flag. A flag
// whose age is at or beyond the window is treated as a cache miss, never
// as an authoritative "false".
const FlagTTL = 7 * 24 * time.Hour

// CompletionFlag is the cached "already onboarded" marker for one user.
type CompletionFlag struct {
	Completed bool      `json:"completed"`
	SyncedAt  time.Time `json:"synced_at"`
}

// Fresh reports whether the flag may be trusted at the given instant.
// Exactly FlagTTL old is stale.
func (f CompletionFlag) Fresh(now time.Time) bool {
	return now.Sub(f.SyncedAt) < FlagTTL
}
