package ports

import (
	"context"

	"github.com/lingokit/onboard/pkg/domain"
)

// FlagStore defines the interface for the completion-flag cache, keyed by
// user ID. Freshness (the 7-day window) is enforced by the caller, not the
// store: a store returns whatever it holds, stale or not.
type FlagStore interface {
	// Get retrieves the cached flag for a user.
	// Returns domain.ErrFlagNotFound when no entry exists.
	Get(ctx context.Context, userID string) (*domain.CompletionFlag, error)

	// Put records the completion status for a user with a fresh timestamp.
	Put(ctx context.Context, userID string, completed bool) error

	// Clear removes the cached flag for a user.
	Clear(ctx context.Context, userID string) error
}

// Remote is the source of truth for onboarding completion, consulted when
// the cache misses or is stale.
type Remote interface {
	// Completed reports whether the user has finished onboarding.
	Completed(ctx context.Context, userID string) (bool, error)
}
