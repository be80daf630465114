package ports

import "context"

// UserIdentity is the authenticated principal exposed by the auth provider.
type UserIdentity struct {
	ID            string
	Email         string
	EmailVerified bool
}

// Identity defines the interface to the external auth/profile provider.
// Metadata values are stored as strings; list-valued fields are encoded as
// comma-joined strings (see domain.JoinList / domain.SplitList).
type Identity interface {
	// CurrentUser returns the authenticated user, or nil when signed out.
	CurrentUser(ctx context.Context) (*UserIdentity, error)

	// UpdateMetadata merges the given key/value pairs into the user's
	// profile metadata on the remote store.
	UpdateMetadata(ctx context.Context, meta map[string]string) error

	// ReadMetadata fetches the user's current profile metadata.
	// Used for the post-write verification read.
	ReadMetadata(ctx context.Context) (map[string]string, error)
}
