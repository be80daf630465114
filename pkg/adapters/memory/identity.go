package memory

import (
	"context"
	"sync"

	"github.com/lingokit/onboard/pkg/ports"
)

// Identity implements ports.Identity in memory. It backs local demo runs
// and tests; error injection hooks simulate backend failures.
type Identity struct {
	mu   sync.RWMutex
	user *ports.UserIdentity
	meta map[string]string

	// Failure injection. When set, the corresponding call returns the error.
	CurrentUserErr error
	UpdateErr      error
	ReadErr        error

	// DropWrites silently discards UpdateMetadata payloads, simulating a
	// write that reports success but does not persist.
	DropWrites bool
}

// NewIdentity creates an identity provider with the given signed-in user.
// Pass nil for a signed-out provider.
func NewIdentity(user *ports.UserIdentity) *Identity {
	return &Identity{
		user: user,
		meta: make(map[string]string),
	}
}

// CurrentUser returns the signed-in user, or nil.
func (i *Identity) CurrentUser(ctx context.Context) (*ports.UserIdentity, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.CurrentUserErr != nil {
		return nil, i.CurrentUserErr
	}
	if i.user == nil {
		return nil, nil
	}
	u := *i.user
	return &u, nil
}

// UpdateMetadata merges the given pairs into the stored metadata.
func (i *Identity) UpdateMetadata(ctx context.Context, meta map[string]string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.UpdateErr != nil {
		return i.UpdateErr
	}
	if i.DropWrites {
		return nil
	}
	for k, v := range meta {
		i.meta[k] = v
	}
	return nil
}

// ReadMetadata returns a copy of the stored metadata.
func (i *Identity) ReadMetadata(ctx context.Context) (map[string]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.ReadErr != nil {
		return nil, i.ReadErr
	}
	out := make(map[string]string, len(i.meta))
	for k, v := range i.meta {
		out[k] = v
	}
	return out, nil
}

// SetUser replaces the signed-in user.
func (i *Identity) SetUser(user *ports.UserIdentity) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.user = user
}

// SetMetadata replaces a stored metadata value directly.
func (i *Identity) SetMetadata(key, value string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.meta[key] = value
}
