// Package memory provides in-memory adapters: a completion-flag store and
// an identity provider. Both are safe for concurrent use and are the
// default wiring for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lingokit/onboard/pkg/domain"
)

// FlagStore implements ports.FlagStore in memory.
type FlagStore struct {
	mu   sync.RWMutex
	data map[string]domain.CompletionFlag
	now  func() time.Time
}

// FlagStoreOption configures a FlagStore.
type FlagStoreOption func(*FlagStore)

// WithClock overrides the timestamp source for Put.
func WithClock(now func() time.Time) FlagStoreOption {
	return func(s *FlagStore) { s.now = now }
}

// NewFlagStore creates an empty in-memory flag store.
func NewFlagStore(opts ...FlagStoreOption) *FlagStore {
	s := &FlagStore{
		data: make(map[string]domain.CompletionFlag),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the cached flag for a user.
func (s *FlagStore) Get(ctx context.Context, userID string) (*domain.CompletionFlag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flag, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrFlagNotFound
	}
	// Copy on read so the caller can't mutate store state.
	ret := flag
	return &ret, nil
}

// Put records the completion status with a fresh timestamp.
func (s *FlagStore) Put(ctx context.Context, userID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = domain.CompletionFlag{Completed: completed, SyncedAt: s.now()}
	return nil
}

// Clear removes the cached flag.
func (s *FlagStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// Seed places a flag with an explicit sync time. Test helper for freshness
// boundary cases.
func (s *FlagStore) Seed(userID string, completed bool, syncedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = domain.CompletionFlag{Completed: completed, SyncedAt: syncedAt}
}
