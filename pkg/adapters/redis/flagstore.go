// Package redis provides a Redis-backed completion-flag cache, for
// deployments where the flag is shared across devices.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/lingokit/onboard/pkg/domain"
)

// FlagStore implements ports.FlagStore using Redis.
type FlagStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*FlagStore)

// WithTTL sets a Redis-side expiration for flags. Distinct from the
// caller-enforced 7-day freshness window; 0 means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *FlagStore) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for flags.
func WithPrefix(prefix string) Option {
	return func(s *FlagStore) { s.prefix = prefix }
}

// WithClock overrides the timestamp source for Put.
func WithClock(now func() time.Time) Option {
	return func(s *FlagStore) { s.now = now }
}

// New creates a Redis flag store with options.
func New(address, password string, db int, opts ...Option) *FlagStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis flag store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *FlagStore {
	store := &FlagStore{
		client: client,
		prefix: "onboard:flag:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *FlagStore) key(userID string) string {
	return s.prefix + userID
}

// Get retrieves the cached flag.
func (s *FlagStore) Get(ctx context.Context, userID string) (*domain.CompletionFlag, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == backend.Nil {
		return nil, domain.ErrFlagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error reading flag: %w", err)
	}

	var flag domain.CompletionFlag
	if err := json.Unmarshal(data, &flag); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flag: %w", err)
	}
	return &flag, nil
}

// Put records the completion status with a fresh timestamp.
func (s *FlagStore) Put(ctx context.Context, userID string, completed bool) error {
	flag := domain.CompletionFlag{Completed: completed, SyncedAt: s.now()}
	data, err := json.Marshal(flag)
	if err != nil {
		return fmt.Errorf("failed to marshal flag: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error writing flag: %w", err)
	}
	return nil
}

// Clear removes the cached flag.
func (s *FlagStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis error deleting flag: %w", err)
	}
	return nil
}
