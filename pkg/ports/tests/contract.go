package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

// RunFlagStoreContract is a reusable test suite that verifies an adapter
// complies with ports.FlagStore semantics.
func RunFlagStoreContract(t *testing.T, store ports.FlagStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "nobody")
		if !errors.Is(err, domain.ErrFlagNotFound) {
			t.Fatalf("expected ErrFlagNotFound, got %v", err)
		}
	})

	t.Run("Put_Get_RoundTrip", func(t *testing.T) {
		before := time.Now()
		if err := store.Put(ctx, "user-a", true); err != nil {
			t.Fatalf("unexpected error on put: %v", err)
		}
		flag, err := store.Get(ctx, "user-a")
		if err != nil {
			t.Fatalf("unexpected error on get: %v", err)
		}
		if !flag.Completed {
			t.Error("expected completed=true")
		}
		if flag.SyncedAt.Before(before.Add(-time.Second)) {
			t.Errorf("expected a fresh SyncedAt, got %v", flag.SyncedAt)
		}
	})

	t.Run("Put_Overwrites", func(t *testing.T) {
		if err := store.Put(ctx, "user-b", true); err != nil {
			t.Fatalf("unexpected error on put: %v", err)
		}
		if err := store.Put(ctx, "user-b", false); err != nil {
			t.Fatalf("unexpected error on second put: %v", err)
		}
		flag, err := store.Get(ctx, "user-b")
		if err != nil {
			t.Fatalf("unexpected error on get: %v", err)
		}
		if flag.Completed {
			t.Error("expected second put to overwrite completed to false")
		}
	})

	t.Run("Clear_Removes", func(t *testing.T) {
		if err := store.Put(ctx, "user-c", true); err != nil {
			t.Fatalf("unexpected error on put: %v", err)
		}
		if err := store.Clear(ctx, "user-c"); err != nil {
			t.Fatalf("unexpected error on clear: %v", err)
		}
		_, err := store.Get(ctx, "user-c")
		if !errors.Is(err, domain.ErrFlagNotFound) {
			t.Fatalf("expected ErrFlagNotFound after clear, got %v", err)
		}
	})

	t.Run("Clear_Missing_IsNoop", func(t *testing.T) {
		if err := store.Clear(ctx, "never-existed"); err != nil {
			t.Fatalf("clear of missing entry should not error, got %v", err)
		}
	})

	t.Run("Users_Are_Isolated", func(t *testing.T) {
		if err := store.Put(ctx, "user-d", true); err != nil {
			t.Fatalf("unexpected error on put: %v", err)
		}
		_, err := store.Get(ctx, "user-e")
		if !errors.Is(err, domain.ErrFlagNotFound) {
			t.Fatalf("expected ErrFlagNotFound for other user, got %v", err)
		}
	})
}
