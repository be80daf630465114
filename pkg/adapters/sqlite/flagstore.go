// Package sqlite provides an on-disk completion-flag cache for the desktop
// client, so the "already onboarded" check survives restarts without a
// network round trip.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lingokit/onboard/pkg/domain"
)

// FlagStore implements ports.FlagStore on a local SQLite database.
type FlagStore struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*FlagStore)

// WithClock overrides the timestamp source for Put.
func WithClock(now func() time.Time) Option {
	return func(s *FlagStore) { s.now = now }
}

// New opens (or creates) the flag database at the given path.
func New(dbPath string, opts ...Option) (*FlagStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &FlagStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *FlagStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS completion_flags (
		user_id   TEXT PRIMARY KEY,
		completed INTEGER NOT NULL,
		synced_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get retrieves the cached flag for a user.
func (s *FlagStore) Get(ctx context.Context, userID string) (*domain.CompletionFlag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT completed, synced_at FROM completion_flags WHERE user_id = ?`, userID)

	var completed int
	var syncedAt int64
	err := row.Scan(&completed, &syncedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrFlagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan flag row: %w", err)
	}
	return &domain.CompletionFlag{
		Completed: completed != 0,
		SyncedAt:  time.UnixMilli(syncedAt),
	}, nil
}

// Put records the completion status with a fresh timestamp.
func (s *FlagStore) Put(ctx context.Context, userID string, completed bool) error {
	c := 0
	if completed {
		c = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completion_flags (user_id, completed, synced_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			completed = excluded.completed,
			synced_at = excluded.synced_at`,
		userID, c, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert flag: %w", err)
	}
	return nil
}

// Clear removes the cached flag for a user.
func (s *FlagStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM completion_flags WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete flag: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *FlagStore) Close() error {
	return s.db.Close()
}
