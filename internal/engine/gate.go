package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/lingokit/onboard/internal/logging"
	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

// MetaKeyCompleted is the metadata field marking a finished onboarding.
const MetaKeyCompleted = "onboarding_completed"

// Gate decides whether onboarding must run for a user. It is a read-through
// cache over the remote source of truth: a fresh cached flag short-circuits,
// anything else goes to the remote and refreshes the cache on the way back.
type Gate struct {
	store  ports.FlagStore
	remote ports.Remote
	logger *slog.Logger
	now    func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateLogger sets the logger used for cache warnings.
func WithGateLogger(l *slog.Logger) GateOption {
	return func(g *Gate) { g.logger = l }
}

// WithGateClock overrides the freshness clock.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// NewGate creates a completion gate over the given cache and remote.
func NewGate(store ports.FlagStore, remote ports.Remote, opts ...GateOption) *Gate {
	g := &Gate{
		store:  store,
		remote: remote,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ShouldRun reports whether the user still needs onboarding.
//
// A stale cached flag is a cache miss, never an authoritative "false".
// A remote failure is surfaced as an error: assuming either state would
// re-run onboarding for a completed user or skip it for an incomplete one.
// Cache reads and writes are best-effort; the remote stays authoritative.
func (g *Gate) ShouldRun(ctx context.Context, userID string) (bool, error) {
	flag, err := g.store.Get(ctx, userID)
	if err == nil && flag.Fresh(g.now()) {
		return !flag.Completed, nil
	}
	if err != nil && !errors.Is(err, domain.ErrFlagNotFound) {
		g.logger.Warn("completion flag read failed, falling through to remote",
			"user_id", userID,
			"err", err,
		)
	}

	completed, err := g.remote.Completed(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to determine onboarding status: %w", err)
	}

	if err := g.store.Put(ctx, userID, completed); err != nil {
		g.logger.Warn("completion flag refresh failed",
			"user_id", userID,
			"err", err,
		)
	}
	return !completed, nil
}

// metadataRemote reads the completion status from the identity provider's
// profile metadata. It is the default ports.Remote wiring.
type metadataRemote struct {
	identity ports.Identity
}

// NewMetadataRemote builds a Remote backed by user metadata.
func NewMetadataRemote(identity ports.Identity) ports.Remote {
	return &metadataRemote{identity: identity}
}

func (r *metadataRemote) Completed(ctx context.Context, userID string) (bool, error) {
	meta, err := r.identity.ReadMetadata(ctx)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return false, nil
	}

	var rec struct {
		Completed string `mapstructure:"onboarding_completed"`
	}
	if err := mapstructure.Decode(meta, &rec); err != nil {
		return false, fmt.Errorf("failed to decode profile metadata: %w", err)
	}
	return rec.Completed == "true", nil
}
