package onboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/lingokit/onboard/internal/engine"
	"github.com/lingokit/onboard/internal/logging"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

// Version is the current release of the onboard library.
const Version = "0.4.0"

// Engine is the high-level entry point for the onboard library. It wraps
// the internal session engine and provides a simplified API for consumers.
type Engine struct {
	inner *engine.Engine
}

// Option defines a functional option for configuring the Engine.
type Option func(*config)

type config struct {
	logger *slog.Logger
	sched  ports.Scheduler
	remote ports.Remote
	hooks  domain.Hooks
	clock  func() time.Time
}

// WithLogger sets the structured logger used by the engine and gate.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithScheduler overrides the typing-delay scheduler.
func WithScheduler(s ports.Scheduler) Option {
	return func(c *config) { c.sched = s }
}

// WithRemote overrides the completion-status source of truth.
func WithRemote(r ports.Remote) Option {
	return func(c *config) { c.remote = r }
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(c *config) { c.hooks = h }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.clock = now }
}

// New creates an engine for one onboarding session over the given question
// bank, identity provider and completion-flag cache.
func New(b *bank.Bank, identity ports.Identity, flags ports.FlagStore, opts ...Option) *Engine {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	engineOpts := []engine.Option{
		engine.WithLogger(cfg.logger),
		engine.WithHooks(cfg.hooks),
	}
	if cfg.sched != nil {
		engineOpts = append(engineOpts, engine.WithScheduler(cfg.sched))
	}
	if cfg.remote != nil {
		engineOpts = append(engineOpts, engine.WithRemote(cfg.remote))
	}
	if cfg.clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(cfg.clock))
	}

	return &Engine{inner: engine.New(b, identity, flags, engineOpts...)}
}

// Start consults the completion gate and begins the question flow when
// onboarding is needed.
func (e *Engine) Start(ctx context.Context) error { return e.inner.Start(ctx) }

// Submit records the user's response to the current question.
func (e *Engine) Submit(ctx context.Context, questionID string, resp domain.Response) error {
	return e.inner.Submit(ctx, questionID, resp)
}

// Retry re-attempts the failed step after a gate or save failure.
func (e *Engine) Retry(ctx context.Context) error { return e.inner.Retry(ctx) }

// Complete re-runs the completion protocol with the recorded answers.
func (e *Engine) Complete(ctx context.Context) error { return e.inner.Complete(ctx) }

// Reset discards the session and returns to the initializing phase.
func (e *Engine) Reset(ctx context.Context) error { return e.inner.Reset(ctx) }

// Snapshot returns the observable session state.
func (e *Engine) Snapshot() domain.Snapshot { return e.inner.Snapshot() }

// Answers returns a copy of the recorded answers.
func (e *Engine) Answers() *domain.Answers { return e.inner.Answers() }

// Subscribe registers a snapshot callback, fired after every state change.
func (e *Engine) Subscribe(fn func(domain.Snapshot)) (cancel func()) {
	return e.inner.Subscribe(fn)
}
