// Package engine implements the onboarding conversational flow engine:
// the question-sequencing state machine, the chat timeline with simulated
// typing latency, the completion gate, and the all-or-nothing persistence
// protocol that closes a session.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lingokit/onboard/internal/classify"
	"github.com/lingokit/onboard/internal/logging"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

// TypingDelay is the fixed pause before an assistant message replaces its
// typing placeholder. UX pacing, not configurable.
const TypingDelay = 900 * time.Millisecond

// SuccessMessage is shown when the completion protocol finishes.
const SuccessMessage = "All set! Your learning profile has been saved."

// Engine drives one onboarding session: it owns the step pointer, the
// answer record and the message timeline, and runs the completion protocol.
// One instance per active onboarding attempt; all operations are serialized
// per session.
type Engine struct {
	bank     *bank.Bank
	gate     *Gate
	identity ports.Identity
	flags    ports.FlagStore
	sched    ports.Scheduler
	logger   *slog.Logger
	hooks    domain.Hooks
	now      func() time.Time
	remote   ports.Remote

	mu           sync.Mutex
	phase        domain.Phase
	step         int
	answers      *domain.Answers
	timeline     []domain.Message
	failure      *domain.Failure
	success      string
	loading      bool
	saving       bool
	typing       bool
	gen          int // bumped on reset; invalidates in-flight timers and calls
	cancelTyping func()
	userID       string

	subMu  sync.Mutex
	subs   map[int]func(domain.Snapshot)
	nextID int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithScheduler overrides the typing-delay scheduler.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRemote overrides the completion-status source of truth. Defaults to
// reading the identity provider's metadata.
func WithRemote(r ports.Remote) Option {
	return func(e *Engine) { e.remote = r }
}

// New creates an engine for one onboarding session.
func New(b *bank.Bank, identity ports.Identity, flags ports.FlagStore, opts ...Option) *Engine {
	e := &Engine{
		bank:     b,
		identity: identity,
		flags:    flags,
		sched:    ports.SystemScheduler{},
		logger:   logging.NewNop(),
		now:      time.Now,
		phase:    domain.PhaseInitializing,
		answers:  domain.NewAnswers(),
		subs:     make(map[int]func(domain.Snapshot)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.remote == nil {
		e.remote = NewMetadataRemote(identity)
	}
	e.gate = NewGate(flags, e.remote, WithGateLogger(e.logger), WithGateClock(e.now))
	return e
}

// Start runs the completion gate and, when onboarding is needed, enters the
// first question. Valid only in the initializing phase.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return domain.ErrEngineBusy
	}
	if e.phase != domain.PhaseInitializing {
		e.mu.Unlock()
		return domain.ErrEngineBusy
	}
	e.loading = true
	gen := e.gen
	e.mu.Unlock()
	e.publish()

	userID, failure := e.resolveUser(ctx)
	var run bool
	if failure == nil {
		var err error
		run, err = e.gate.ShouldRun(ctx, userID)
		if err != nil {
			failure = classify.Failure(domain.StageGate, err.Error())
		}
	}

	e.mu.Lock()
	if e.gen != gen {
		// Session was reset while the gate was in flight.
		e.mu.Unlock()
		return nil
	}
	e.loading = false
	e.userID = userID

	switch {
	case failure != nil:
		e.phase = domain.PhaseFailed
		e.failure = failure
	case !run, e.bank.Len() == 0:
		e.phase = domain.PhaseSkipped
	default:
		e.phase = domain.PhaseAwaiting
		e.step = 0
		e.enterStepLocked(0)
		if e.hooks.OnSessionStart != nil {
			defer e.hooks.OnSessionStart()
		}
	}
	e.mu.Unlock()
	e.publish()
	return nil
}

// resolveUser fetches the authenticated user for the session.
func (e *Engine) resolveUser(ctx context.Context) (string, *domain.Failure) {
	user, err := e.identity.CurrentUser(ctx)
	if err != nil {
		return "", classify.Failure(domain.StageGate, err.Error())
	}
	if user == nil {
		return "", classify.Failure(domain.StageGate, domain.ErrNotAuthenticated.Error())
	}
	return user.ID, nil
}

// enterStepLocked emits the typing placeholder for a step and schedules the
// real assistant message. Requires e.mu.
func (e *Engine) enterStepLocked(step int) {
	q, ok := e.bank.At(step)
	if !ok {
		return
	}
	e.appendTyping()
	gen := e.gen
	e.cancelTyping = e.sched.AfterFunc(TypingDelay, func() {
		e.mu.Lock()
		if e.gen != gen || !e.typing {
			e.mu.Unlock()
			return
		}
		e.resolveTyping(q.Prompt)
		e.cancelTyping = nil
		e.mu.Unlock()
		e.publish()
	})
}

// Submit records the user's response to the current question and advances
// the session. Submissions for stale steps are silently ignored; a repeat
// submission for the current step overwrites the answer without producing
// a second user message.
func (e *Engine) Submit(ctx context.Context, questionID string, resp domain.Response) error {
	e.mu.Lock()
	if e.loading || e.saving {
		e.mu.Unlock()
		return domain.ErrEngineBusy
	}
	if e.phase != domain.PhaseAwaiting {
		e.mu.Unlock()
		return domain.ErrNotAwaiting
	}
	current, ok := e.bank.At(e.step)
	if !ok || current.ID != questionID {
		// Stale or duplicate step: already answered, nothing to do.
		e.logger.Debug("ignoring stale submission",
			"question_id", questionID,
			"step", e.step,
		)
		e.mu.Unlock()
		return nil
	}
	if e.typing {
		// The current question's message is still pending; no timeline
		// mutation may interleave with the typing pause.
		e.mu.Unlock()
		return domain.ErrEngineBusy
	}

	e.answers.Set(current.ID, resp)
	e.appendUser(resp.Summary())
	e.failure = nil
	if e.hooks.OnAnswer != nil {
		defer e.hooks.OnAnswer(current.ID)
	}

	next := e.nextUnansweredLocked()
	if next < 0 {
		e.phase = domain.PhaseSaving
		e.saving = true
		gen := e.gen
		e.mu.Unlock()
		e.publish()
		e.runCompletion(ctx, gen)
		return nil
	}

	e.step = next
	e.enterStepLocked(next)
	e.mu.Unlock()
	e.publish()
	return nil
}

// nextUnansweredLocked returns the first question index without a recorded
// answer, or -1 when the script is fully answered. Requires e.mu.
func (e *Engine) nextUnansweredLocked() int {
	for i := 0; i < e.bank.Len(); i++ {
		q, _ := e.bank.At(i)
		if !e.answers.Has(q.ID) {
			return i
		}
	}
	return -1
}

// Complete re-runs the completion protocol. Exposed for explicit retry
// after a save failure; answers are preserved so questions are not re-asked.
func (e *Engine) Complete(ctx context.Context) error {
	e.mu.Lock()
	if e.loading || e.saving {
		e.mu.Unlock()
		return domain.ErrEngineBusy
	}
	if e.phase == domain.PhaseComplete || e.phase == domain.PhaseSkipped {
		e.mu.Unlock()
		return nil
	}
	e.phase = domain.PhaseSaving
	e.saving = true
	e.failure = nil
	gen := e.gen
	e.mu.Unlock()
	e.publish()
	e.runCompletion(ctx, gen)
	return nil
}

// Retry re-attempts only the failed step: the gate check after a gate
// failure, the completion protocol after a save failure.
func (e *Engine) Retry(ctx context.Context) error {
	e.mu.Lock()
	if e.phase != domain.PhaseFailed || e.failure == nil {
		e.mu.Unlock()
		return nil
	}
	stage := e.failure.Stage
	if stage == domain.StageGate {
		e.phase = domain.PhaseInitializing
		e.failure = nil
		e.mu.Unlock()
		e.publish()
		return e.Start(ctx)
	}
	e.mu.Unlock()
	return e.Complete(ctx)
}

// Reset discards the session: answers, timeline and transient flags are
// cleared, pending typing timers are invalidated, and the engine returns
// to the initializing phase. This is the only path that drops answers.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	e.gen++
	if e.cancelTyping != nil {
		e.cancelTyping()
		e.cancelTyping = nil
	}
	e.dropTyping()
	e.answers.Reset()
	e.timeline = nil
	e.failure = nil
	e.success = ""
	e.phase = domain.PhaseInitializing
	e.step = 0
	e.loading = false
	e.saving = false
	e.mu.Unlock()
	e.publish()
	return nil
}

// Snapshot returns the observable session state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Phase:          e.phase,
		Step:           e.step,
		Loading:        e.loading,
		Saving:         e.saving,
		Complete:       e.phase == domain.PhaseComplete || e.phase == domain.PhaseSkipped,
		Messages:       e.messagesCopy(),
		SuccessMessage: e.success,
	}
	if e.failure != nil {
		f := *e.failure
		snap.Err = &f
	}
	if e.phase == domain.PhaseAwaiting {
		if q, ok := e.bank.At(e.step); ok {
			snap.CurrentQuestion = &q
		}
	}
	return snap
}

// Answers returns a copy of the recorded answers.
func (e *Engine) Answers() *domain.Answers {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.answers.Clone()
}

// Subscribe registers a snapshot callback, fired after every state change.
// The returned function cancels the subscription.
func (e *Engine) Subscribe(fn func(domain.Snapshot)) (cancel func()) {
	e.subMu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.subMu.Unlock()
	return func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}
}

// publish pushes the current snapshot to all subscribers, outside the
// engine lock.
func (e *Engine) publish() {
	snap := e.Snapshot()
	e.subMu.Lock()
	fns := make([]func(domain.Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
