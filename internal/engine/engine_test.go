package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingokit/onboard/internal/engine"
	"github.com/lingokit/onboard/internal/testutils"
	"github.com/lingokit/onboard/pkg/adapters/memory"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

func threeQuestionBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New([]domain.Question{
		{ID: "name", Prompt: "What's your name?", Order: 0, Kind: domain.KindFreeText, Field: "display_name"},
		{ID: "goals", Prompt: "What are your goals?", Order: 1, Kind: domain.KindMultiChoice, Field: "learning_goals"},
		{ID: "level", Prompt: "What's your level?", Order: 2, Kind: domain.KindSingleChoice, Field: "experience_level"},
	})
	require.NoError(t, err)
	return b
}

type fixture struct {
	engine   *engine.Engine
	identity *memory.Identity
	flags    *memory.FlagStore
	sched    *testutils.ManualScheduler
}

func newFixture(t *testing.T, b *bank.Bank) *fixture {
	t.Helper()
	identity := memory.NewIdentity(&ports.UserIdentity{ID: "user-1", Email: "u@example.com", EmailVerified: true})
	flags := memory.NewFlagStore()
	sched := &testutils.ManualScheduler{}
	eng := engine.New(b, identity, flags, engine.WithScheduler(sched))
	return &fixture{engine: eng, identity: identity, flags: flags, sched: sched}
}

// answerCurrent fires the typing timer and submits a response for the
// question the engine is awaiting.
func (f *fixture) answerCurrent(t *testing.T, resp domain.Response) {
	t.Helper()
	f.sched.Fire()
	snap := f.engine.Snapshot()
	require.NotNil(t, snap.CurrentQuestion, "expected an awaiting question, phase=%s", snap.Phase)
	require.NoError(t, f.engine.Submit(context.Background(), snap.CurrentQuestion.ID, resp))
}

func TestEngine_FullRun(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	ctx := context.Background()

	var phases []domain.Phase
	cancel := f.engine.Subscribe(func(s domain.Snapshot) {
		if len(phases) == 0 || phases[len(phases)-1] != s.Phase {
			phases = append(phases, s.Phase)
		}
	})
	defer cancel()

	require.NoError(t, f.engine.Start(ctx))
	require.Equal(t, domain.PhaseAwaiting, f.engine.Snapshot().Phase)

	f.answerCurrent(t, domain.FreeText("Ada"))
	f.answerCurrent(t, domain.MultiChoice("Grammar", "Vocabulary"))
	f.answerCurrent(t, domain.SingleChoice("Some basics"))

	snap := f.engine.Snapshot()
	assert.Equal(t, domain.PhaseComplete, snap.Phase)
	assert.True(t, snap.Complete)
	assert.False(t, snap.Saving)
	assert.NotEmpty(t, snap.SuccessMessage)
	assert.Nil(t, snap.Err)

	// Phase trajectory: awaiting for each step, then saving, then complete.
	assert.Contains(t, phases, domain.PhaseSaving)
	assert.Equal(t, domain.PhaseComplete, phases[len(phases)-1])

	// Answers were persisted to metadata, including the completion marker.
	meta, err := f.identity.ReadMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", meta["display_name"])
	assert.Equal(t, "Grammar,Vocabulary", meta["learning_goals"])
	assert.Equal(t, "true", meta[engine.MetaKeyCompleted])

	// Cache refreshed with completed=true.
	flag, err := f.flags.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, flag.Completed)
}

func TestEngine_TimelineAlternates(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	require.NoError(t, f.engine.Start(context.Background()))

	f.answerCurrent(t, domain.FreeText("Ada"))
	f.answerCurrent(t, domain.MultiChoice("Travel"))
	f.answerCurrent(t, domain.SingleChoice("Advanced"))

	msgs := f.engine.Snapshot().Messages
	require.Len(t, msgs, 6)
	for i, m := range msgs {
		assert.False(t, m.Typing, "no placeholder should survive, message %d", i)
		if i%2 == 0 {
			assert.Equal(t, domain.SenderAssistant, m.Sender, "message %d", i)
		} else {
			assert.Equal(t, domain.SenderUser, m.Sender, "message %d", i)
		}
	}
}

func TestEngine_TypingPlaceholderIsLastAndUnique(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	require.NoError(t, f.engine.Start(context.Background()))

	msgs := f.engine.Snapshot().Messages
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Typing)

	// The real message replaces the placeholder; it is removed, not hidden.
	f.sched.Fire()
	msgs = f.engine.Snapshot().Messages
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Typing)
	assert.Equal(t, "What's your name?", msgs[0].Text)
}

func TestEngine_SubmitWhileTypingIsRejected(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	require.NoError(t, f.engine.Start(context.Background()))

	err := f.engine.Submit(context.Background(), "name", domain.FreeText("Ada"))
	assert.ErrorIs(t, err, domain.ErrEngineBusy)
}

func TestEngine_SubmitBeforeStartIsRejected(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	err := f.engine.Submit(context.Background(), "name", domain.FreeText("Ada"))
	assert.ErrorIs(t, err, domain.ErrNotAwaiting)
}

// A stale-step submission is silently ignored: submitting the same answer
// twice yields exactly one user message.
func TestEngine_StaleSubmissionIgnored(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	ctx := context.Background()
	require.NoError(t, f.engine.Start(ctx))

	f.answerCurrent(t, domain.FreeText("Ada"))
	// Second submission for the already-answered step.
	require.NoError(t, f.engine.Submit(ctx, "name", domain.FreeText("Ada")))

	userMsgs := 0
	for _, m := range f.engine.Snapshot().Messages {
		if m.Sender == domain.SenderUser {
			userMsgs++
		}
	}
	assert.Equal(t, 1, userMsgs)

	answers := f.engine.Answers()
	assert.Equal(t, 1, answers.Len())
}

func TestEngine_EmptyBankSkips(t *testing.T) {
	b, err := bank.New(nil)
	require.NoError(t, err)
	f := newFixture(t, b)

	require.NoError(t, f.engine.Start(context.Background()))
	snap := f.engine.Snapshot()
	assert.Equal(t, domain.PhaseSkipped, snap.Phase)
	assert.True(t, snap.Complete)
	assert.Empty(t, snap.Messages)
}

func TestEngine_FreshCompletedFlagSkips(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	f.flags.Seed("user-1", true, time.Now().Add(-time.Hour))

	require.NoError(t, f.engine.Start(context.Background()))
	snap := f.engine.Snapshot()
	assert.Equal(t, domain.PhaseSkipped, snap.Phase)
	assert.Empty(t, snap.Messages)
}

// A cached completed=true flag past the freshness window is a miss: the
// remote is consulted rather than the stale flag trusted.
func TestEngine_StaleCompletedFlagConsultsRemote(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	f.flags.Seed("user-1", true, time.Now().Add(-8*24*time.Hour))
	// Remote metadata has no completion marker, so onboarding must run.

	require.NoError(t, f.engine.Start(context.Background()))
	assert.Equal(t, domain.PhaseAwaiting, f.engine.Snapshot().Phase)
}

func TestEngine_GateFailure(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	f.identity.ReadErr = errors.New("dial tcp 10.0.0.1:443: connection refused")
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx))
	snap := f.engine.Snapshot()
	require.NotNil(t, snap.Err)
	assert.Equal(t, domain.PhaseFailed, snap.Phase)
	assert.Equal(t, domain.StageGate, snap.Err.Stage)
	assert.Equal(t, domain.CategoryNetwork, snap.Err.Category)
	assert.Equal(t, 0, f.engine.Answers().Len())
	assert.Empty(t, snap.Messages)

	// Retry re-invokes the gate; with the backend healthy again the flow
	// proceeds to the first question.
	f.identity.ReadErr = nil
	require.NoError(t, f.engine.Retry(ctx))
	assert.Equal(t, domain.PhaseAwaiting, f.engine.Snapshot().Phase)
}

func TestEngine_NotAuthenticated(t *testing.T) {
	b := threeQuestionBank(t)
	identity := memory.NewIdentity(nil)
	f := &fixture{
		engine:   engine.New(b, identity, memory.NewFlagStore(), engine.WithScheduler(&testutils.ManualScheduler{})),
		identity: identity,
	}

	require.NoError(t, f.engine.Start(context.Background()))
	snap := f.engine.Snapshot()
	require.NotNil(t, snap.Err)
	assert.Equal(t, domain.CategoryUnauthorized, snap.Err.Category)
}

// A verification failure after a (seemingly) successful write is reported
// as verification-failed, answers are preserved, and an explicit Complete
// re-attempts the whole protocol without re-asking questions.
func TestEngine_VerificationFailureThenRetry(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	f.identity.DropWrites = true
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx))
	f.answerCurrent(t, domain.FreeText("Ada"))
	f.answerCurrent(t, domain.MultiChoice("Culture"))
	f.answerCurrent(t, domain.SingleChoice("Conversational"))

	snap := f.engine.Snapshot()
	require.NotNil(t, snap.Err)
	assert.Equal(t, domain.PhaseFailed, snap.Phase)
	assert.Equal(t, domain.StageSave, snap.Err.Stage)
	assert.Equal(t, domain.CategoryVerificationFailed, snap.Err.Category)
	assert.Equal(t, 3, f.engine.Answers().Len(), "answers must survive a save failure")

	f.identity.DropWrites = false
	require.NoError(t, f.engine.Complete(ctx))

	snap = f.engine.Snapshot()
	assert.Equal(t, domain.PhaseComplete, snap.Phase)
	assert.Nil(t, snap.Err)
	assert.NotEmpty(t, snap.SuccessMessage)
}

func TestEngine_WriteFailureIsNotVerificationFailure(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	f.identity.UpdateErr = errors.New("connection reset by peer")
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx))
	f.answerCurrent(t, domain.FreeText("Ada"))
	f.answerCurrent(t, domain.MultiChoice("Career"))
	f.answerCurrent(t, domain.SingleChoice("Advanced"))

	snap := f.engine.Snapshot()
	require.NotNil(t, snap.Err)
	assert.Equal(t, domain.CategoryNetwork, snap.Err.Category)
	assert.NotEqual(t, domain.CategoryVerificationFailed, snap.Err.Category)
}

func TestEngine_ResetDiscardsSession(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx))
	f.answerCurrent(t, domain.FreeText("Ada"))

	require.NoError(t, f.engine.Reset(ctx))
	snap := f.engine.Snapshot()
	assert.Equal(t, domain.PhaseInitializing, snap.Phase)
	assert.Empty(t, snap.Messages)
	assert.Nil(t, snap.Err)
	assert.Equal(t, 0, f.engine.Answers().Len())

	// A typing timer scheduled before the reset must not resurrect the
	// old session's message.
	f.sched.Fire()
	assert.Empty(t, f.engine.Snapshot().Messages)

	// The session can run again from scratch.
	require.NoError(t, f.engine.Start(ctx))
	assert.Equal(t, domain.PhaseAwaiting, f.engine.Snapshot().Phase)
}

func TestEngine_ResetWhileTypingClearsPlaceholder(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx))
	require.True(t, f.engine.Snapshot().Messages[0].Typing)

	require.NoError(t, f.engine.Reset(ctx))
	assert.Empty(t, f.engine.Snapshot().Messages)
	f.sched.Fire()
	assert.Empty(t, f.engine.Snapshot().Messages)
}

func TestEngine_HooksFire(t *testing.T) {
	b := threeQuestionBank(t)
	identity := memory.NewIdentity(&ports.UserIdentity{ID: "user-1"})
	sched := &testutils.ManualScheduler{}

	var started, completed, answered int
	eng := engine.New(b, identity, memory.NewFlagStore(),
		engine.WithScheduler(sched),
		engine.WithHooks(domain.Hooks{
			OnSessionStart: func() { started++ },
			OnComplete:     func() { completed++ },
			OnAnswer:       func(string) { answered++ },
		}),
	)
	f := &fixture{engine: eng, identity: identity, sched: sched}
	ctx := context.Background()

	require.NoError(t, eng.Start(ctx))
	f.answerCurrent(t, domain.FreeText("Ada"))
	f.answerCurrent(t, domain.MultiChoice("Grammar"))
	f.answerCurrent(t, domain.SingleChoice("Advanced"))

	assert.Equal(t, 1, started)
	assert.Equal(t, 3, answered)
	assert.Equal(t, 1, completed)
}

func TestEngine_SubscribePublishesOnChange(t *testing.T) {
	f := newFixture(t, threeQuestionBank(t))

	var snaps []domain.Snapshot
	cancel := f.engine.Subscribe(func(s domain.Snapshot) { snaps = append(snaps, s) })

	require.NoError(t, f.engine.Start(context.Background()))
	assert.NotEmpty(t, snaps)

	n := len(snaps)
	cancel()
	f.sched.Fire()
	assert.Equal(t, n, len(snaps), "canceled subscriber must not be called")
}
