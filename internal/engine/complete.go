package engine

import (
	"context"
	"fmt"

	"github.com/lingokit/onboard/internal/classify"
	"github.com/lingokit/onboard/pkg/domain"
)

// runCompletion executes the completion protocol and applies the outcome,
// unless the session was reset while the protocol was in flight.
func (e *Engine) runCompletion(ctx context.Context, gen int) {
	e.mu.Lock()
	answers := e.answers.Clone()
	e.mu.Unlock()

	failure := e.executeCompletion(ctx, answers)

	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return
	}
	e.saving = false
	if failure != nil {
		e.phase = domain.PhaseFailed
		e.failure = failure
		if e.hooks.OnSaveFailure != nil {
			defer e.hooks.OnSaveFailure(failure.Category)
		}
	} else {
		e.phase = domain.PhaseComplete
		e.success = SuccessMessage
		if e.hooks.OnComplete != nil {
			defer e.hooks.OnComplete()
		}
	}
	e.mu.Unlock()
	e.publish()
}

// executeCompletion performs the persistence protocol: identity check,
// serialization, write, verification read, cache refresh. Each step fails
// independently with its own classification; no retry happens here, so a
// partially applied write is surfaced instead of masked.
func (e *Engine) executeCompletion(ctx context.Context, answers *domain.Answers) *domain.Failure {
	// 1. An authenticated identity must exist; its absence is a distinct
	// failure, not a generic one.
	user, err := e.identity.CurrentUser(ctx)
	if err != nil {
		return classify.Failure(domain.StageSave, err.Error())
	}
	if user == nil {
		return classify.Failure(domain.StageSave, domain.ErrNotAuthenticated.Error())
	}

	if answers.Len() < e.bank.Len() {
		return classify.Failure(domain.StageSave,
			fmt.Sprintf("incomplete answers: %d of %d questions answered", answers.Len(), e.bank.Len()))
	}

	// 2. Serialize the answer record into the metadata shape.
	payload := EncodeAnswers(e.bank, answers)
	payload[MetaKeyCompleted] = "true"

	// 3. Submit the payload to the remote store.
	if err := e.identity.UpdateMetadata(ctx, payload); err != nil {
		return classify.Failure(domain.StageSave, err.Error())
	}

	// 4. Verification read: confirm the just-written fields are present.
	// Reported distinctly from a write failure since the write may have
	// partially succeeded.
	got, err := e.identity.ReadMetadata(ctx)
	if err != nil {
		return classify.Failure(domain.StageSave,
			fmt.Sprintf("verification failed: read-back error: %v", err))
	}
	for key, want := range payload {
		if got[key] != want {
			return classify.Failure(domain.StageSave,
				fmt.Sprintf("verification failed: field %s not persisted", key))
		}
	}

	// 5. Refresh the cached completion flag. Best-effort: the remote store
	// is authoritative, so a cache failure never fails the save.
	if err := e.flags.Put(ctx, user.ID, true); err != nil {
		e.logger.Warn("completion flag cache update failed",
			"user_id", user.ID,
			"err", err,
		)
	}
	return nil
}
