/*
Package onboard implements the scripted onboarding conversation for the
lingokit language-learning client.

The engine drives a chat-style Q&A session against an immutable question
bank: it emits assistant messages (preceded by a simulated typing
placeholder), records one response per question, and closes the session
with an all-or-nothing persistence step that writes the answers to the
user's profile metadata, verifies the write, and refreshes the local
"already onboarded" cache.

A completion gate decides up front whether a user needs onboarding at all,
reconciling the cached flag (stale after seven days) against the remote
source of truth.

# Basic Usage

	eng := onboard.New(bank.Default(), identity, flagStore)
	cancel := eng.Subscribe(func(s domain.Snapshot) { render(s) })
	defer cancel()

	if err := eng.Start(ctx); err != nil {
		// engine busy; every flow failure is carried in the snapshot
	}
	// ... for each question: eng.Submit(ctx, q.ID, domain.FreeText("hi"))

Failures never propagate as ambient errors across the engine boundary:
they are classified into a small set of user-facing categories and carried
in the session snapshot, with answers preserved for retry.
*/
package onboard
