package domain

// Phase defines the current mode of the engine mechanics.
type Phase string

const (
	// PhaseInitializing means the completion gate is being consulted.
	PhaseInitializing Phase = "initializing"
	// PhaseAwaiting means the engine is waiting for the user's answer
	// to the current question.
	PhaseAwaiting Phase = "awaiting_response"
	// PhaseSaving means the completion protocol is running.
	PhaseSaving Phase = "saving"
	// PhaseComplete means onboarding finished and was persisted.
	PhaseComplete Phase = "complete"
	// PhaseSkipped means the gate decided onboarding is not needed.
	PhaseSkipped Phase = "skipped"
	// PhaseFailed means a gate or save failure is awaiting retry.
	PhaseFailed Phase = "failed"
)

// Snapshot is the observable session state handed to a presentation layer.
// It is a value copy; mutating it has no effect on the session.
type Snapshot struct {
	Phase           Phase     `json:"phase"`
	Step            int       `json:"step"`
	Loading         bool      `json:"loading"`
	Saving          bool      `json:"saving"`
	Complete        bool      `json:"complete"`
	CurrentQuestion *Question `json:"current_question,omitempty"`
	Messages        []Message `json:"messages"`
	Err             *Failure  `json:"error,omitempty"`
	SuccessMessage  string    `json:"success_message,omitempty"`
}
