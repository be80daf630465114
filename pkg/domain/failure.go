package domain

// Category is the user-facing classification of a failure. Classification
// is a keyword heuristic over the raw backend message; see internal/classify.
type Category string

const (
	CategoryNetwork            Category = "network"
	CategoryNotConfigured      Category = "not-configured"
	CategoryIncompleteAnswers  Category = "incomplete-answers"
	CategoryUnverifiedEmail    Category = "unverified-email"
	CategoryVerificationFailed Category = "verification-failed"
	CategoryUnauthorized       Category = "unauthorized"
	CategoryUnknown            Category = "unknown"
)

// Stage identifies which engine operation produced a failure, so retry
// knows what to re-attempt: the gate check or the completion protocol.
type Stage string

const (
	StageGate Stage = "gate"
	StageSave Stage = "save"
)

// Failure is a classified, display-ready error carried in the session
// state. It is a value, not an ambient exception: every failure inside
// the engine is representable as a state.
type Failure struct {
	Stage    Stage    `json:"stage"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}
