package domain

// Hooks defines callbacks for engine observability. They are invoked
// outside the engine's session lock; nil fields are skipped.
type Hooks struct {
	OnSessionStart func()
	OnAnswer       func(questionID string)
	OnComplete     func()
	OnSaveFailure  func(category Category)
}
