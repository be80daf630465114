package domain

// Answers accumulates one response per question for the current session.
// Keys are question IDs; insertion order is preserved (answer order, which
// may differ from question order when a step is retried). Owned exclusively
// by one engine instance, never shared across sessions.
type Answers struct {
	order []string
	byID  map[string]Response
}

// NewAnswers creates an empty answer record.
func NewAnswers() *Answers {
	return &Answers{byID: make(map[string]Response)}
}

// Set records the response for a question. A re-submission for the same
// question replaces the previous response in place; it never duplicates.
func (a *Answers) Set(questionID string, r Response) {
	if _, exists := a.byID[questionID]; !exists {
		a.order = append(a.order, questionID)
	}
	a.byID[questionID] = r
}

// Get returns the recorded response for a question, if any.
func (a *Answers) Get(questionID string) (Response, bool) {
	r, ok := a.byID[questionID]
	return r, ok
}

// Has reports whether the question has been answered.
func (a *Answers) Has(questionID string) bool {
	_, ok := a.byID[questionID]
	return ok
}

// Len returns the number of answered questions.
func (a *Answers) Len() int {
	return len(a.order)
}

// IDs returns the answered question IDs in insertion order.
func (a *Answers) IDs() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Clone returns a deep copy, isolating the caller from later mutation.
func (a *Answers) Clone() *Answers {
	c := NewAnswers()
	for _, id := range a.order {
		c.Set(id, a.byID[id])
	}
	return c
}

// Reset discards all recorded answers.
func (a *Answers) Reset() {
	a.order = nil
	a.byID = make(map[string]Response)
}
