package domain

// ResponseKind defines how a question expects to be answered.
type ResponseKind string

const (
	// KindSingleChoice expects exactly one option from a fixed set.
	KindSingleChoice ResponseKind = "single-choice"
	// KindMultiChoice expects zero or more options from a fixed set.
	KindMultiChoice ResponseKind = "multi-choice"
	// KindFreeText expects arbitrary text.
	KindFreeText ResponseKind = "free-text"
	// KindScale expects an integer on a bounded scale.
	KindScale ResponseKind = "scale"
)

// Question is a single entry in the onboarding script.
// Questions are immutable once the bank is built; ordering is by Order.
type Question struct {
	ID     string       `json:"id" yaml:"id"`
	Prompt string       `json:"prompt" yaml:"prompt"`
	Order  int          `json:"order" yaml:"order"`
	Kind   ResponseKind `json:"kind" yaml:"kind"`

	// Field is the metadata key the answer is persisted under.
	// Defaults to ID when empty.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Options constrains choice-kind questions. Ignored for free-text and scale.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// MetadataKey returns the key this question's answer is stored under.
func (q Question) MetadataKey() string {
	if q.Field != "" {
		return q.Field
	}
	return q.ID
}
