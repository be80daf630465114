package domain

import (
	"strconv"
	"strings"
)

// Response is the answer payload for one question. It is a tagged union
// keyed by Kind: exactly one of Choice, Choices, Text or Scale carries
// the value. Responses are immutable once created.
type Response struct {
	Kind    ResponseKind `json:"kind"`
	Choice  string       `json:"choice,omitempty"`
	Choices []string     `json:"choices,omitempty"`
	Text    string       `json:"text,omitempty"`
	Scale   int          `json:"scale,omitempty"`
}

// SingleChoice builds a single-choice response.
func SingleChoice(option string) Response {
	return Response{Kind: KindSingleChoice, Choice: option}
}

// MultiChoice builds a multi-choice response.
func MultiChoice(options ...string) Response {
	return Response{Kind: KindMultiChoice, Choices: options}
}

// FreeText builds a free-text response.
func FreeText(text string) Response {
	return Response{Kind: KindFreeText, Text: text}
}

// ScaleValue builds a scale response.
func ScaleValue(v int) Response {
	return Response{Kind: KindScale, Scale: v}
}

// Summary returns the human-readable form of the answer, used verbatim
// as the user's message text in the timeline.
func (r Response) Summary() string {
	switch r.Kind {
	case KindSingleChoice:
		return r.Choice
	case KindMultiChoice:
		return strings.Join(r.Choices, ", ")
	case KindScale:
		return strconv.Itoa(r.Scale)
	default:
		return r.Text
	}
}

// StorageValue returns the string form persisted to user metadata.
// Multi-choice answers are comma-joined; see SplitList for the inverse.
func (r Response) StorageValue() string {
	switch r.Kind {
	case KindSingleChoice:
		return r.Choice
	case KindMultiChoice:
		return JoinList(r.Choices)
	case KindScale:
		return strconv.Itoa(r.Scale)
	default:
		return r.Text
	}
}

// JoinList encodes a list-valued answer as a comma-separated string.
// Entries are trimmed and empty entries are dropped before joining,
// so the encoding round-trips through SplitList.
func JoinList(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		kept = append(kept, v)
	}
	return strings.Join(kept, ",")
}

// SplitList decodes a comma-separated string back into a list:
// split on ",", trim whitespace, discard empty segments.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
