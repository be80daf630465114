package domain

import "time"

// Sender identifies who produced a timeline message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one entry in the chat timeline. Entries with Typing=true are
// transient placeholders: at most one exists at a time, it is always the
// most recent entry, and it is removed (not hidden) before the real
// assistant message is appended.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Typing    bool      `json:"typing,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
