package engine

import (
	"github.com/google/uuid"

	"github.com/lingokit/onboard/pkg/domain"
)

// Timeline helpers. All of these require e.mu to be held: message emission
// is serialized per session, so at most one typing placeholder exists and
// it is always the most recent entry.

func (e *Engine) newMessage(sender domain.Sender, text string, typing bool) domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Typing:    typing,
		Timestamp: e.now(),
	}
}

// appendTyping pushes the assistant typing placeholder.
func (e *Engine) appendTyping() {
	e.timeline = append(e.timeline, e.newMessage(domain.SenderAssistant, "", true))
	e.typing = true
}

// resolveTyping removes the pending placeholder and appends the real
// assistant message. The placeholder is removed, never just hidden.
func (e *Engine) resolveTyping(text string) {
	if n := len(e.timeline); n > 0 && e.timeline[n-1].Typing {
		e.timeline = e.timeline[:n-1]
	}
	e.typing = false
	e.timeline = append(e.timeline, e.newMessage(domain.SenderAssistant, text, false))
}

// dropTyping discards a pending placeholder without emitting anything.
// Used by reset while a typing timer is in flight.
func (e *Engine) dropTyping() {
	if n := len(e.timeline); n > 0 && e.timeline[n-1].Typing {
		e.timeline = e.timeline[:n-1]
	}
	e.typing = false
}

// appendUser pushes the user's message.
func (e *Engine) appendUser(text string) {
	e.timeline = append(e.timeline, e.newMessage(domain.SenderUser, text, false))
}

func (e *Engine) messagesCopy() []domain.Message {
	out := make([]domain.Message, len(e.timeline))
	copy(out, e.timeline)
	return out
}
