package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders assistant markdown using
// glamour, with automatic light/dark background detection.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		// Fall back to plain text when the terminal can't be probed.
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TypingIndicator returns the dimmed "assistant is typing" line.
func TypingIndicator() string {
	p := termenv.ColorProfile()
	return termenv.String("· · · typing").Faint().Foreground(p.Color("8")).String()
}

// UserPrefix returns the styled prompt prefix for user input.
func UserPrefix() string {
	return termenv.String("you ❯ ").Bold().String()
}
