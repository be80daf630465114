// Package classify maps raw backend failure text onto the small set of
// user-facing error categories. Matching is a case-insensitive substring
// heuristic in a fixed priority order; this is best-effort, not a
// structured error contract.
package classify

import (
	"strings"

	"github.com/lingokit/onboard/pkg/domain"
)

// MaxDisplayLen bounds the length of an unclassified message shown to the
// user, so arbitrarily long backend text never overflows the UI.
const MaxDisplayLen = 140

// rules are evaluated in order; the first keyword hit wins.
var rules = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryNetwork, []string{"network", "timeout", "timed out", "connection", "unreachable", "dns", "dial"}},
	{domain.CategoryNotConfigured, []string{"not configured", "missing configuration", "no backend", "not initialized"}},
	{domain.CategoryIncompleteAnswers, []string{"incomplete", "unanswered", "missing answer"}},
	{domain.CategoryUnverifiedEmail, []string{"email not verified", "unverified email", "verify your email", "email_not_confirmed"}},
	{domain.CategoryVerificationFailed, []string{"verification failed", "verify write", "read-back", "not persisted"}},
	{domain.CategoryUnauthorized, []string{"unauthorized", "not authenticated", "permission denied", "forbidden", "invalid token", "jwt"}},
}

// Classify returns the category for a raw failure description.
// Unmatched text falls back to CategoryUnknown.
func Classify(raw string) domain.Category {
	lower := strings.ToLower(raw)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryUnknown
}

// Humanize returns the display message for a raw failure description:
// a fixed phrasing for known categories, the truncated raw text otherwise.
func Humanize(raw string) string {
	switch Classify(raw) {
	case domain.CategoryNetwork:
		return "We couldn't reach the server. Check your connection and try again."
	case domain.CategoryNotConfigured:
		return "The backend isn't configured yet. Please contact support."
	case domain.CategoryIncompleteAnswers:
		return "Some questions haven't been answered yet."
	case domain.CategoryUnverifiedEmail:
		return "Please verify your email address before continuing."
	case domain.CategoryVerificationFailed:
		return "We couldn't confirm your answers were saved. Please try again."
	case domain.CategoryUnauthorized:
		return "You need to be signed in to finish onboarding."
	default:
		return Truncate(raw)
	}
}

// Truncate bounds text to MaxDisplayLen runes, appending an ellipsis when cut.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDisplayLen {
		return s
	}
	return string(runes[:MaxDisplayLen-1]) + "…"
}

// Failure builds a classified, display-ready failure for the given stage.
func Failure(stage domain.Stage, raw string) *domain.Failure {
	return &domain.Failure{
		Stage:    stage,
		Category: Classify(raw),
		Message:  Humanize(raw),
	}
}
