package bank

import "github.com/lingokit/onboard/pkg/domain"

// Default returns the built-in onboarding script for the language-learning
// client. Kept in code rather than YAML so the desktop binary works without
// bundled assets.
func Default() *Bank {
	b, err := New([]domain.Question{
		{
			ID:     "display_name",
			Prompt: "Hi! I'm **Lela**, your learning guide. What should I call you?",
			Order:  0,
			Kind:   domain.KindFreeText,
			Field:  "display_name",
		},
		{
			ID:     "native_language",
			Prompt: "Nice to meet you! Which language do you speak at home?",
			Order:  1,
			Kind:   domain.KindFreeText,
			Field:  "native_language",
		},
		{
			ID:      "target_language",
			Prompt:  "Which language would you like to learn?",
			Order:   2,
			Kind:    domain.KindSingleChoice,
			Field:   "target_language",
			Options: []string{"Spanish", "French", "German", "Italian", "Portuguese", "Japanese"},
		},
		{
			ID:      "learning_goals",
			Prompt:  "What do you want to focus on? Pick as many as you like.",
			Order:   3,
			Kind:    domain.KindMultiChoice,
			Field:   "learning_goals",
			Options: []string{"Grammar", "Vocabulary", "Conversation", "Travel", "Culture", "Career"},
		},
		{
			ID:     "weekly_minutes",
			Prompt: "How many minutes per day can you practice? (5-60)",
			Order:  4,
			Kind:   domain.KindScale,
			Field:  "weekly_minutes",
		},
		{
			ID:      "experience_level",
			Prompt:  "How would you rate your current level?",
			Order:   5,
			Kind:    domain.KindSingleChoice,
			Field:   "experience_level",
			Options: []string{"Complete beginner", "Some basics", "Conversational", "Advanced"},
		},
	})
	if err != nil {
		panic(err) // the built-in script is static
	}
	return b
}
