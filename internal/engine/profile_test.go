package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingokit/onboard/internal/engine"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
)

func TestEncodeAnswers(t *testing.T) {
	b := threeQuestionBank(t)
	answers := domain.NewAnswers()
	answers.Set("name", domain.FreeText("Ada"))
	answers.Set("goals", domain.MultiChoice("Grammar", "Vocabulary"))
	answers.Set("level", domain.SingleChoice("Advanced"))

	meta := engine.EncodeAnswers(b, answers)
	assert.Equal(t, map[string]string{
		"display_name":     "Ada",
		"learning_goals":   "Grammar,Vocabulary",
		"experience_level": "Advanced",
	}, meta)
}

func TestEncodeAnswers_SkipsUnknownQuestions(t *testing.T) {
	b := threeQuestionBank(t)
	answers := domain.NewAnswers()
	answers.Set("ghost", domain.FreeText("boo"))

	meta := engine.EncodeAnswers(b, answers)
	assert.Empty(t, meta)
}

func TestDecodeProfile(t *testing.T) {
	p, err := engine.DecodeProfile(map[string]string{
		"display_name":         "Ada",
		"native_language":      "English",
		"target_language":      "Japanese",
		"learning_goals":       "Grammar, Business English ,Travel",
		"weekly_minutes":       "30",
		"experience_level":     "Some basics",
		"onboarding_completed": "true",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.DisplayName)
	assert.Equal(t, []string{"Grammar", "Business English", "Travel"}, p.LearningGoals)
	assert.Equal(t, 30, p.WeeklyMinutes)
	assert.True(t, p.Completed)
}

func TestDecodeProfile_EmptyList(t *testing.T) {
	p, err := engine.DecodeProfile(map[string]string{"learning_goals": ""})
	require.NoError(t, err)
	assert.Empty(t, p.LearningGoals)
}

// Round trip through the default bank's shape: encode then decode yields
// the original lists with no empty-string artifacts.
func TestProfileRoundTrip(t *testing.T) {
	b := bank.Default()
	cases := [][]string{
		nil,
		{"Grammar"},
		{"Grammar", "Vocabulary"},
		{"Business English", "Travel Phrases", "Culture"},
	}
	for _, goals := range cases {
		answers := domain.NewAnswers()
		answers.Set("learning_goals", domain.MultiChoice(goals...))

		meta := engine.EncodeAnswers(b, answers)
		p, err := engine.DecodeProfile(meta)
		require.NoError(t, err)

		if len(goals) == 0 {
			assert.Empty(t, p.LearningGoals)
		} else {
			assert.Equal(t, goals, p.LearningGoals)
		}
	}
}
