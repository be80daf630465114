package engine

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
)

// EncodeAnswers serializes an answer record into the external metadata
// shape: one string value per question, keyed by the question's metadata
// field. List-valued answers are comma-joined; domain.SplitList is the
// exact inverse.
func EncodeAnswers(b *bank.Bank, answers *domain.Answers) map[string]string {
	out := make(map[string]string, answers.Len())
	for _, id := range answers.IDs() {
		q, ok := b.ByID(id)
		if !ok {
			continue
		}
		resp, _ := answers.Get(id)
		out[q.MetadataKey()] = resp.StorageValue()
	}
	return out
}

// Profile is the decoded learning profile stored in user metadata by the
// default question bank.
type Profile struct {
	DisplayName     string   `mapstructure:"display_name"`
	NativeLanguage  string   `mapstructure:"native_language"`
	TargetLanguage  string   `mapstructure:"target_language"`
	LearningGoals   []string `mapstructure:"learning_goals"`
	WeeklyMinutes   int      `mapstructure:"weekly_minutes"`
	ExperienceLevel string   `mapstructure:"experience_level"`
	Completed       bool     `mapstructure:"onboarding_completed"`
}

// DecodeProfile maps raw metadata back into a Profile. Comma-joined list
// fields are split, trimmed, and stripped of empty segments on the way in.
func DecodeProfile(meta map[string]string) (*Profile, error) {
	var p Profile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		DecodeHook:       stringToListHook,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(meta); err != nil {
		return nil, fmt.Errorf("failed to decode profile metadata: %w", err)
	}
	return &p, nil
}

// stringToListHook splits comma-joined metadata values into string slices.
func stringToListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	return domain.SplitList(data.(string)), nil
}
