package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lingokit/onboard/pkg/domain"
)

func TestAnswers_SetOverwritesInPlace(t *testing.T) {
	a := domain.NewAnswers()
	a.Set("q1", domain.FreeText("first"))
	a.Set("q2", domain.FreeText("other"))
	a.Set("q1", domain.FreeText("second"))

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"q1", "q2"}, a.IDs(), "overwrite must not change insertion order")

	r, ok := a.Get("q1")
	assert.True(t, ok)
	assert.Equal(t, "second", r.Text)
}

func TestAnswers_CloneIsIsolated(t *testing.T) {
	a := domain.NewAnswers()
	a.Set("q1", domain.FreeText("x"))

	c := a.Clone()
	c.Set("q2", domain.FreeText("y"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, c.Len())
}

func TestAnswers_Reset(t *testing.T) {
	a := domain.NewAnswers()
	a.Set("q1", domain.FreeText("x"))
	a.Reset()

	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Has("q1"))
	assert.Empty(t, a.IDs())
}
