// Package bank provides the immutable, ordered catalogue of onboarding
// questions shared by all sessions.
package bank

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lingokit/onboard/pkg/domain"
)

// Bank is an ordered, read-only question catalogue. Safe for concurrent use.
type Bank struct {
	questions []domain.Question
	byID      map[string]int
}

// New builds a bank from the given questions, sorting by Order.
// IDs must be unique and non-empty.
func New(questions []domain.Question) (*Bank, error) {
	qs := make([]domain.Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })

	byID := make(map[string]int, len(qs))
	for i, q := range qs {
		if q.ID == "" {
			return nil, fmt.Errorf("question at position %d has no id", i)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.Kind == "" {
			return nil, fmt.Errorf("question %q has no response kind", q.ID)
		}
		byID[q.ID] = i
	}
	return &Bank{questions: qs, byID: byID}, nil
}

// Parse builds a bank from YAML content.
func Parse(data []byte) (*Bank, error) {
	var doc struct {
		Questions []domain.Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	return New(doc.Questions)
}

// LoadFile builds a bank from a YAML file on disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	return Parse(data)
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the question at the given step index.
func (b *Bank) At(i int) (domain.Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return domain.Question{}, false
	}
	return b.questions[i], true
}

// ByID returns the question with the given id.
func (b *Bank) ByID(id string) (domain.Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	return b.questions[i], true
}

// Questions returns a copy of the ordered catalogue.
func (b *Bank) Questions() []domain.Question {
	out := make([]domain.Question, len(b.questions))
	copy(out, b.questions)
	return out
}
