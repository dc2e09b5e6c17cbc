package curriculum

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sandeepkv93/stride/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed curriculum.yaml
var embeddedCurriculum []byte

type document struct {
	Weeks []model.WeekDefinition `yaml:"weeks"`
}

// Store is the read-only twelve-week table. It is immutable after load.
type Store struct {
	weeks []model.WeekDefinition
}

// Load returns the curriculum compiled into the binary.
func Load() (*Store, error) {
	return Parse(embeddedCurriculum)
}

// LoadFile reads a curriculum override from disk.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading curriculum %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a curriculum document.
func Parse(raw []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing curriculum: %w", err)
	}
	if len(doc.Weeks) != model.LastWeek {
		return nil, fmt.Errorf("curriculum: expected %d weeks, got %d", model.LastWeek, len(doc.Weeks))
	}
	for i, w := range doc.Weeks {
		if w.Number != i+1 {
			return nil, fmt.Errorf("curriculum: week at position %d is numbered %d", i+1, w.Number)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("curriculum: %w", err)
		}
	}
	return &Store{weeks: doc.Weeks}, nil
}

// Week returns week n. It fails with *model.OutOfRangeError outside 1..12.
func (s *Store) Week(n int) (model.WeekDefinition, error) {
	if n < model.FirstWeek || n > model.LastWeek {
		return model.WeekDefinition{}, &model.OutOfRangeError{Week: n}
	}
	return s.weeks[n-1].Clone(), nil
}

func (s *Store) Weeks() []model.WeekDefinition {
	out := make([]model.WeekDefinition, 0, len(s.weeks))
	for _, w := range s.weeks {
		out = append(out, w.Clone())
	}
	return out
}
