package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandeepkv93/stride/internal/model"
)

const (
	KeyPreferences = "preferences"
	KeyProgress    = "progress"
)

type progressRecord struct {
	CurrentWeek       int      `json:"current_week"`
	CompletedSessions []string `json:"completed_sessions"`
}

// EncodeKeySet flattens a completed-key set into a sorted list.
func EncodeKeySet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key, done := range set {
		key = strings.TrimSpace(key)
		if done && key != "" {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// DecodeKeySet rebuilds the set, dropping blanks and duplicates.
func DecodeKeySet(keys []string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = true
	}
	return out
}

// LoadPreferences always returns usable preferences. On a read failure or an
// invalid stored value it returns the defaults together with the error.
func LoadPreferences(ctx context.Context, s Store) (model.Preferences, error) {
	def := model.DefaultPreferences()
	var p model.Preferences
	found, err := s.Load(ctx, KeyPreferences, &p)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return def, fmt.Errorf("stored preferences: %w", err)
	}
	return p, nil
}

func SavePreferences(ctx context.Context, s Store, p model.Preferences) error {
	return s.Save(ctx, KeyPreferences, p)
}

// LoadProgress returns the stored program state, or the default state with
// the error when it cannot be read.
func LoadProgress(ctx context.Context, s Store) (model.ProgramState, error) {
	def := model.DefaultProgramState()
	var rec progressRecord
	found, err := s.Load(ctx, KeyProgress, &rec)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return model.ProgramState{
		CurrentWeek: model.ClampWeek(rec.CurrentWeek),
		Completed:   DecodeKeySet(rec.CompletedSessions),
	}, nil
}

func SaveProgress(ctx context.Context, s Store, st model.ProgramState) error {
	return s.Save(ctx, KeyProgress, progressRecord{
		CurrentWeek:       st.CurrentWeek,
		CompletedSessions: EncodeKeySet(st.Completed),
	})
}
