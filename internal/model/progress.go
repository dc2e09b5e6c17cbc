package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// CompletionRecord is emitted once per finished session.
type CompletionRecord struct {
	Week    int
	Variant VariantKey
	Date    time.Time
}

// Key is day-granular: completing the same variant twice on one calendar day
// yields the same key.
func (r CompletionRecord) Key() string {
	return fmt.Sprintf("week%d-%s-%s", r.Week, r.Variant, r.Date.Format(dateLayout))
}

type ProgramState struct {
	CurrentWeek int
	Completed   map[string]bool
}

func DefaultProgramState() ProgramState {
	return ProgramState{CurrentWeek: FirstWeek, Completed: make(map[string]bool)}
}

// ClampWeek pins n into FirstWeek..LastWeek.
func ClampWeek(n int) int {
	if n < FirstWeek {
		return FirstWeek
	}
	if n > LastWeek {
		return LastWeek
	}
	return n
}

// CompletedInWeek counts ledger keys recorded under week n.
func (s ProgramState) CompletedInWeek(n int) int {
	prefix := fmt.Sprintf("week%d-", n)
	count := 0
	for key, done := range s.Completed {
		if done && strings.HasPrefix(key, prefix) {
			count++
		}
	}
	return count
}

// Keys returns the completed keys in sorted order.
func (s ProgramState) Keys() []string {
	out := make([]string, 0, len(s.Completed))
	for key, done := range s.Completed {
		if done {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
