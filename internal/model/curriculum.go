package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FirstWeek = 1
	LastWeek  = 12
)

var (
	ErrInvalidPhase        = errors.New("model: invalid phase")
	ErrInvalidActivityType = errors.New("model: invalid activity type")
	ErrInvalidDuration     = errors.New("model: invalid duration")
)

// OutOfRangeError reports a week number outside FirstWeek..LastWeek.
type OutOfRangeError struct {
	Week int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("model: week %d out of range %d..%d", e.Week, FirstWeek, LastWeek)
}

type Phase string

const (
	PhaseFoundation  Phase = "Foundation"
	PhaseIntegration Phase = "Integration"
	PhaseMastery     Phase = "Mastery"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseFoundation, PhaseIntegration, PhaseMastery:
		return true
	default:
		return false
	}
}

type ActivityType string

const (
	ActivityMovement    ActivityType = "movement"
	ActivityMindfulness ActivityType = "mindfulness"
	ActivityCognitive   ActivityType = "cognitive"
	ActivityReview      ActivityType = "review"
)

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityMovement, ActivityMindfulness, ActivityCognitive, ActivityReview:
		return true
	default:
		return false
	}
}

// Duration is a nominal length in minutes. It is either a whole number or a
// free-text range such as "15-20", which is kept verbatim.
type Duration struct {
	minutes int
	text    string
}

func Minutes(n int) Duration { return Duration{minutes: n} }

func Range(text string) Duration { return Duration{text: strings.TrimSpace(text)} }

// ParseDuration reads "20" as numeric and anything else non-empty as textual.
func ParseDuration(raw string) (Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Duration{}, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return Duration{}, fmt.Errorf("%w: %d", ErrInvalidDuration, n)
		}
		return Minutes(n), nil
	}
	return Range(raw), nil
}

func (d Duration) IsNumeric() bool { return d.text == "" }

// Value returns the minutes and true for numeric durations.
func (d Duration) Value() (int, bool) {
	if !d.IsNumeric() {
		return 0, false
	}
	return d.minutes, true
}

func (d Duration) IsZero() bool { return d.text == "" && d.minutes == 0 }

func (d Duration) String() string {
	if d.IsNumeric() {
		return strconv.Itoa(d.minutes)
	}
	return d.text
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected scalar", ErrInvalidDuration, node.Line)
	}
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	if d.IsNumeric() {
		return d.minutes, nil
	}
	return d.text, nil
}

// VariantKey labels the weekdays a variant applies to ("Mon/Wed/Fri", "Daily").
type VariantKey string

type ActivityTemplate struct {
	Type        ActivityType `yaml:"type"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Duration    Duration     `yaml:"duration"`
}

type SessionTemplate struct {
	Duration   Duration           `yaml:"duration"`
	Activities []ActivityTemplate `yaml:"activities"`
}

type Variant struct {
	Key     VariantKey      `yaml:"key"`
	Session SessionTemplate `yaml:"session"`
}

type WeekDefinition struct {
	Number    int       `yaml:"week"`
	Title     string    `yaml:"title"`
	Phase     Phase     `yaml:"phase"`
	Focus     string    `yaml:"focus"`
	Milestone string    `yaml:"milestone"`
	Variants  []Variant `yaml:"sessions"`
}

// Session returns the template registered under key.
func (w WeekDefinition) Session(key VariantKey) (SessionTemplate, bool) {
	for _, v := range w.Variants {
		if v.Key == key {
			return v.Session, true
		}
	}
	return SessionTemplate{}, false
}

// Keys returns variant keys in declared order.
func (w WeekDefinition) Keys() []VariantKey {
	out := make([]VariantKey, 0, len(w.Variants))
	for _, v := range w.Variants {
		out = append(out, v.Key)
	}
	return out
}

// Clone returns a deep copy so callers cannot reach the store's slices.
func (w WeekDefinition) Clone() WeekDefinition {
	out := w
	out.Variants = make([]Variant, len(w.Variants))
	for i, v := range w.Variants {
		out.Variants[i] = Variant{Key: v.Key, Session: v.Session.Clone()}
	}
	return out
}

func (s SessionTemplate) Clone() SessionTemplate {
	out := s
	out.Activities = append([]ActivityTemplate(nil), s.Activities...)
	return out
}

func (a ActivityTemplate) Validate() error {
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivityType, a.Type)
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("model: activity name is required")
	}
	if a.Duration.IsZero() {
		return fmt.Errorf("%w: activity %q has no duration", ErrInvalidDuration, a.Name)
	}
	return nil
}

func (w WeekDefinition) Validate() error {
	if w.Number < FirstWeek || w.Number > LastWeek {
		return &OutOfRangeError{Week: w.Number}
	}
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("model: week %d title is required", w.Number)
	}
	if !w.Phase.IsValid() {
		return fmt.Errorf("%w: week %d: %q", ErrInvalidPhase, w.Number, w.Phase)
	}
	if len(w.Variants) == 0 {
		return fmt.Errorf("model: week %d has no sessions", w.Number)
	}
	seen := make(map[VariantKey]bool, len(w.Variants))
	for _, v := range w.Variants {
		if strings.TrimSpace(string(v.Key)) == "" {
			return fmt.Errorf("model: week %d has a session without a key", w.Number)
		}
		if seen[v.Key] {
			return fmt.Errorf("model: week %d duplicate session %q", w.Number, v.Key)
		}
		seen[v.Key] = true
		if len(v.Session.Activities) == 0 {
			return fmt.Errorf("model: week %d session %q has no activities", w.Number, v.Key)
		}
		for _, a := range v.Session.Activities {
			if err := a.Validate(); err != nil {
				return fmt.Errorf("week %d session %q: %w", w.Number, v.Key, err)
			}
		}
	}
	return nil
}

// AdaptedActivity is an ActivityTemplate after preferences have been applied.
type AdaptedActivity struct {
	Type        ActivityType
	Name        string
	Description string
	Duration    Duration
}

// AdaptedSession is derived per render and never persisted.
type AdaptedSession struct {
	Duration   Duration
	Activities []AdaptedActivity
}
