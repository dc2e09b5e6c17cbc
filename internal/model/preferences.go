package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidReminderTime = errors.New("model: invalid reminder time")
	ErrInvalidPreference   = errors.New("model: invalid preference")
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

type ExerciseType string

const (
	ExerciseMixed       ExerciseType = "mixed"
	ExerciseAerobic     ExerciseType = "aerobic"
	ExerciseResistance  ExerciseType = "resistance"
	ExerciseDance       ExerciseType = "dance"
	ExerciseMartialArts ExerciseType = "martial_arts"
)

func (e ExerciseType) IsValid() bool {
	switch e {
	case ExerciseMixed, ExerciseAerobic, ExerciseResistance, ExerciseDance, ExerciseMartialArts:
		return true
	default:
		return false
	}
}

// Keywords returns lower-case words that mark an activity as matching the type.
func (e ExerciseType) Keywords() []string {
	switch e {
	case ExerciseAerobic:
		return []string{"aerobic", "walk", "cardio", "cycling"}
	case ExerciseResistance:
		return []string{"resistance", "strength", "squat", "band"}
	case ExerciseDance:
		return []string{"dance"}
	case ExerciseMartialArts:
		return []string{"martial arts", "tai chi", "kata"}
	default:
		return nil
	}
}

type Preferences struct {
	Notifications  bool         `json:"notifications"`
	ReminderTime   string       `json:"reminder_time"`
	SoundEnabled   bool         `json:"sound_enabled"`
	Theme          Theme        `json:"theme"`
	HighContrast   bool         `json:"high_contrast"`
	ReduceMotion   bool         `json:"reduce_motion"`
	ExtendedBreaks bool         `json:"extended_breaks"`
	SkipComplex    bool         `json:"skip_complex"`
	ExerciseType   ExerciseType `json:"exercise_type"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: false,
		ReminderTime:  "09:00",
		SoundEnabled:  true,
		Theme:         ThemeSystem,
		ExerciseType:  ExerciseMixed,
	}
}

func (p Preferences) Validate() error {
	if _, _, err := ParseClock(p.ReminderTime); err != nil {
		return err
	}
	if !p.Theme.IsValid() {
		return fmt.Errorf("%w: theme %q", ErrInvalidPreference, p.Theme)
	}
	if !p.ExerciseType.IsValid() {
		return fmt.Errorf("%w: exercise type %q", ErrInvalidPreference, p.ExerciseType)
	}
	return nil
}

// Normalize fills zero-valued enums from the defaults. Stored preferences
// written by older builds may lack fields.
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()
	if strings.TrimSpace(p.ReminderTime) == "" {
		p.ReminderTime = def.ReminderTime
	}
	if p.Theme == "" {
		p.Theme = def.Theme
	}
	if p.ExerciseType == "" {
		p.ExerciseType = def.ExerciseType
	}
	return p
}

// ParseClock parses a wall-clock "HH:MM" value. Both fields are exactly two
// digits.
func ParseClock(raw string) (hour int, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReminderTime, raw)
	}
	if !twoDigits(h) {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrInvalidReminderTime, raw)
	}
	if !twoDigits(m) {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrInvalidReminderTime, raw)
	}
	hour, _ = strconv.Atoi(h)
	minute, _ = strconv.Atoi(m)
	if hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrInvalidReminderTime, raw)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrInvalidReminderTime, raw)
	}
	return hour, minute, nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
