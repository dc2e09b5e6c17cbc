package curriculum

import (
	"strings"

	"github.com/sandeepkv93/stride/internal/model"
)

const (
	extendedBreakMinutes = 2
	// FallbackCountdownSeconds seeds the countdown for textual durations.
	FallbackCountdownSeconds = 5 * 60
)

var (
	complexKeywords  = []string{"exergaming", "complex movement patterns", "multi-step coordination", "coordination exercises"}
	preserveKeywords = []string{"dance", "martial arts", "open-skill"}
)

// AdjustDuration pads numeric durations when extended breaks are on. Textual
// ranges pass through unchanged.
func AdjustDuration(d model.Duration, extendedBreaks bool) model.Duration {
	if !extendedBreaks {
		return d
	}
	if n, ok := d.Value(); ok {
		return model.Minutes(n + extendedBreakMinutes)
	}
	return d
}

// FilterComplexActivities drops activities that mention a complex keyword
// unless they also mention a preserve keyword. The input is never modified.
func FilterComplexActivities(acts []model.ActivityTemplate, skipComplex bool) []model.ActivityTemplate {
	out := make([]model.ActivityTemplate, 0, len(acts))
	for _, a := range acts {
		if skipComplex && isComplex(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func isComplex(a model.ActivityTemplate) bool {
	text := strings.ToLower(a.Name + " " + a.Description)
	if containsAny(text, preserveKeywords) {
		return false
	}
	return containsAny(text, complexKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Adapt applies preferences to a session template: filter first, then pad
// the durations of what remains.
func Adapt(tpl model.SessionTemplate, prefs model.Preferences) model.AdaptedSession {
	kept := FilterComplexActivities(tpl.Activities, prefs.SkipComplex)
	out := model.AdaptedSession{
		Duration:   AdjustDuration(tpl.Duration, prefs.ExtendedBreaks),
		Activities: make([]model.AdaptedActivity, 0, len(kept)),
	}
	for _, a := range kept {
		out.Activities = append(out.Activities, model.AdaptedActivity{
			Type:        a.Type,
			Name:        a.Name,
			Description: a.Description,
			Duration:    AdjustDuration(a.Duration, prefs.ExtendedBreaks),
		})
	}
	return out
}

// CountdownSeconds converts an adapted duration into the countdown seed.
func CountdownSeconds(d model.Duration) int {
	if n, ok := d.Value(); ok {
		return n * 60
	}
	return FallbackCountdownSeconds
}

// MatchesExercise reports whether an activity fits the preferred exercise type.
func MatchesExercise(a model.AdaptedActivity, e model.ExerciseType) bool {
	if a.Type != model.ActivityMovement {
		return false
	}
	return containsAny(strings.ToLower(a.Name+" "+a.Description), e.Keywords())
}
