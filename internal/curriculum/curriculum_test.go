package curriculum

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/stride/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-19 is a Monday.
func day(offset int) time.Time {
	return time.Date(2026, 10, 19+offset, 10, 0, 0, 0, time.UTC)
}

func loadStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load()
	require.NoError(t, err)
	return s
}

func TestLoadEmbeddedCurriculum(t *testing.T) {
	s := loadStore(t)
	weeks := s.Weeks()
	require.Len(t, weeks, 12)
	for i, w := range weeks {
		assert.Equal(t, i+1, w.Number)
		assert.NotEmpty(t, w.Variants, "week %d", w.Number)
	}
	assert.Equal(t, model.PhaseFoundation, weeks[0].Phase)
	assert.Equal(t, model.PhaseMastery, weeks[11].Phase)
}

func TestWeekOutOfRange(t *testing.T) {
	s := loadStore(t)
	for _, n := range []int{0, -1, 13} {
		_, err := s.Week(n)
		var oor *model.OutOfRangeError
		require.True(t, errors.As(err, &oor), "week %d", n)
		assert.Equal(t, n, oor.Week)
	}
}

func TestWeekReturnsCopy(t *testing.T) {
	s := loadStore(t)
	w, err := s.Week(2)
	require.NoError(t, err)
	w.Variants[0].Session.Activities[0].Name = "mutated"

	again, err := s.Week(2)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Variants[0].Session.Activities[0].Name)
}

func TestParseRejectsShortCurriculum(t *testing.T) {
	_, err := Parse([]byte("weeks:\n  - week: 1\n    title: x\n    phase: Foundation\n"))
	assert.Error(t, err)
}

func TestSelectVariantAlwaysReturnsExistingKey(t *testing.T) {
	s := loadStore(t)
	for _, w := range s.Weeks() {
		for offset := 0; offset < 7; offset++ {
			key := SelectVariant(w, day(offset))
			_, ok := w.Session(key)
			assert.True(t, ok, "week %d %s returned %q", w.Number, day(offset).Weekday(), key)
		}
	}
}

func TestSelectVariantByWeekday(t *testing.T) {
	s := loadStore(t)
	week3, err := s.Week(3)
	require.NoError(t, err)

	assert.Equal(t, model.VariantKey("Mon/Wed/Fri"), SelectVariant(week3, day(0)))
	assert.Equal(t, model.VariantKey("Tue/Thu"), SelectVariant(week3, day(1)))
	assert.Equal(t, model.VariantKey("Mon/Wed/Fri"), SelectVariant(week3, day(2)))
	assert.Equal(t, model.VariantKey("Tue/Thu"), SelectVariant(week3, day(3)))
	assert.Equal(t, model.VariantKey("Mon/Wed/Fri"), SelectVariant(week3, day(4)))
	assert.Equal(t, model.VariantKey("Saturday"), SelectVariant(week3, day(5)))
	assert.Equal(t, model.VariantKey("Mon/Wed/Fri"), SelectVariant(week3, day(6)))
}

func TestSelectVariantFallsBackToFirst(t *testing.T) {
	week := model.WeekDefinition{Variants: []model.Variant{{Key: "Daily"}, {Key: "Extra"}}}
	for offset := 0; offset < 7; offset++ {
		assert.Equal(t, model.VariantKey("Daily"), SelectVariant(week, day(offset)))
	}

	// Saturday with no Saturday token falls back too.
	s := loadStore(t)
	week2, err := s.Week(2)
	require.NoError(t, err)
	assert.Equal(t, model.VariantKey("Mon/Wed/Fri"), SelectVariant(week2, day(5)))

	// A combined key wins for every weekday it names.
	week11, err := s.Week(11)
	require.NoError(t, err)
	assert.Equal(t, model.VariantKey("Tue/Thu/Sat"), SelectVariant(week11, day(5)))
}

func TestSundayIsRestDayButSelectionSucceeds(t *testing.T) {
	sunday := day(6)
	require.Equal(t, time.Sunday, sunday.Weekday())
	assert.True(t, IsRestDay(sunday))
	assert.False(t, IsRestDay(day(0)))

	s := loadStore(t)
	for _, w := range s.Weeks() {
		assert.Equal(t, w.Variants[0].Key, SelectVariant(w, sunday))
	}
}

func TestAdjustDuration(t *testing.T) {
	got, ok := AdjustDuration(model.Minutes(20), true).Value()
	assert.True(t, ok)
	assert.Equal(t, 22, got)

	got, _ = AdjustDuration(model.Minutes(20), false).Value()
	assert.Equal(t, 20, got)

	assert.Equal(t, "15-20", AdjustDuration(model.Range("15-20"), true).String())
}

func TestFilterComplexActivities(t *testing.T) {
	exergaming := model.ActivityTemplate{Type: model.ActivityMovement, Name: "Exergaming", Description: "Complex movement patterns", Duration: model.Minutes(10)}
	danced := exergaming
	danced.Description = "Complex movement patterns set to dance music"
	walk := model.ActivityTemplate{Type: model.ActivityMovement, Name: "Walk", Duration: model.Minutes(10)}

	in := []model.ActivityTemplate{exergaming, walk, danced}
	out := FilterComplexActivities(in, true)
	require.Len(t, out, 2)
	assert.Equal(t, "Walk", out[0].Name)
	assert.Equal(t, danced.Description, out[1].Description)

	assert.Equal(t, in, FilterComplexActivities(in, false))
	assert.Len(t, in, 3, "input must not be modified")
}

func TestFilterPreserveKeywordsWin(t *testing.T) {
	cases := []model.ActivityTemplate{
		{Name: "Forms", Description: "martial arts kata with complex movement patterns"},
		{Name: "Catch", Description: "Open-skill drill with multi-step coordination"},
	}
	assert.Len(t, FilterComplexActivities(cases, true), 2)
}

func TestAdaptFiltersThenPads(t *testing.T) {
	s := loadStore(t)
	week3, err := s.Week(3)
	require.NoError(t, err)
	tpl, ok := week3.Session("Mon/Wed/Fri")
	require.True(t, ok)

	prefs := model.DefaultPreferences()
	prefs.SkipComplex = true
	prefs.ExtendedBreaks = true

	adapted := Adapt(tpl, prefs)
	require.Len(t, adapted.Activities, len(tpl.Activities)-1)
	for _, a := range adapted.Activities {
		assert.NotEqual(t, "Cross-Body Taps", a.Name)
	}
	first, _ := adapted.Activities[0].Duration.Value()
	assert.Equal(t, 7, first)
	total, _ := adapted.Duration.Value()
	assert.Equal(t, 27, total)

	// Same inputs, same output; template untouched.
	assert.Equal(t, adapted, Adapt(tpl, prefs))
	assert.Len(t, tpl.Activities, 4)
}

func TestAdaptKeepsTextualRanges(t *testing.T) {
	s := loadStore(t)
	week3, err := s.Week(3)
	require.NoError(t, err)
	tpl, ok := week3.Session("Tue/Thu")
	require.True(t, ok)

	prefs := model.DefaultPreferences()
	prefs.ExtendedBreaks = true
	adapted := Adapt(tpl, prefs)
	assert.Equal(t, "15-20", adapted.Duration.String())
	assert.Equal(t, "5-10", adapted.Activities[1].Duration.String())
	assert.Equal(t, "12", adapted.Activities[0].Duration.String())
}

func TestCountdownSeconds(t *testing.T) {
	assert.Equal(t, 600, CountdownSeconds(model.Minutes(10)))
	assert.Equal(t, FallbackCountdownSeconds, CountdownSeconds(model.Range("5-10")))
}

func TestMatchesExercise(t *testing.T) {
	walk := model.AdaptedActivity{Type: model.ActivityMovement, Name: "Brisk Walk", Description: "Aerobic walk"}
	assert.True(t, MatchesExercise(walk, model.ExerciseAerobic))
	assert.False(t, MatchesExercise(walk, model.ExerciseDance))
	assert.False(t, MatchesExercise(walk, model.ExerciseMixed))
}
