package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/views"
)

type settingItem struct {
	label string
	value func(model.Preferences) string
	// toggle returns the preferences after activating the row.
	toggle func(model.Preferences) model.Preferences
}

var themeCycle = []model.Theme{model.ThemeSystem, model.ThemeLight, model.ThemeDark}

var exerciseCycle = []model.ExerciseType{
	model.ExerciseMixed,
	model.ExerciseAerobic,
	model.ExerciseResistance,
	model.ExerciseDance,
	model.ExerciseMartialArts,
}

// settingReminderTime is the row index that +/- adjust.
const settingReminderTime = 1

var settingItems = []settingItem{
	{
		label:  "Notifications",
		value:  func(p model.Preferences) string { return onOff(p.Notifications) },
		toggle: func(p model.Preferences) model.Preferences { p.Notifications = !p.Notifications; return p },
	},
	{
		label:  "Reminder time",
		value:  func(p model.Preferences) string { return p.ReminderTime },
		toggle: func(p model.Preferences) model.Preferences { p.ReminderTime = shiftClock(p.ReminderTime, 15); return p },
	},
	{
		label:  "Sound",
		value:  func(p model.Preferences) string { return onOff(p.SoundEnabled) },
		toggle: func(p model.Preferences) model.Preferences { p.SoundEnabled = !p.SoundEnabled; return p },
	},
	{
		label:  "Theme",
		value:  func(p model.Preferences) string { return string(p.Theme) },
		toggle: func(p model.Preferences) model.Preferences { p.Theme = nextOf(themeCycle, p.Theme); return p },
	},
	{
		label:  "High contrast",
		value:  func(p model.Preferences) string { return onOff(p.HighContrast) },
		toggle: func(p model.Preferences) model.Preferences { p.HighContrast = !p.HighContrast; return p },
	},
	{
		label:  "Reduce motion",
		value:  func(p model.Preferences) string { return onOff(p.ReduceMotion) },
		toggle: func(p model.Preferences) model.Preferences { p.ReduceMotion = !p.ReduceMotion; return p },
	},
	{
		label:  "Extended breaks",
		value:  func(p model.Preferences) string { return onOff(p.ExtendedBreaks) },
		toggle: func(p model.Preferences) model.Preferences { p.ExtendedBreaks = !p.ExtendedBreaks; return p },
	},
	{
		label:  "Skip complex",
		value:  func(p model.Preferences) string { return onOff(p.SkipComplex) },
		toggle: func(p model.Preferences) model.Preferences { p.SkipComplex = !p.SkipComplex; return p },
	},
	{
		label:  "Exercise type",
		value:  func(p model.Preferences) string { return string(p.ExerciseType) },
		toggle: func(p model.Preferences) model.Preferences { p.ExerciseType = nextOf(exerciseCycle, p.ExerciseType); return p },
	},
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < len(settingItems)-1 {
			m.settingsCursor++
		}
	case " ", "enter":
		item := settingItems[m.settingsCursor]
		m.commitPreferences(item.toggle(m.Prefs), fmt.Sprintf("%s: %s", item.label, item.value(item.toggle(m.Prefs))))
	case "+", "=":
		if m.settingsCursor == settingReminderTime {
			next := m.Prefs
			next.ReminderTime = shiftClock(next.ReminderTime, 15)
			m.commitPreferences(next, "reminder time: "+next.ReminderTime)
		}
	case "-":
		if m.settingsCursor == settingReminderTime {
			next := m.Prefs
			next.ReminderTime = shiftClock(next.ReminderTime, -15)
			m.commitPreferences(next, "reminder time: "+next.ReminderTime)
		}
	}
	return m, nil
}

// commitPreferences runs setPreferences and reports the result on the status bar.
func (m *Model) commitPreferences(next model.Preferences, summary string) {
	if err := m.setPreferences(next); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: summary}
}

func (m Model) renderSettingsView() string {
	rows := make([]views.SettingRow, 0, len(settingItems))
	for _, item := range settingItems {
		rows = append(rows, views.SettingRow{Label: item.label, Value: item.value(m.Prefs)})
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Rows:     rows,
		Cursor:   m.settingsCursor,
		Reminder: m.reminderSummary(),
	})
}

// shiftClock moves an "HH:MM" value by delta minutes, wrapping at midnight.
func shiftClock(hhmm string, delta int) string {
	h, mm, err := model.ParseClock(hhmm)
	if err != nil {
		return model.DefaultPreferences().ReminderTime
	}
	total := ((h*60+mm+delta)%(24*60) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func nextOf[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
