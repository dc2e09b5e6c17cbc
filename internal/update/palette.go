package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/commands"
	"github.com/sandeepkv93/stride/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.Focus()
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active", IsError: false}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Week: func(a commands.WeekArgs) (commands.Result, error) {
			if err := m.setWeek(a.Number); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("week %d", a.Number)}, nil
		},
		Next: func() (commands.Result, error) {
			m.changeWeek(1)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Prev: func() (commands.Result, error) {
			m.changeWeek(-1)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			next := m.Prefs
			next.ReminderTime = a.Time
			if err := m.setPreferences(next); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "reminder time " + a.Time}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			next, err := applyToggle(m.Prefs, a)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.setPreferences(next); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s %s", strings.ReplaceAll(a.Name, "_", " "), onOff(a.On))}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			next := m.Prefs
			next.Theme = a.Theme
			if err := m.setPreferences(next); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "theme " + string(a.Theme)}, nil
		},
		Exercise: func(a commands.ExerciseArgs) (commands.Result, error) {
			next := m.Prefs
			next.ExerciseType = a.Type
			if err := m.setPreferences(next); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "exercise type " + string(a.Type)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			switch a.Subject {
			case commands.ShowSession:
				m.switchView(ViewSession)
			case commands.ShowProgress:
				m.switchView(ViewProgress)
			case commands.ShowSettings:
				m.switchView(ViewSettings)
			default:
				m.switchView(ViewToday)
			}
			return commands.Result{Message: "show " + a.Subject}, nil
		},
		Reset: func(commands.ResetArgs) (commands.Result, error) {
			if err := m.tracker.Reset(); err != nil {
				return commands.Result{}, err
			}
			m.switchView(ViewToday)
			return commands.Result{Message: "progress reset to week 1"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.closePalette()
	return m
}

func applyToggle(p model.Preferences, a commands.ToggleArgs) (model.Preferences, error) {
	switch a.Name {
	case commands.ToggleNotifications:
		p.Notifications = a.On
	case commands.ToggleSound:
		p.SoundEnabled = a.On
	case commands.ToggleHighContrast:
		p.HighContrast = a.On
	case commands.ToggleReduceMotion:
		p.ReduceMotion = a.On
	case commands.ToggleExtendedBreaks:
		p.ExtendedBreaks = a.On
	case commands.ToggleSkipComplex:
		p.SkipComplex = a.On
	default:
		return p, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown preference: " + a.Name}
	}
	return p, nil
}
