package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/notify"
	"github.com/sandeepkv93/stride/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.reminder != nil {
		return waitForReminderCmd(m.reminder.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.openPalette()
			return m, nil
		case m.Keys.Today:
			m.switchView(ViewToday)
			return m, nil
		case m.Keys.Session:
			m.switchView(ViewSession)
			return m, nil
		case m.Keys.Progress:
			m.switchView(ViewProgress)
			return m, nil
		case m.Keys.Settings:
			m.switchView(ViewSettings)
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.leaveSession()
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed)
		case ViewSession:
			return m.handleSessionKey(typed)
		case ViewProgress:
			return m.handleProgressKey(typed)
		case ViewSettings:
			return m.handleSettingsKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.log.Error("app error", "error", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SessionTickMsg:
		return m.onSessionTick(typed)
	case ReminderDueMsg:
		m.onReminder(typed.Event)
		if m.reminder != nil {
			return m, waitForReminderCmd(m.reminder.C())
		}
		return m, nil
	case PreferencesChangedMsg:
		m.reloadPreferences()
		return m, nil
	}

	return m, nil
}

// switchView changes screens. Leaving Session tears the machine down;
// entering it builds a fresh one.
func (m *Model) switchView(v View) {
	if v == m.CurrentView {
		return
	}
	if m.CurrentView == ViewSession {
		m.leaveSession()
	}
	m.CurrentView = v
	if v == ViewSession {
		m.enterSession()
	}
	m.cues.Emit(notify.CueNavigation)
}

func (m Model) handleProgressKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.changeWeek(-1)
	case "l", "right":
		m.changeWeek(1)
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderTodayView()
	case ViewSession:
		leftPane = m.renderSessionView()
	case ViewProgress:
		leftPane = m.renderProgressView()
	case ViewSettings:
		leftPane = m.renderSettingsView()
	}
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		"reminder: " + m.reminderSummary(),
		m.renderHelpIfVisible(),
	}, "\n"))

	notificationView := ""
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notificationView = fmt.Sprintf("last-reminder: %s @ %s", last.ID, last.FiredAt.Format("15:04:05"))
	}
	notificationView = strings.TrimSpace(strings.Join([]string{
		notificationView,
		strings.TrimSpace(m.renderNotificationsView()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Theme:        views.NewTheme(m.Prefs.Theme, m.Prefs.HighContrast),
		Header:       fmt.Sprintf("stride | week %d/%d | view: %s", m.tracker.CurrentWeek(), model.LastWeek, m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		IsError:      m.Status.IsError,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s today | %s session | %s progress | %s settings | / cmd | %s help | %s quit", m.Keys.Today, m.Keys.Session, m.Keys.Progress, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewSession, ViewProgress, ViewSettings:
		return true
	default:
		return false
	}
}
