package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/scheduler"
)

const reminderLogSize = 20

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m *Model) onReminder(ev scheduler.ReminderEvent) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderLogSize {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogSize:]
	}
	text := "time for today's session"
	if ev.Kind == scheduler.KindTest {
		text = "reminders are on, test notification sent"
	}
	if ev.Err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("%s (desktop notification failed: %v)", text, ev.Err), IsError: true}
	} else {
		m.Status = StatusBar{Text: text}
	}
	m.notify("Reminder", text, levelFromError(ev.Err != nil))
}

func (m Model) reminderSummary() string {
	if !m.Prefs.Notifications {
		return "off"
	}
	if m.reminder == nil {
		return "unavailable"
	}
	next, armed := m.reminder.Pending()
	if !armed {
		return "not armed (notifications unavailable)"
	}
	return "next " + next.Format("Mon Jan 2 15:04")
}
