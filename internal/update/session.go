package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/curriculum"
	"github.com/sandeepkv93/stride/internal/notify"
	"github.com/sandeepkv93/stride/internal/session"
	"github.com/sandeepkv93/stride/internal/views"
)

// enterSession builds a fresh machine for today's plan.
func (m *Model) enterSession() {
	m.tickSeq++
	m.outcome = ""
	p, err := m.todayPlan()
	if err != nil {
		m.machine = nil
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if curriculum.IsRestDay(p.date) {
		m.machine = nil
		m.Status = StatusBar{Text: "rest day, no session today"}
		return
	}
	m.machine = session.New(p.week.Number, p.variant, p.session, m.tracker, m.now)
	m.log.Debug("session opened", "run_id", m.machine.RunID(), "week", p.week.Number, "variant", string(p.variant), "activities", m.machine.Len())
	if m.machine.Len() == 0 {
		m.Status = StatusBar{Text: "nothing to do today"}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s ready, press space to start", p.variant)}
}

// followWeek rebuilds an open session after the program week changed, so a
// countdown never carries over into another week.
func (m *Model) followWeek() {
	if m.machine == nil || m.machine.Week() == m.tracker.CurrentWeek() {
		return
	}
	m.log.Debug("session week changed", "run_id", m.machine.RunID(), "from", m.machine.Week(), "to", m.tracker.CurrentWeek())
	status := m.Status
	m.enterSession()
	if m.machine != nil {
		m.Status = status
	}
}

// leaveSession drops the machine; in-flight ticks become stale.
func (m *Model) leaveSession() {
	if m.machine != nil {
		m.log.Debug("session closed", "run_id", m.machine.RunID(), "phase", string(m.machine.Phase()))
	}
	m.machine = nil
	m.tickSeq++
	m.outcome = ""
}

func (m Model) handleSessionKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.switchView(ViewToday)
		return m, nil
	case "r":
		m.enterSession()
		return m, nil
	}
	if m.machine == nil {
		return m, nil
	}

	switch msg.String() {
	case " ":
		if m.machine.Phase() == session.PhaseRunning {
			m.machine.Pause()
			m.tickSeq++
			m.Status = StatusBar{Text: "paused"}
			return m, nil
		}
		fresh := m.machine.Phase() == session.PhaseIdle && m.machine.Index() == 0 && m.machine.Remaining() == m.machine.Total()
		if !m.machine.Start() {
			return m, nil
		}
		if fresh {
			m.cues.Emit(notify.CueSessionStart)
		}
		m.tickSeq++
		m.Status = StatusBar{Text: "running"}
		return m, sessionTickCmd(m.machine.RunID(), m.tickSeq)
	case "s":
		m.tickSeq++
		m.handleSessionEvent(m.machine.Skip())
	}
	return m, nil
}

func (m Model) onSessionTick(msg SessionTickMsg) (tea.Model, tea.Cmd) {
	if m.machine == nil || msg.RunID != m.machine.RunID() || msg.Seq != m.tickSeq {
		return m, nil
	}
	m.handleSessionEvent(m.machine.Tick())
	if m.machine.Phase() == session.PhaseRunning {
		return m, sessionTickCmd(m.machine.RunID(), m.tickSeq)
	}
	return m, nil
}

func (m *Model) handleSessionEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventActivityAdvanced:
		m.cues.Emit(notify.CueActivityAdvance)
		if act, ok := m.machine.Activity(); ok {
			m.Status = StatusBar{Text: fmt.Sprintf("next: %s, press space to start", act.Name)}
		}
	case session.EventSessionComplete:
		m.cues.Emit(notify.CueSessionComplete)
		switch {
		case ev.Err != nil:
			m.outcome = "session complete, but progress could not be saved"
			m.LastError = ev.Err
			m.log.Error("completion not saved", "run_id", m.machine.RunID(), "error", ev.Err)
			m.Status = StatusBar{Text: ev.Err.Error(), IsError: true}
		case ev.Recorded:
			m.outcome = "session complete, saved to your progress"
			m.Status = StatusBar{Text: "session complete"}
		default:
			m.outcome = "session complete, already credited for today"
			m.Status = StatusBar{Text: "session complete"}
		}
		m.notify("Session", m.outcome, levelFromError(ev.Err != nil))
	}
}

func sessionTickCmd(runID string, seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return SessionTickMsg{RunID: runID, Seq: seq} })
}

func (m Model) renderSessionView() string {
	if m.machine == nil {
		if curriculum.IsRestDay(m.now()) {
			return "session:\nRest day. Recovery is part of the program; no session today."
		}
		return "session:\n(no session, press enter on Today)"
	}
	mc := m.machine
	data := views.SessionPanelData{
		Week:    mc.Week(),
		Variant: string(mc.Variant()),
		Phase:   string(mc.Phase()),
		Index:   mc.Index(),
		Len:     mc.Len(),
		Outcome: m.outcome,
	}
	if act, ok := mc.Activity(); ok {
		data.ActivityName = act.Name
		data.ActivityType = string(act.Type)
		data.Description = act.Description
	}
	pct := 0.0
	if mc.Total() > 0 {
		pct = float64(mc.Total()-mc.Remaining()) / float64(mc.Total())
	}
	data.Timer = formatDuration(mc.Remaining())
	data.ProgressPct = int(pct * 100)
	if m.Prefs.ReduceMotion {
		data.ProgressView = progressBar(pct, 30)
	} else {
		data.ProgressView = m.sessionProgress.ViewAs(pct)
	}
	acts := mc.Session().Activities
	for i := mc.Index() + 1; i < len(acts); i++ {
		data.Upcoming = append(data.Upcoming, acts[i].Name)
	}
	return views.RenderSessionPanel(data)
}
