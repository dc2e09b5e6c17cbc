package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stride/internal/curriculum"
	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/notify"
	"github.com/sandeepkv93/stride/internal/views"
)

// plan is what today's session looks like under the current preferences.
type plan struct {
	week    model.WeekDefinition
	variant model.VariantKey
	session model.AdaptedSession
	date    time.Time
}

func (m Model) todayPlan() (plan, error) {
	wk, err := m.curriculum.Week(m.tracker.CurrentWeek())
	if err != nil {
		return plan{}, err
	}
	date := m.now()
	variant := curriculum.SelectVariant(wk, date)
	tpl, _ := wk.Session(variant)
	return plan{
		week:    wk,
		variant: variant,
		session: curriculum.Adapt(tpl, m.Prefs),
		date:    date,
	}, nil
}

func (p plan) key() string {
	return model.CompletionRecord{Week: p.week.Number, Variant: p.variant, Date: p.date}.Key()
}

func (m Model) handleTodayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.switchView(ViewSession)
	case "h", "left":
		m.changeWeek(-1)
	case "l", "right":
		m.changeWeek(1)
	}
	return m, nil
}

func (m *Model) changeWeek(delta int) {
	var (
		week int
		err  error
	)
	if delta < 0 {
		week, err = m.tracker.PrevWeek()
	} else {
		week, err = m.tracker.NextWeek()
	}
	m.cues.Emit(notify.CueNavigation)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("week %d (not saved: %v)", week, err), IsError: true}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("week %d", week)}
	}
	m.followWeek()
}

func (m *Model) setWeek(n int) error {
	week, err := m.tracker.SetWeek(n)
	m.cues.Emit(notify.CueNavigation)
	m.followWeek()
	if err != nil {
		return fmt.Errorf("week %d not saved: %w", week, err)
	}
	return nil
}

func (m Model) renderTodayView() string {
	p, err := m.todayPlan()
	if err != nil {
		return "today:\n" + err.Error()
	}
	th := views.NewTheme(m.Prefs.Theme, m.Prefs.HighContrast)

	rows := make([]views.ActivityRow, 0, len(p.session.Activities))
	anyMatch := false
	for _, a := range p.session.Activities {
		match := curriculum.MatchesExercise(a, m.Prefs.ExerciseType)
		anyMatch = anyMatch || match
		rows = append(rows, views.ActivityRow{
			Name:        a.Name,
			Type:        string(a.Type),
			Duration:    a.Duration.String(),
			Description: a.Description,
			Match:       match,
		})
	}
	exercise := ""
	if anyMatch {
		exercise = string(m.Prefs.ExerciseType)
	}

	focus := ""
	if p.week.Focus != "" {
		focus = views.RenderMarkdown("**Focus:** "+p.week.Focus, th.Markdown)
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Week:           p.week.Number,
		Title:          p.week.Title,
		Phase:          string(p.week.Phase),
		FocusView:      focus,
		Variant:        string(p.variant),
		Duration:       p.session.Duration.String(),
		RestDay:        curriculum.IsRestDay(p.date),
		CompletedToday: m.tracker.IsCompleted(p.key()),
		ExerciseType:   exercise,
		Activities:     rows,
	})
}
