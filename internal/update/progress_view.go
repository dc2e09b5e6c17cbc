package update

import (
	"github.com/sandeepkv93/stride/internal/model"
	"github.com/sandeepkv93/stride/internal/views"
)

func (m Model) renderProgressView() string {
	current := m.tracker.CurrentWeek()
	data := views.ProgressPanelData{
		CurrentWeek: current,
		Total:       m.tracker.Total(),
	}
	active := 0
	for _, wk := range m.curriculum.Weeks() {
		done := m.tracker.CompletedInWeek(wk.Number)
		if done > 0 {
			active++
		}
		data.Weeks = append(data.Weeks, views.WeekProgressRow{
			Number:    wk.Number,
			Title:     wk.Title,
			Phase:     string(wk.Phase),
			Completed: done,
			Current:   wk.Number == current,
		})
		if wk.Number == current && wk.Milestone != "" {
			th := views.NewTheme(m.Prefs.Theme, m.Prefs.HighContrast)
			data.MilestoneView = views.RenderMarkdown("**Milestone:** "+wk.Milestone, th.Markdown)
		}
	}
	data.Percent = active * 100 / model.LastWeek
	return views.RenderProgressPanel(data)
}
