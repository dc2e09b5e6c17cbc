package views

import (
	"fmt"
	"strings"
)

type ActivityRow struct {
	Name        string
	Type        string
	Duration    string
	Description string
	Match       bool
}

type TodayPanelData struct {
	Week           int
	Title          string
	Phase          string
	FocusView      string
	Variant        string
	Duration       string
	RestDay        bool
	CompletedToday bool
	ExerciseType   string
	Activities     []ActivityRow
}

type SessionPanelData struct {
	Week         int
	Variant      string
	Phase        string
	Index        int
	Len          int
	ActivityName string
	ActivityType string
	Description  string
	Timer        string
	ProgressView string
	ProgressPct  int
	Upcoming     []string
	Outcome      string
}

type WeekProgressRow struct {
	Number    int
	Title     string
	Phase     string
	Completed int
	Current   bool
}

type ProgressPanelData struct {
	CurrentWeek   int
	Weeks         []WeekProgressRow
	Total         int
	Percent       int
	MilestoneView string
}

type SettingRow struct {
	Label string
	Value string
}

type SettingsPanelData struct {
	Rows     []SettingRow
	Cursor   int
	Reminder string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("week %d: %s (%s)\n", data.Week, data.Title, data.Phase))
	if data.RestDay {
		b.WriteString("actions: [h/l]prev/next week\n")
		b.WriteString("\nRest day. Recovery is part of the program; no session today.\n")
		if data.FocusView != "" {
			b.WriteString("\n" + data.FocusView + "\n")
		}
		return strings.TrimSpace(b.String())
	}
	b.WriteString("actions: [enter]start session [h/l]prev/next week\n")
	if data.FocusView != "" {
		b.WriteString("\n" + data.FocusView + "\n")
	}
	b.WriteString(fmt.Sprintf("\nsession: %s (%s min)", data.Variant, data.Duration))
	if data.CompletedToday {
		b.WriteString(" [done today]")
	}
	b.WriteString("\n")
	if len(data.Activities) == 0 {
		b.WriteString("  nothing to do today\n")
		return strings.TrimSpace(b.String())
	}
	for i, a := range data.Activities {
		marker := " "
		if a.Match {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s %d. [%s] %s (%s min)\n", marker, i+1, a.Type, a.Name, a.Duration))
		if a.Description != "" {
			b.WriteString("     " + a.Description + "\n")
		}
	}
	if data.ExerciseType != "" {
		b.WriteString(fmt.Sprintf("\n* matches your exercise type: %s", data.ExerciseType))
	}
	return strings.TrimSpace(b.String())
}

func RenderSessionPanel(data SessionPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("session: week %d | %s\n", data.Week, data.Variant))
	if data.Len == 0 {
		b.WriteString("nothing to do today\n")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	if data.Outcome != "" {
		b.WriteString("\n" + data.Outcome + "\n")
		b.WriteString("actions: [r]restart [esc]back to today")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("activity %d/%d: %s [%s]\n", data.Index+1, data.Len, data.ActivityName, data.ActivityType))
	if data.Description != "" {
		b.WriteString(data.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if len(data.Upcoming) > 0 {
		b.WriteString("up next:\n")
		for _, name := range data.Upcoming {
			b.WriteString("- " + name + "\n")
		}
	}
	b.WriteString("actions: [space]start/pause [s]skip [r]restart [esc]back")
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("progress: %d sessions completed | %d%% of program weeks active\n", data.Total, data.Percent))
	b.WriteString("actions: [h/l]prev/next week\n\n")
	for _, w := range data.Weeks {
		cursor := " "
		if w.Current {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s week %2d %-12s %-28s %d\n", cursor, w.Number, w.Phase, truncate(w.Title, 28), w.Completed))
	}
	if data.MilestoneView != "" {
		b.WriteString("\n" + data.MilestoneView)
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]move [space]toggle [+/-]reminder time\n\n")
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-18s %s\n", cursor, row.Label, row.Value))
	}
	if data.Reminder != "" {
		b.WriteString("\nreminder: " + data.Reminder)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
