package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/stride/internal/model"
)

type AppData struct {
	Theme        Theme
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	IsError      bool
	Footer       string
	Notification string
}

// Theme holds the lipgloss styles for one preference combination.
type Theme struct {
	Name     model.Theme
	Header   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Footer   lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Markdown string
}

func NewTheme(t model.Theme, highContrast bool) Theme {
	th := Theme{
		Name:     t,
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Markdown: "dark",
	}
	if t == model.ThemeLight {
		th.Header = th.Header.Foreground(lipgloss.Color("4"))
		th.Status = th.Status.Foreground(lipgloss.Color("2"))
		th.Error = th.Error.Foreground(lipgloss.Color("1"))
		th.Accent = th.Accent.Foreground(lipgloss.Color("5"))
		th.Footer = th.Footer.Foreground(lipgloss.Color("240"))
		th.Muted = th.Muted.Foreground(lipgloss.Color("240"))
		th.Markdown = "light"
	}
	if highContrast {
		fg := lipgloss.Color("15")
		if t == model.ThemeLight {
			fg = lipgloss.Color("0")
		}
		th.Header = th.Header.Foreground(fg).Underline(true)
		th.Status = th.Status.Foreground(fg).Bold(true)
		th.Error = th.Error.Foreground(lipgloss.Color("9")).Bold(true).Underline(true)
		th.Panel = th.Panel.Border(lipgloss.ThickBorder())
		th.Footer = th.Footer.Foreground(fg)
		th.Accent = th.Accent.Foreground(lipgloss.Color("11")).Bold(true)
		th.Muted = th.Muted.Foreground(fg)
	}
	return th
}

func RenderApp(data AppData) string {
	th := data.Theme
	left := th.Panel.Width(58).Render(data.LeftPane)
	right := th.Panel.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := th.Status.Render(data.StatusLine)
	if data.IsError {
		status = th.Error.Render(data.StatusLine)
	}

	lines := []string{
		th.Header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, th.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, th.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
