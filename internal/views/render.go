package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is the whole popup frame: a page header, the pane tabs with their
// counts, the checklist body and an optional side panel.
type AppData struct {
	Page          string
	Tabs          []TabData
	Body          string
	Side          string
	StatusLine    string
	StatusIsError bool
	Notification  string
	Footer        string
}

type TabData struct {
	Title  string
	Count  int
	Active bool
}

const paneWidth = 58

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pageStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	lines := []string{
		titleStyle.Render("PR checklist") + " " + pageStyle.Render(data.Page),
	}
	if strip := RenderTabs(data.Tabs); strip != "" {
		lines = append(lines, strip)
	}

	body := panelStyle.Width(paneWidth).Render(data.Body)
	if strings.TrimSpace(data.Side) != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(paneWidth).Render(data.Side))
	}
	lines = append(lines, body)

	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, errorStyle.Render("error: "+data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderTabs draws one tab per visible pane, e.g. "Pending (3)".
func RenderTabs(tabs []TabData) string {
	if len(tabs) == 0 {
		return ""
	}
	out := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s (%d)", tab.Title, tab.Count)
		if tab.Active {
			out = append(out, activeTabStyle.Render(label))
			continue
		}
		out = append(out, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// RenderMarkdown renders md for the terminal, falling back to the raw text.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
