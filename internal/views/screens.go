package views

import (
	"fmt"
	"strings"
)

type ChoreRowData struct {
	Index  int
	Title  string
	Marker string
	Custom bool
}

type ChecklistPanelData struct {
	Rows         []ChoreRowData
	Cursor       int
	Loading      bool
	LoadError    string
	CanSelectAll bool
	AddView      string
	Adding       bool
}

type HelpPanelData struct {
	CurrentPane string
	Bindings    []string
	HelpView    string
}

type ReportPanelData struct {
	Visible      bool
	ViewportView string
}

func RenderChecklistPanel(data ChecklistPanelData) string {
	var b strings.Builder
	if data.Loading {
		return "loading chores..."
	}
	if data.LoadError != "" {
		b.WriteString("error: " + data.LoadError + "\n")
		b.WriteString("(no chores)")
		return b.String()
	}

	b.WriteString("actions: [space]done [x]n/a [a]add [g]generate")
	if data.CanSelectAll {
		b.WriteString(" [A]all [U]none")
	}
	b.WriteString("\n")

	if len(data.Rows) == 0 {
		b.WriteString("\n  (none)\n")
	} else {
		b.WriteString("\n")
		for i, row := range data.Rows {
			cursor := " "
			if i == data.Cursor {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s %d. %s", cursor, row.Marker, row.Index, row.Title))
			if row.Custom {
				b.WriteString(" (custom)")
			}
			b.WriteString("\n")
		}
	}
	if data.Adding {
		b.WriteString("\n" + data.AddView + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderReportPanel(data ReportPanelData) string {
	if !data.Visible {
		return ""
	}
	return "report:\n" + data.ViewportView
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
	return fmt.Sprintf("help:\n%s pane:\n%s\n%s",
		strings.ToLower(data.CurrentPane),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
