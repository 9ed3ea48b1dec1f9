package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/prchecklist/internal/notify"
	"github.com/sandeepkv93/prchecklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.open == nil || !m.Loading {
		return nil
	}
	return openChecklistCmd(m.ctx, m.open)
}

func openChecklistCmd(ctx context.Context, open Opener) tea.Cmd {
	return func() tea.Msg {
		cl, err := open(ctx)
		return CatalogLoadedMsg{Checklist: cl, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.Adding {
			return m.handleAddKey(typed), nil
		}

		switch typed.String() {
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		}
		if m.Session == nil {
			// Mutations are only wired once the catalog has resolved.
			return m, nil
		}
		if typed.String() == "/" {
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		}
		return m.handleChecklistKey(typed), nil
	case CatalogLoadedMsg:
		m.Loading = false
		if typed.Err != nil {
			// No session: the page stays empty and mutation keys stay inert.
			m.LoadErr = typed.Err
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("checklist load failed", zap.String("page", m.Page), zap.Error(typed.Err))
			return m, nil
		}
		if typed.Checklist == nil {
			return m, nil
		}
		m.attach(typed.Checklist)
		m.Status = StatusBar{Text: fmt.Sprintf("%d chores loaded", len(m.Session.Checklist.Items()))}
		return m, nil
	case SwitchPaneMsg:
		m.switchPane(typed.Pane)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, notify.LevelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AddChoreMsg:
		m.addChore(typed.Title)
		return m, nil
	case ToggleDoneMsg:
		m.toggleDone(typed.Index)
		return m, nil
	case ToggleExclusionMsg:
		m.toggleExclusion(typed.Index)
		return m, nil
	case SelectAllMsg:
		m.selectAll(typed.Done)
		return m, nil
	case GenerateReportMsg:
		m.generateReport()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	side := strings.TrimSpace(strings.Join([]string{
		views.RenderReportPanel(views.ReportPanelData{Visible: m.ReportVisible, ViewportView: m.reportView.View()}),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	notification := ""
	if len(m.Notifications) > 0 {
		n := m.Notifications[len(m.Notifications)-1]
		notification = views.RenderNotification(n.Level, n.Body)
	}

	return views.RenderApp(views.AppData{
		Page:          m.Page,
		Tabs:          m.tabs(),
		Body:          m.renderChecklistView(),
		Side:          side,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Notification:  notification,
		Footer:        fmt.Sprintf("keys: %s pending | %s done | %s n/a | / cmd | %s help | %s quit", m.Keys.Pending, m.Keys.Done, m.Keys.NotApplicable, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func isKnownPane(p Pane) bool {
	switch p {
	case PanePending, PaneDone, PaneNotApplicable:
		return true
	default:
		return false
	}
}

func paneTitle(p Pane) string {
	switch p {
	case PaneDone:
		return "Completed"
	case PaneNotApplicable:
		return "Not applicable"
	default:
		return "Pending"
	}
}
