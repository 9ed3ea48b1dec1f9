package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/prchecklist/internal/model"
	"github.com/sandeepkv93/prchecklist/internal/session"
	"github.com/sandeepkv93/prchecklist/internal/views"
)

func (m Model) handleChecklistKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Pending:
		m.switchPane(PanePending)
	case m.Keys.Done:
		m.switchPane(PaneDone)
	case m.Keys.NotApplicable:
		m.switchPane(PaneNotApplicable)
	case "tab":
		m.switchPane(m.nextPane())
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.currentRows())-1 {
			m.Cursor++
		}
	case " ", "space", "enter":
		if item, ok := m.selectedItem(); ok {
			m.toggleDone(item.Index)
		}
	case "x":
		if item, ok := m.selectedItem(); ok {
			m.toggleExclusion(item.Index)
		}
	case "a", "i":
		m.Adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.Status = StatusBar{Text: "add chore"}
	case "A":
		m.selectAll(true)
	case "U":
		m.selectAll(false)
	case "g":
		m.generateReport()
	case "p":
		m.ReportVisible = !m.ReportVisible
		if m.ReportVisible {
			m.refreshReportPreview()
		}
	}
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
		return m
	case "enter":
		title := m.addInput.Value()
		m.Adding = false
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.addChore(title)
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.addInput.SetValue(m.addInput.Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	return m
}

func (m *Model) switchPane(p Pane) {
	if !isKnownPane(p) {
		return
	}
	if p == PaneNotApplicable && (m.Session == nil || !m.Session.Checklist.NotApplicableVisible()) {
		return
	}
	m.CurrentPane = p
	m.Cursor = 0
}

func (m Model) nextPane() Pane {
	switch m.CurrentPane {
	case PanePending:
		return PaneDone
	case PaneDone:
		if m.Session != nil && m.Session.Checklist.NotApplicableVisible() {
			return PaneNotApplicable
		}
		return PanePending
	default:
		return PanePending
	}
}

func (m Model) currentRows() []model.ChoreItem {
	if m.Session == nil {
		return nil
	}
	return m.Session.Checklist.View(m.CurrentPane)
}

func (m Model) selectedItem() (model.ChoreItem, bool) {
	rows := m.currentRows()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return model.ChoreItem{}, false
	}
	return rows[m.Cursor], true
}

// clampCursor keeps the cursor on a row and leaves the not-applicable pane
// once it has emptied.
func (m *Model) clampCursor() {
	if m.CurrentPane == PaneNotApplicable && m.Session != nil && !m.Session.Checklist.NotApplicableVisible() {
		m.CurrentPane = PanePending
	}
	rows := m.currentRows()
	if m.Cursor >= len(rows) {
		m.Cursor = len(rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) addChore(title string) {
	if m.Session == nil {
		return
	}
	item, err := m.Session.Checklist.AddItem(m.ctx, title)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			// blank titles are dropped without an error
			m.Status = StatusBar{}
			return
		}
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added chore %d", item.Index)}
	m.afterMutation()
}

func (m *Model) toggleDone(index int) {
	if m.Session == nil {
		return
	}
	item, ok := m.Session.Checklist.Item(index)
	if !ok {
		return
	}
	if err := m.Session.Checklist.SetStatus(m.ctx, index, !item.Done()); err != nil {
		m.fail(err)
	}
	m.afterMutation()
}

func (m *Model) toggleExclusion(index int) {
	if m.Session == nil {
		return
	}
	if err := m.Session.Checklist.ToggleExclusion(m.ctx, index); err != nil {
		m.fail(err)
	}
	m.afterMutation()
}

func (m *Model) selectAll(done bool) {
	if m.Session == nil {
		return
	}
	if !m.Session.Checklist.CanSelectAll() {
		m.Status = StatusBar{Text: "bulk select is disabled while chores are marked not applicable", IsError: true}
		return
	}
	if err := m.Session.Checklist.SelectAll(m.ctx, done); err != nil {
		m.fail(err)
	}
	m.afterMutation()
}

func (m *Model) generateReport() {
	if m.Session == nil {
		return
	}
	text, err := m.Session.GenerateReport(m.ctx)
	m.LastReport = text
	m.ReportVisible = true
	m.reportView.SetContent(views.RenderMarkdown(text))
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: session.CopiedMessage}
	m.notify("Report", m.Status.Text, "info")
}

func (m *Model) refreshReportPreview() {
	if m.Session != nil {
		m.LastReport = m.Session.Report()
	}
	m.reportView.SetContent(views.RenderMarkdown(m.LastReport))
}

func (m *Model) afterMutation() {
	m.clampCursor()
	if m.ReportVisible {
		m.refreshReportPreview()
	}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Warn("checklist action failed", zap.Error(err))
	m.notify("Error", err.Error(), "error")
}

// tabs lists the visible panes; Not applicable only while something is
// excluded.
func (m Model) tabs() []views.TabData {
	if m.Session == nil {
		return nil
	}
	cl := m.Session.Checklist
	panes := []Pane{PanePending, PaneDone}
	if cl.NotApplicableVisible() {
		panes = append(panes, PaneNotApplicable)
	}
	out := make([]views.TabData, 0, len(panes))
	for _, p := range panes {
		out = append(out, views.TabData{
			Title:  paneTitle(p),
			Count:  len(cl.View(p)),
			Active: p == m.CurrentPane,
		})
	}
	return out
}

func (m Model) renderChecklistView() string {
	data := views.ChecklistPanelData{
		Loading: m.Loading,
		Cursor:  m.Cursor,
		Adding:  m.Adding,
		AddView: m.addInput.View(),
	}
	if m.LoadErr != nil {
		data.LoadError = m.LoadErr.Error()
	}
	if m.Session == nil {
		return views.RenderChecklistPanel(data)
	}
	data.CanSelectAll = m.Session.Checklist.CanSelectAll()
	for _, item := range m.currentRows() {
		data.Rows = append(data.Rows, views.ChoreRowData{
			Index:  item.Index,
			Title:  item.Title,
			Marker: m.Session.Marker(item),
			Custom: item.Custom,
		})
	}
	return views.RenderChecklistPanel(data)
}
