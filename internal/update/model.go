package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/prchecklist/internal/checklist"
	"github.com/sandeepkv93/prchecklist/internal/model"
	"github.com/sandeepkv93/prchecklist/internal/notify"
	"github.com/sandeepkv93/prchecklist/internal/session"
)

// Pane is one of the three checklist views.
type Pane = model.Status

const (
	PanePending       Pane = model.StatusPending
	PaneDone          Pane = model.StatusDone
	PaneNotApplicable Pane = model.StatusNotApplicable
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Pending       string
	Done          string
	NotApplicable string
	Help          string
	Quit          string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Opener builds the checklist. It runs once, off the update loop.
type Opener func(ctx context.Context) (*checklist.Model, error)

type Options struct {
	Page     string
	Open     Opener
	Session  session.Options
	Notifier notify.DesktopNotifier
	// DesktopEnabled forwards status notifications to Notifier.
	DesktopEnabled bool
	Logger         *zap.Logger
}

type Model struct {
	Page          string
	Session       *session.Session
	CurrentPane   Pane
	Cursor        int
	Loading       bool
	LoadErr       error
	Adding        bool
	Palette       CommandPaletteState
	HelpVisible   bool
	ReportVisible bool
	LastReport    string
	Notifications []notify.Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx            context.Context
	open           Opener
	sessionOpts    session.Options
	notifier       notify.DesktopNotifier
	desktopEnabled bool
	logger         *zap.Logger

	addInput     textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	reportView   viewport.Model
}

// CatalogLoadedMsg carries the result of the startup fetch.
type CatalogLoadedMsg struct {
	Checklist *checklist.Model
	Err       error
}

type SwitchPaneMsg struct {
	Pane Pane
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AddChoreMsg struct {
	Title string
}

type ToggleDoneMsg struct {
	Index int
}

type ToggleExclusionMsg struct {
	Index int
}

type SelectAllMsg struct {
	Done bool
}

type GenerateReportMsg struct{}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NoopDesktopNotifier{}
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = logger
	}
	m := Model{
		Page:           opts.Page,
		CurrentPane:    PanePending,
		Loading:        opts.Open != nil,
		ctx:            context.Background(),
		open:           opts.Open,
		sessionOpts:    opts.Session,
		notifier:       notifier,
		desktopEnabled: opts.DesktopEnabled,
		logger:         logger,
		Keys: GlobalKeyMap{
			Pending:       "1",
			Done:          "2",
			NotApplicable: "3",
			Help:          "?",
			Quit:          "q",
		},
	}
	m.initBubbleComponents()
	return m
}

// NewModelWithChecklist skips the startup fetch and drives cl directly.
func NewModelWithChecklist(cl *checklist.Model, opts Options) Model {
	opts.Open = nil
	m := NewModel(opts)
	m.attach(cl)
	return m
}

func (m *Model) attach(cl *checklist.Model) {
	m.Session = session.New(cl, m.sessionOpts)
	if m.Page == "" {
		m.Page = cl.Page()
	}
	m.Loading = false
	m.clampCursor()
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "new chore title"
	m.addInput.CharLimit = 256
	m.addInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.reportView = viewport.New(56, 14)
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	n := notify.Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.desktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
