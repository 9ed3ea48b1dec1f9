// Package session binds one checklist to its outputs and turns parsed
// commands into checklist mutations. The TUI and the CLI both drive a
// checklist through a Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/prchecklist/internal/checklist"
	"github.com/sandeepkv93/prchecklist/internal/commands"
	"github.com/sandeepkv93/prchecklist/internal/model"
	"github.com/sandeepkv93/prchecklist/internal/notify"
	"github.com/sandeepkv93/prchecklist/internal/report"
)

const (
	NotificationTitle = "PR checklist"
	CopiedMessage     = "PR checklist copied to clipboard"
)

type Options struct {
	Sink     report.Sink
	Notifier notify.DesktopNotifier
	Report   report.Options
	Logger   *zap.Logger
}

type Session struct {
	ID        string
	Checklist *checklist.Model

	sink     report.Sink
	notifier notify.DesktopNotifier
	report   report.Options
	logger   *zap.Logger
	now      func() time.Time
}

func New(m *checklist.Model, opts Options) *Session {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NoopDesktopNotifier{}
	}
	return &Session{
		ID:        id,
		Checklist: m,
		sink:      opts.Sink,
		notifier:  notifier,
		report:    opts.Report,
		logger:    logger.With(zap.String("session", id)),
		now:       time.Now,
	}
}

// Run parses input and applies it to the checklist.
func (s *Session) Run(ctx context.Context, input string) (commands.Result, error) {
	cmd, err := commands.Parse(input)
	if err != nil {
		return commands.Result{}, err
	}
	res, err := commands.Execute(cmd, s.Handlers(ctx))
	if err != nil {
		s.logger.Info("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
		return res, err
	}
	s.logger.Debug("command applied", zap.String("command", string(cmd.Type)))
	return res, nil
}

func (s *Session) Handlers(ctx context.Context) commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			item, err := s.Checklist.AddItem(ctx, a.Title)
			if err != nil {
				if errors.Is(err, model.ErrValidation) {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "chore title is required"}
				}
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added chore %d: %s", item.Index, item.Title)}, nil
		},
		Done: func(a commands.IndexArgs) (commands.Result, error) {
			return s.setStatus(ctx, a.Index, true)
		},
		Undo: func(a commands.IndexArgs) (commands.Result, error) {
			return s.setStatus(ctx, a.Index, false)
		},
		Exclude: func(a commands.IndexArgs) (commands.Result, error) {
			if _, ok := s.Checklist.Item(a.Index); !ok {
				return commands.Result{}, unknownChore(a.Index)
			}
			if err := s.Checklist.ToggleExclusion(ctx, a.Index); err != nil {
				return commands.Result{}, err
			}
			if s.Checklist.IsExcluded(a.Index) {
				return commands.Result{Message: fmt.Sprintf("chore %d marked not applicable", a.Index)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("chore %d is applicable again", a.Index)}, nil
		},
		All: func() (commands.Result, error) {
			return s.selectAll(ctx, true)
		},
		None: func() (commands.Result, error) {
			return s.selectAll(ctx, false)
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			return commands.Result{Message: s.Format(a.Partition)}, nil
		},
		Report: func() (commands.Result, error) {
			if _, err := s.GenerateReport(ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: CopiedMessage}, nil
		},
	}
}

// GenerateReport renders the checklist, hands it to the sink and fires the
// confirmation notification. The text is returned even when the sink fails.
func (s *Session) GenerateReport(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := report.Generate(s.Checklist, s.report)
	if s.sink != nil {
		if err := s.sink.Write(text); err != nil {
			s.logger.Warn("report sink failed", zap.Error(err))
			return text, err
		}
	}
	n := notify.Notification{
		Title: NotificationTitle,
		Body:  CopiedMessage,
		Level: notify.LevelFromError(false),
		At:    s.now().UTC(),
	}
	if err := s.notifier.Send(n); err != nil {
		s.logger.Debug("desktop notification failed", zap.Error(err))
	}
	s.logger.Info("report generated",
		zap.Int("items", len(s.Checklist.Items())),
		zap.Int("excluded", len(s.Checklist.Excluded())),
	)
	return text, nil
}

// Report renders the checklist without touching the sink.
func (s *Session) Report() string {
	return report.Generate(s.Checklist, s.report)
}

// Format lists the items of partition ("all", "pending", "done" or "na").
func (s *Session) Format(partition string) string {
	var items []model.ChoreItem
	switch partition {
	case "pending":
		items = s.Checklist.View(model.StatusPending)
	case "done":
		items = s.Checklist.View(model.StatusDone)
	case "na":
		items = s.Checklist.View(model.StatusNotApplicable)
	default:
		items = s.Checklist.Items()
	}
	if len(items) == 0 {
		return "(no chores)"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s %d. %s", s.Marker(item), item.Index, item.Title))
	}
	return strings.Join(lines, "\n")
}

// Marker is the checkbox shown for item.
func (s *Session) Marker(item model.ChoreItem) string {
	if s.Checklist.IsExcluded(item.Index) {
		return "[-]"
	}
	if item.Done() {
		return "[x]"
	}
	return "[ ]"
}

func (s *Session) setStatus(ctx context.Context, index int, done bool) (commands.Result, error) {
	if _, ok := s.Checklist.Item(index); !ok {
		return commands.Result{}, unknownChore(index)
	}
	if err := s.Checklist.SetStatus(ctx, index, done); err != nil {
		return commands.Result{}, err
	}
	if s.Checklist.IsExcluded(index) {
		return commands.Result{Message: fmt.Sprintf("chore %d updated (still not applicable)", index)}, nil
	}
	if done {
		return commands.Result{Message: fmt.Sprintf("chore %d done", index)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("chore %d pending", index)}, nil
}

func (s *Session) selectAll(ctx context.Context, done bool) (commands.Result, error) {
	if !s.Checklist.CanSelectAll() {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeNotPermitted, Message: "bulk select is disabled while chores are marked not applicable"}
	}
	if err := s.Checklist.SelectAll(ctx, done); err != nil {
		return commands.Result{}, err
	}
	if done {
		return commands.Result{Message: "all chores done"}, nil
	}
	return commands.Result{Message: "all chores pending"}, nil
}

func unknownChore(index int) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no chore with index %d", index)}
}
