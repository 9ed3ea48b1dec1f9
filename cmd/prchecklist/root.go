package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/prchecklist/internal/catalog"
	"github.com/sandeepkv93/prchecklist/internal/checklist"
	"github.com/sandeepkv93/prchecklist/internal/config"
	"github.com/sandeepkv93/prchecklist/internal/logging"
	"github.com/sandeepkv93/prchecklist/internal/notify"
	"github.com/sandeepkv93/prchecklist/internal/report"
	"github.com/sandeepkv93/prchecklist/internal/session"
	"github.com/sandeepkv93/prchecklist/internal/storage"
	"github.com/sandeepkv93/prchecklist/internal/update"
)

// app carries the resolved configuration between cobra hooks.
type app struct {
	configPath string
	cfg        config.RuntimeConfig
	logger     *zap.Logger

	// set from flags; applied over file and env values when changed
	page      string
	source    string
	backend   string
	statePath string
	verbose   bool
	naStatus  bool
	desktop   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "prchecklist",
		Short: "Interactive PR review checklist",
		Long: `prchecklist turns a catalog of pull request review chores into a
checklist kept per page, and renders the answers as a markdown
"PR Checklist" ready to paste into the PR description.

Run without a subcommand to open the interactive checklist.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultFile, "YAML config file")
	flags.StringVarP(&a.page, "page", "p", "", "page URL the checklist belongs to")
	flags.StringVar(&a.source, "catalog", "", `chore catalog: "builtin", a file path or an http(s) URL`)
	flags.StringVar(&a.backend, "store", "", "state backend: sqlite, json or memory")
	flags.StringVar(&a.statePath, "state", "", "state file path")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&a.naStatus, "na-status", false, `add a Status column to the "Not applicable" table`)
	flags.BoolVar(&a.desktop, "notify", false, "send desktop notifications")

	root.AddCommand(showCmd(a))
	root.AddCommand(addCmd(a))
	root.AddCommand(indexCmd(a, "done", "Mark a chore done"))
	root.AddCommand(indexCmd(a, "undo", "Mark a chore pending"))
	root.AddCommand(indexCmd(a, "exclude", "Toggle a chore as not applicable"))
	root.AddCommand(bulkCmd(a, "all", "Mark every chore done"))
	root.AddCommand(bulkCmd(a, "none", "Mark every chore pending"))
	root.AddCommand(reportCmd(a))
	root.AddCommand(pagesCmd(a))
	return root
}

// resolve applies defaults < YAML file < environment < flags and builds the
// logger. The interactive UI only logs to a file.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath, config.DefaultRuntimeConfig())
	if err != nil {
		return err
	}
	cfg = config.RuntimeConfigFromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("page") {
		cfg.Page = a.page
	}
	if flags.Changed("catalog") {
		cfg.Catalog = a.source
	}
	if flags.Changed("store") {
		cfg.Store = a.backend
	}
	if flags.Changed("state") {
		cfg.StatePath = a.statePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("na-status") {
		cfg.NotApplicableStatus = a.naStatus
	}
	if flags.Changed("notify") {
		cfg.DesktopNotifications = a.desktop
	}
	a.cfg = cfg

	if cmd.Parent() == nil {
		a.logger, err = logging.ForUI(cfg.LogFile, cfg.Verbose)
	} else {
		a.logger, err = logging.ForCLI(cfg.LogFile, cfg.Verbose)
	}
	if err != nil {
		return err
	}
	a.logger.Debug("config resolved",
		zap.String("page", cfg.Page),
		zap.String("catalog", cfg.Catalog),
		zap.String("store", cfg.Store),
		zap.String("state_path", cfg.StatePath),
	)
	return nil
}

func (a *app) notifier() notify.DesktopNotifier {
	if a.cfg.DesktopNotifications {
		return notify.ExecDesktopNotifier{}
	}
	return notify.NoopDesktopNotifier{}
}

func (a *app) openStore() (storage.Store, *storage.StateStore, error) {
	store, err := storage.Open(a.cfg.Store, a.cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open state store: %w", err)
	}
	states, err := storage.NewStateStore(store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, states, nil
}

func (a *app) openChecklist(ctx context.Context, states checklist.StateRepository) (*checklist.Model, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.CatalogTimeout())
	defer cancel()
	loader := catalog.New(a.cfg.Catalog, a.cfg.CatalogTimeout())
	return checklist.Open(ctx, loader, states, a.cfg.Page, a.logger)
}

// openSession is the CLI path: a catalog or state failure aborts the command.
func (a *app) openSession(ctx context.Context, sink report.Sink) (*session.Session, func(), error) {
	store, states, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	cl, err := a.openChecklist(ctx, states)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	s := session.New(cl, session.Options{
		Sink:     sink,
		Notifier: a.notifier(),
		Report:   report.Options{NotApplicableStatus: a.cfg.NotApplicableStatus},
		Logger:   a.logger,
	})
	return s, func() { _ = store.Close() }, nil
}

func (a *app) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, states, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	model := update.NewModel(update.Options{
		Page: a.cfg.Page,
		Open: func(ctx context.Context) (*checklist.Model, error) {
			return a.openChecklist(ctx, states)
		},
		Session: session.Options{
			Sink:     report.ClipboardSink{},
			Notifier: a.notifier(),
			Report:   report.Options{NotApplicableStatus: a.cfg.NotApplicableStatus},
			Logger:   a.logger,
		},
		Logger: a.logger,
	})
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("prchecklist failed: %w", err)
	}
	return nil
}
