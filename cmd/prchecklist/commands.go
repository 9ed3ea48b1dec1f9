package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/prchecklist/internal/report"
	"github.com/sandeepkv93/prchecklist/internal/session"
	"github.com/sandeepkv93/prchecklist/internal/storage"
)

// run opens the page's checklist, applies one command line and prints the
// result.
func (a *app) run(cmd *cobra.Command, input string) error {
	s, closeFn, err := a.openSession(commandContext(cmd), nil)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := s.Run(commandContext(cmd), input)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "show [all|pending|done|na]",
		Short:     "List the chores for a page",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"all", "pending", "done", "na"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, strings.Join(append([]string{"show"}, args...), " "))
		},
	}
}

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a custom chore",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "add "+strings.Join(args, " "))
		},
	}
}

func indexCmd(a *app, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " INDEX",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, name+" "+args[0])
		},
	}
}

func bulkCmd(a *app, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, name)
		},
	}
}

func reportCmd(a *app) *cobra.Command {
	var copyToClipboard bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the markdown PR checklist",
		Long: `Print the markdown PR checklist for a page.

With --copy the report is also placed on the clipboard and a
"PR checklist copied to clipboard" notification is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sink report.Sink
			if copyToClipboard {
				sink = report.ClipboardSink{}
			}
			s, closeFn, err := a.openSession(commandContext(cmd), sink)
			if err != nil {
				return err
			}
			defer closeFn()

			text := s.Report()
			if copyToClipboard {
				if text, err = s.GenerateReport(commandContext(cmd)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), session.CopiedMessage)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "copy the report to the clipboard")
	return cmd
}

func pagesCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List pages with saved checklist state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			lister, ok := store.(storage.KeyLister)
			if !ok {
				return fmt.Errorf("store %q cannot list pages", a.cfg.Store)
			}
			keys, err := lister.Keys(commandContext(cmd), limit)
			if err != nil {
				return err
			}
			for _, key := range keys {
				if page, ok := storage.PageFromKey(key); ok {
					fmt.Fprintln(cmd.OutOrStdout(), page)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum pages to list")
	return cmd
}
