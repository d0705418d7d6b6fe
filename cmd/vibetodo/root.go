package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/vibetodo/internal/layout"
	"github.com/jask/vibetodo/internal/todo"
	"github.com/jask/vibetodo/internal/tui"
)

var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "vibetodo",
		Short:         "A todo list that lays itself out to fit the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.AddCommand(
		addCmd(),
		listCmd(),
		toggleCmd(),
		rmCmd(),
		statsCmd(),
		exportCmd(),
		layoutCmd(),
		configCmd(),
	)
	return root
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	list, err := e.openList(ctx)
	if err != nil {
		return err
	}
	filter, err := todo.ParseFilter(e.cfg.UI.Filter)
	if err != nil {
		e.logger.Warn("ignoring configured filter", "err", err)
		filter = todo.FilterAll
	}
	chartBP, err := layout.ParseBreakpoint(e.cfg.UI.ChartBreakpoint)
	if err != nil {
		e.logger.Warn("ignoring configured chart breakpoint", "err", err)
		chartBP = layout.BreakpointLG
	}

	var changes <-chan struct{}
	if w, err := todo.Watch(storagePath(e.cfg.Storage)); err != nil {
		e.logger.Warn("storage watch disabled", "err", err)
	} else {
		defer w.Close()
		changes = w.Changes()
		go func() {
			for err := range w.Errors() {
				e.logger.Warn("storage watch", "err", err)
			}
		}()
	}

	term := e.cfg.TerminalOptions()
	source := layout.NewSource(layout.TerminalSampler(os.Stdout, term)())
	app := tui.New(ctx, tui.Deps{
		List:            list,
		Source:          source,
		Options:         e.cfg.LayoutOptions(),
		Terminal:        term,
		Filter:          filter,
		ChartBreakpoint: chartBP,
		Logger:          e.logger,
		Changes:         changes,
	})
	defer app.Close()

	e.logger.Info("tui start", "backend", backend(e.cfg.Storage), "tasks", len(list.Tasks()))
	if err := runProgram(app); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
