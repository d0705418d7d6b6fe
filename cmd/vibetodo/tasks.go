package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/vibetodo/internal/todo"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.openList(cmd.Context())
			if err != nil {
				return err
			}
			t, err := list.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			e.logger.Info("task added", "id", t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", len(list.Tasks()), t.Text)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var filterName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := todo.ParseFilter(filterName)
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.openList(cmd.Context())
			if err != nil {
				return err
			}
			writeList(cmd.OutOrStdout(), list.Tasks(), filter)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "all, active or completed")
	return cmd
}

// writeList prints visible tasks numbered by their position in the full
// list, so the numbers work as toggle and rm references.
func writeList(w io.Writer, tasks []todo.Task, filter todo.Filter) {
	shown := 0
	for i, t := range tasks {
		if !filter.Match(t) {
			continue
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, box, t.Text)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "No tasks.")
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <number|id|text>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.openList(cmd.Context())
			if err != nil {
				return err
			}
			t, err := todo.Resolve(list.Tasks(), args[0])
			if err != nil {
				return err
			}
			if _, err := list.Toggle(cmd.Context(), t.ID); err != nil {
				return err
			}
			verb := "Completed"
			if t.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, t.Text)
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number|id|text>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.openList(cmd.Context())
			if err != nil {
				return err
			}
			t, err := todo.Resolve(list.Tasks(), args[0])
			if err != nil {
				return err
			}
			if _, err := list.Delete(cmd.Context(), t.ID); err != nil {
				return err
			}
			e.logger.Info("task deleted", "id", t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", t.Text)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.openList(cmd.Context())
			if err != nil {
				return err
			}
			s := list.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%d active, %d completed, %d total\n", s.Active, s.Completed, s.Total)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			list, err := e.openList(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return todo.Export(cmd.OutOrStdout(), list.Tasks(), format)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := todo.Export(f, list.Tasks(), format); err != nil {
				return errors.Join(err, f.Close())
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&format, "format", todo.FormatJSON, "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
