package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/vibetodo/internal/config"
	"github.com/jask/vibetodo/internal/layout"
)

type layoutFlags struct {
	width, height int
	device        string
	folded        bool
	scheme        string
	watch         bool
	interval      time.Duration
}

func layoutCmd() *cobra.Command {
	var f layoutFlags
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the layout decision for this terminal or a given size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			term, err := f.terminalOptions(cmd, cfg)
			if err != nil {
				return err
			}
			scheme, err := f.colorScheme()
			if err != nil {
				return err
			}
			opts := cfg.LayoutOptions()
			sample := f.sample(term, scheme)
			out := cmd.OutOrStdout()

			if !f.watch {
				snap := sample()
				writeDecision(out, term, snap, layout.Decide(snap, opts))
				return nil
			}
			return watchLayout(cmd.Context(), out, term, opts, sample, f.interval)
		},
	}
	cmd.Flags().IntVar(&f.width, "width", 0, "terminal columns (default: current terminal)")
	cmd.Flags().IntVar(&f.height, "height", 0, "terminal rows (default: current terminal)")
	cmd.Flags().StringVar(&f.device, "device", "", "phone, tablet, foldable or auto (default: from config)")
	cmd.Flags().BoolVar(&f.folded, "folded", false, "report a foldable as folded")
	cmd.Flags().StringVar(&f.scheme, "scheme", "auto", "dark, light or auto")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "print a new decision whenever the terminal changes")
	cmd.Flags().DurationVar(&f.interval, "interval", 250*time.Millisecond, "poll interval for --watch")
	return cmd
}

func (f layoutFlags) terminalOptions(cmd *cobra.Command, cfg config.Config) (layout.TerminalOptions, error) {
	term := cfg.TerminalOptions()
	if cmd.Flags().Changed("device") {
		if strings.EqualFold(strings.TrimSpace(f.device), config.AutoDevice) {
			term.AutoDevice = true
		} else {
			dt := layout.ParseDeviceType(f.device)
			if !strings.EqualFold(string(dt), strings.TrimSpace(f.device)) {
				return term, fmt.Errorf("unknown device %q (want phone, tablet, foldable or auto)", f.device)
			}
			term.AutoDevice = false
			term.Device.Type = dt
		}
	}
	if cmd.Flags().Changed("folded") {
		term.Device.Folded = f.folded
	}
	return term, nil
}

func (f layoutFlags) colorScheme() (layout.ColorScheme, error) {
	switch strings.ToLower(strings.TrimSpace(f.scheme)) {
	case "", "auto":
		return "", nil
	case string(layout.SchemeDark):
		return layout.SchemeDark, nil
	case string(layout.SchemeLight):
		return layout.SchemeLight, nil
	default:
		return "", fmt.Errorf("unknown scheme %q (want dark, light or auto)", f.scheme)
	}
}

// sample reads the terminal unless both dimensions were given.
func (f layoutFlags) sample(term layout.TerminalOptions, scheme layout.ColorScheme) layout.Sampler {
	if f.width > 0 && f.height > 0 {
		if scheme == "" {
			scheme = layout.SchemeDark
		}
		snap := term.Snapshot(f.width, f.height, scheme)
		return func() layout.Snapshot { return snap }
	}
	if scheme == "" {
		scheme = layout.DetectScheme()
	}
	return func() layout.Snapshot {
		cols, rows := layout.TerminalSize(os.Stdout.Fd())
		if f.width > 0 {
			cols = f.width
		}
		if f.height > 0 {
			rows = f.height
		}
		return term.Snapshot(cols, rows, scheme)
	}
}

func watchLayout(ctx context.Context, out io.Writer, term layout.TerminalOptions, opts layout.Options, sample layout.Sampler, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	src := layout.NewSource(layout.Snapshot{})
	cancel := src.Subscribe(func(s layout.Snapshot) {
		writeDecision(out, term, s, layout.Decide(s, opts))
		fmt.Fprintln(out)
	})
	defer cancel()

	if err := layout.Watch(ctx, src, sample, interval); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func writeDecision(w io.Writer, term layout.TerminalOptions, snap layout.Snapshot, d layout.Decision) {
	v := snap.Viewport
	cols := term.Cells(v.Width)
	rows := int(v.Height)
	if term.CellHeight > 0 {
		rows = int(v.Height / term.CellHeight)
	}

	bp := d.Breakpoint.String()
	if d.Breakpoint == layout.BreakpointNone {
		bp = "none (min child width fallback)"
	}
	fold := "single pane"
	if d.Fold.Split {
		fold = fmt.Sprintf("split %.0f/%.0f", d.Fold.Ratio.Left*100, d.Fold.Ratio.Right*100)
	}
	device := string(snap.Device.Resolved())
	if snap.Device.Resolved() == layout.DeviceFoldable && snap.Device.Folded {
		device += " (folded)"
	}

	rowsOut := [][2]string{
		{"viewport", fmt.Sprintf("%.0fx%.0fpt (%dx%d cells)", v.Width, v.Height, cols, rows)},
		{"device", device},
		{"orientation", d.Orientation.String()},
		{"breakpoint", bp},
		{"grid", fmt.Sprintf("%d columns, item %.1f%%, padding %.0f", d.Grid.Columns, d.Grid.ItemWidthPercent, d.Grid.ItemPadding)},
		{"direction", d.Direction.String()},
		{"variant", string(d.Variant)},
		{"fold", fold},
		{"scheme", string(d.Scheme)},
		{"scale", fmt.Sprintf("scale(16)=%.1f vertical(16)=%.1f moderate(16)=%.1f font(16)=%.1f",
			d.Scaler.Scale(16), d.Scaler.Vertical(16), d.Scaler.Moderate(16), d.Scaler.Font(16))},
	}
	for _, r := range rowsOut {
		fmt.Fprintf(w, "%-12s %s\n", r[0], r[1])
	}
}
