package layout

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
)

// Terminal defaults used when no TTY and no COLUMNS/LINES are available.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// TerminalOptions converts terminal cells into layout points.
type TerminalOptions struct {
	CellWidth  float64
	CellHeight float64
	FontScale  float64
	PixelRatio float64

	// Device is reported as-is unless AutoDevice is set, in which case the
	// type is derived from the viewport width.
	Device     DeviceContext
	AutoDevice bool
}

// DefaultTerminalOptions assumes 8x16 point cells.
func DefaultTerminalOptions() TerminalOptions {
	return TerminalOptions{
		CellWidth:  8,
		CellHeight: 16,
		FontScale:  1,
		PixelRatio: 1,
		Device:     DeviceContext{Type: DevicePhone},
	}
}

// TerminalSize returns the size of the terminal behind fd. It falls back
// to COLUMNS/LINES and then to 80x24.
func TerminalSize(fd uintptr) (cols, rows int) {
	w, h, err := term.GetSize(fd)
	if err == nil && w > 0 && h > 0 {
		return w, h
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cols = n
		}
	}
	if v := os.Getenv("LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rows = n
		}
	}
	if cols == 0 {
		cols = DefaultColumns
	}
	if rows == 0 {
		rows = DefaultRows
	}
	return cols, rows
}

// DetectScheme asks the terminal for its background color.
func DetectScheme() ColorScheme {
	if termenv.HasDarkBackground() {
		return SchemeDark
	}
	return SchemeLight
}

// autoFoldableWidth is where an auto-detected device becomes a foldable.
const autoFoldableWidth = 1100

// DeviceForWidth guesses a device class from viewport width: phone below
// the tablet reference width, foldable from autoFoldableWidth.
func DeviceForWidth(width float64) DeviceType {
	switch {
	case width >= autoFoldableWidth:
		return DeviceFoldable
	case width >= BaseDimensions(FormFactorTablet).Width:
		return DeviceTablet
	default:
		return DevicePhone
	}
}

// Viewport converts a cell grid into a viewport.
func (o TerminalOptions) Viewport(cols, rows int) Viewport {
	cw, ch := o.CellWidth, o.CellHeight
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return Viewport{
		Width:      float64(cols) * cw,
		Height:     float64(rows) * ch,
		FontScale:  o.FontScale,
		PixelRatio: o.PixelRatio,
	}
}

// Snapshot builds the signal snapshot for a terminal of cols x rows.
func (o TerminalOptions) Snapshot(cols, rows int, scheme ColorScheme) Snapshot {
	v := o.Viewport(cols, rows)
	dev := o.Device
	if o.AutoDevice {
		dev.Type = DeviceForWidth(v.Width)
	}
	return Snapshot{Viewport: v, Device: dev, Scheme: scheme}
}

// Cells converts a width in points back to terminal columns.
func (o TerminalOptions) Cells(width float64) int {
	if o.CellWidth <= 0 {
		return int(width)
	}
	return int(width / o.CellWidth)
}

// Sampler reads the current snapshot from the host.
type Sampler func() Snapshot

// TerminalSampler reads f's size on every call. The color scheme is queried
// once because asking the terminal is slow.
func TerminalSampler(f *os.File, o TerminalOptions) Sampler {
	scheme := DetectScheme()
	return func() Snapshot {
		cols, rows := TerminalSize(f.Fd())
		return o.Snapshot(cols, rows, scheme)
	}
}

// Watch polls sample every interval and publishes to src until ctx is done.
func Watch(ctx context.Context, src *Source, sample Sampler, interval time.Duration) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	src.Publish(sample())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			src.Publish(sample())
		}
	}
}
