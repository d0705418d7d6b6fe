package layout

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSourceNotifiesInOrderOnChange(t *testing.T) {
	src := NewSource(Snapshot{})
	var calls []string
	src.Subscribe(func(Snapshot) { calls = append(calls, "first") })
	src.Subscribe(func(Snapshot) { calls = append(calls, "second") })

	snap := Snapshot{Viewport: Viewport{Width: 640, Height: 384}}
	require.True(t, src.Publish(snap))
	require.Equal(t, []string{"first", "second"}, calls)
	require.Equal(t, snap, src.Current())

	require.False(t, src.Publish(snap))
	require.Len(t, calls, 2)
}

func TestSourceCancel(t *testing.T) {
	src := NewSource(Snapshot{})
	var n int
	cancel := src.Subscribe(func(Snapshot) { n++ })
	require.Equal(t, 1, src.Subscribers())

	cancel()
	cancel()
	require.Equal(t, 0, src.Subscribers())

	src.Publish(Snapshot{Scheme: SchemeLight})
	require.Zero(t, n)
}

func TestObserverRecomputesDecision(t *testing.T) {
	opts := DefaultOptions()
	src := NewSource(Snapshot{})
	var got Decision
	src.Subscribe(func(s Snapshot) { got = Decide(s, opts) })

	src.Publish(Snapshot{Viewport: Viewport{Width: 1280, Height: 640}})
	require.Equal(t, BreakpointXL, got.Breakpoint)
	require.Equal(t, 6, got.Grid.Columns)
	require.Equal(t, DirectionRow, got.Direction)

	src.Publish(Snapshot{Viewport: Viewport{Width: 320, Height: 640}})
	require.Equal(t, BreakpointXS, got.Breakpoint)
	require.Equal(t, 1, got.Grid.Columns)
	require.Equal(t, DirectionColumn, got.Direction)
	require.Equal(t, Portrait, got.Orientation)
}

func TestWatchPublishesSamples(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var width atomic.Int64
	width.Store(640)
	sample := func() Snapshot {
		return Snapshot{Viewport: Viewport{Width: float64(width.Load()), Height: 384}}
	}

	src := NewSource(Snapshot{})
	seen := make(chan float64, 8)
	src.Subscribe(func(s Snapshot) { seen <- s.Viewport.Width })

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, src, sample, 5*time.Millisecond) }()

	require.Equal(t, 640.0, <-seen)
	width.Store(1280)
	require.Equal(t, 1280.0, <-seen)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestTerminalSnapshot(t *testing.T) {
	o := DefaultTerminalOptions()
	snap := o.Snapshot(100, 30, SchemeLight)
	require.Equal(t, Viewport{Width: 800, Height: 480, FontScale: 1, PixelRatio: 1}, snap.Viewport)
	require.Equal(t, DevicePhone, snap.Device.Type)
	require.Equal(t, 100, o.Cells(800))

	o.AutoDevice = true
	require.Equal(t, DevicePhone, o.Snapshot(80, 24, SchemeDark).Device.Type)
	require.Equal(t, DeviceTablet, o.Snapshot(110, 24, SchemeDark).Device.Type)
	require.Equal(t, DeviceFoldable, o.Snapshot(140, 24, SchemeDark).Device.Type)
}

func TestTerminalSizeFallsBackToEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "43")
	// An invalid descriptor cannot be a terminal.
	cols, rows := TerminalSize(^uintptr(0))
	require.Equal(t, 132, cols)
	require.Equal(t, 43, rows)
}

func TestDecideDefaults(t *testing.T) {
	d := Decide(Snapshot{
		Viewport: Viewport{Width: 750, Height: 400},
		Device:   DeviceContext{Type: DeviceFoldable},
	}, DefaultOptions())
	require.Equal(t, BreakpointSM, d.Breakpoint)
	require.Equal(t, VariantFoldable, d.Variant)
	require.True(t, d.Fold.Split)
	require.Equal(t, SchemeDark, d.Scheme)
	require.Equal(t, Landscape, d.Orientation)
	require.Equal(t, 200.0, d.Scaler.Scale(100))
}
