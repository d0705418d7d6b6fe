package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/vibetodo/internal/layout"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("VIBETODO_CONFIG", "")
	return dir
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(dir, "data", "vibetodo", "vibetodo.db"), cfg.Storage.Path)
	require.Equal(t, filepath.Join(dir, "state", "vibetodo", "vibetodo.log"), cfg.Log.Path)
	require.Equal(t, AutoDevice, cfg.UI.Device.Type)
	require.Equal(t, layout.DefaultOptions().Breakpoints, cfg.LayoutOptions().Breakpoints)
	require.True(t, cfg.TerminalOptions().AutoDevice)
	require.Equal(t, "lg", cfg.UI.ChartBreakpoint)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("VIBETODO_STORAGE_BACKEND", "file")
	t.Setenv("VIBETODO_UI_DEVICE_TYPE", "foldable")
	t.Setenv("VIBETODO_UI_DEVICE_FOLDED", "true")
	t.Setenv("VIBETODO_UI_MIN_CHILD_WIDTH", "100")
	t.Setenv("VIBETODO_UI_CHART_BREAKPOINT", "md")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, 100.0, cfg.UI.MinChildWidth)
	require.Equal(t, "md", cfg.UI.ChartBreakpoint)

	term := cfg.TerminalOptions()
	require.False(t, term.AutoDevice)
	require.Equal(t, layout.DeviceFoldable, term.Device.Type)
	require.True(t, term.Device.Folded)
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	t.Setenv("VIBETODO_CONFIG", path)

	cfg := Default()
	cfg.UI.FormFactor = "tablet"
	cfg.UI.Split = SplitConfig{Left: 0.3, Right: 0.7}
	cfg.UI.Breakpoints = BreakpointsConfig{}
	require.NoError(t, Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[ui.split]")

	got, err := Load()
	require.NoError(t, err)
	opts := got.LayoutOptions()
	require.Equal(t, layout.FormFactorTablet, opts.FormFactor)
	require.Equal(t, layout.SplitRatio{Left: 0.3, Right: 0.7}, opts.Split)
	require.False(t, opts.Breakpoints.Enabled())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("ui = [unterminated"), 0o644))
	t.Setenv("VIBETODO_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
