package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/jask/vibetodo/internal/layout"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" toml:"storage"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
	UI      UIConfig      `mapstructure:"ui" toml:"ui"`
}

// StorageConfig selects where the task list lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend" toml:"backend"` // sqlite | file
	Path    string `mapstructure:"path" toml:"path"`
}

// LogConfig holds rotating log file settings.
type LogConfig struct {
	Path       string `mapstructure:"path" toml:"path"`
	Level      string `mapstructure:"level" toml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
}

// UIConfig holds layout and presentation settings.
type UIConfig struct {
	FormFactor         string            `mapstructure:"form_factor" toml:"form_factor"`
	MinChildWidth      float64           `mapstructure:"min_child_width" toml:"min_child_width"`
	Spacing            float64           `mapstructure:"spacing" toml:"spacing"`
	AdaptiveBreakpoint float64           `mapstructure:"adaptive_breakpoint" toml:"adaptive_breakpoint"`
	ModerateFactor     float64           `mapstructure:"moderate_factor" toml:"moderate_factor"`
	CellWidth          float64           `mapstructure:"cell_width" toml:"cell_width"`
	CellHeight         float64           `mapstructure:"cell_height" toml:"cell_height"`
	FontScale          float64           `mapstructure:"font_scale" toml:"font_scale"`
	PixelRatio         float64           `mapstructure:"pixel_ratio" toml:"pixel_ratio"`
	Filter             string            `mapstructure:"filter" toml:"filter"`
	ChartBreakpoint    string            `mapstructure:"chart_breakpoint" toml:"chart_breakpoint"`
	Breakpoints        BreakpointsConfig `mapstructure:"breakpoints" toml:"breakpoints"`
	Split              SplitConfig       `mapstructure:"split" toml:"split"`
	Device             DeviceConfig      `mapstructure:"device" toml:"device"`
}

// BreakpointsConfig holds minimum widths in layout points. All zero disables
// named breakpoints.
type BreakpointsConfig struct {
	SM float64 `mapstructure:"sm" toml:"sm"`
	MD float64 `mapstructure:"md" toml:"md"`
	LG float64 `mapstructure:"lg" toml:"lg"`
	XL float64 `mapstructure:"xl" toml:"xl"`
}

// SplitConfig holds the unfolded two-pane proportions.
type SplitConfig struct {
	Left  float64 `mapstructure:"left" toml:"left"`
	Right float64 `mapstructure:"right" toml:"right"`
}

// DeviceConfig is the device signal reported to the layout adapter.
type DeviceConfig struct {
	Type         string  `mapstructure:"type" toml:"type"` // phone | tablet | foldable | auto
	Folded       bool    `mapstructure:"folded" toml:"folded"`
	FoldPosition float64 `mapstructure:"fold_position" toml:"fold_position"`
}

// AutoDevice is the device type that asks for detection from width.
const AutoDevice = "auto"

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// Dir returns the config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vibetodo")
	}
	return filepath.Join(home(), ".config", "vibetodo")
}

// Path returns the config file location. VIBETODO_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("VIBETODO_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vibetodo")
	}
	return filepath.Join(home(), ".local", "share", "vibetodo")
}

func stateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "vibetodo")
	}
	return filepath.Join(home(), ".local", "state", "vibetodo")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("ui.form_factor", d.UI.FormFactor)
	v.SetDefault("ui.min_child_width", d.UI.MinChildWidth)
	v.SetDefault("ui.spacing", d.UI.Spacing)
	v.SetDefault("ui.adaptive_breakpoint", d.UI.AdaptiveBreakpoint)
	v.SetDefault("ui.moderate_factor", d.UI.ModerateFactor)
	v.SetDefault("ui.cell_width", d.UI.CellWidth)
	v.SetDefault("ui.cell_height", d.UI.CellHeight)
	v.SetDefault("ui.font_scale", d.UI.FontScale)
	v.SetDefault("ui.pixel_ratio", d.UI.PixelRatio)
	v.SetDefault("ui.filter", d.UI.Filter)
	v.SetDefault("ui.chart_breakpoint", d.UI.ChartBreakpoint)
	v.SetDefault("ui.breakpoints.sm", d.UI.Breakpoints.SM)
	v.SetDefault("ui.breakpoints.md", d.UI.Breakpoints.MD)
	v.SetDefault("ui.breakpoints.lg", d.UI.Breakpoints.LG)
	v.SetDefault("ui.breakpoints.xl", d.UI.Breakpoints.XL)
	v.SetDefault("ui.split.left", d.UI.Split.Left)
	v.SetDefault("ui.split.right", d.UI.Split.Right)
	v.SetDefault("ui.device.type", d.UI.Device.Type)
	v.SetDefault("ui.device.folded", d.UI.Device.Folded)
	v.SetDefault("ui.device.fold_position", d.UI.Device.FoldPosition)
}

// Default returns the built-in configuration.
func Default() Config {
	bp := layout.DefaultBreakpointTable()
	split := layout.DefaultSplitRatio()
	return Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join(dataDir(), "vibetodo.db"),
		},
		Log: LogConfig{
			Path:       filepath.Join(stateDir(), "vibetodo.log"),
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		UI: UIConfig{
			FormFactor:         string(layout.FormFactorPhone),
			MinChildWidth:      150,
			Spacing:            10,
			AdaptiveBreakpoint: layout.DefaultAdaptiveBreakpoint,
			ModerateFactor:     layout.DefaultModerateFactor,
			CellWidth:          8,
			CellHeight:         16,
			FontScale:          1,
			PixelRatio:         1,
			Filter:             "all",
			ChartBreakpoint:    string(layout.BreakpointLG),
			Breakpoints:        BreakpointsConfig{SM: bp.SM, MD: bp.MD, LG: bp.LG, XL: bp.XL},
			Split:              SplitConfig{Left: split.Left, Right: split.Right},
			Device:             DeviceConfig{Type: AutoDevice},
		},
	}
}

// Load reads configuration from file and env. Env var overrides use prefix VIBETODO_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("VIBETODO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func isNotExist(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

// Save writes cfg to Path as TOML, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}

// LayoutOptions converts the UI section into layout options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		FormFactor: layout.ParseFormFactor(c.UI.FormFactor),
		Breakpoints: layout.BreakpointTable{
			SM: c.UI.Breakpoints.SM,
			MD: c.UI.Breakpoints.MD,
			LG: c.UI.Breakpoints.LG,
			XL: c.UI.Breakpoints.XL,
		},
		MinChildWidth:      c.UI.MinChildWidth,
		Spacing:            c.UI.Spacing,
		AdaptiveBreakpoint: c.UI.AdaptiveBreakpoint,
		ModerateFactor:     c.UI.ModerateFactor,
		Split:              layout.SplitRatio{Left: c.UI.Split.Left, Right: c.UI.Split.Right},
	}
}

// TerminalOptions converts the UI section into terminal sampling options.
func (c Config) TerminalOptions() layout.TerminalOptions {
	auto := strings.EqualFold(strings.TrimSpace(c.UI.Device.Type), AutoDevice)
	return layout.TerminalOptions{
		CellWidth:  c.UI.CellWidth,
		CellHeight: c.UI.CellHeight,
		FontScale:  c.UI.FontScale,
		PixelRatio: c.UI.PixelRatio,
		Device: layout.DeviceContext{
			Type:         layout.ParseDeviceType(c.UI.Device.Type),
			Folded:       c.UI.Device.Folded,
			FoldPosition: c.UI.Device.FoldPosition,
		},
		AutoDevice: auto,
	}
}
