package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/vibetodo/internal/layout"
)

// ---------------------------------------------------------------------------
// Catppuccin palettes: Mocha for dark terminals, Latte for light ones.
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

type palette struct {
	Text     lipgloss.Color
	Subtext  lipgloss.Color
	Overlay  lipgloss.Color
	Surface  lipgloss.Color
	Base     lipgloss.Color
	Accent   lipgloss.Color
	Focus    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Info     lipgloss.Color
	Chart    lipgloss.Color
	FoldLine lipgloss.Color
}

var mocha = palette{
	Text:     "#cdd6f4",
	Subtext:  "#a6adc8",
	Overlay:  "#7f849c",
	Surface:  "#45475a",
	Base:     "#1e1e2e",
	Accent:   "#cba6f7",
	Focus:    "#b4befe",
	Success:  "#a6e3a1",
	Warning:  "#f9e2af",
	Error:    "#f38ba8",
	Info:     "#94e2d5",
	Chart:    "#fab387",
	FoldLine: "#585b70",
}

var latte = palette{
	Text:     "#4c4f69",
	Subtext:  "#6c6f85",
	Overlay:  "#8c8fa1",
	Surface:  "#bcc0cc",
	Base:     "#eff1f5",
	Accent:   "#8839ef",
	Focus:    "#7287fd",
	Success:  "#40a02b",
	Warning:  "#df8e1d",
	Error:    "#d20f39",
	Info:     "#179299",
	Chart:    "#fe640b",
	FoldLine: "#acb0be",
}

// theme is the set of styles one render pass uses.
type theme struct {
	colors    palette
	title     lipgloss.Style
	subtle    lipgloss.Style
	info      lipgloss.Style
	cursor    lipgloss.Style
	done      lipgloss.Style
	active    lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	foldLine  lipgloss.Style
	status    lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	errStatus lipgloss.Style
}

func themeFor(scheme layout.ColorScheme) theme {
	p := mocha
	if scheme == layout.SchemeLight {
		p = latte
	}
	return theme{
		colors:    p,
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		subtle:    lipgloss.NewStyle().Foreground(p.Overlay),
		info:      lipgloss.NewStyle().Foreground(p.Subtext),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(p.Focus),
		done:      lipgloss.NewStyle().Strikethrough(true).Foreground(p.Overlay),
		active:    lipgloss.NewStyle().Foreground(p.Text),
		tab:       lipgloss.NewStyle().Foreground(p.Subtext).Padding(0, 1),
		tabActive: lipgloss.NewStyle().Bold(true).Foreground(p.Base).Background(p.Accent).Padding(0, 1),
		foldLine:  lipgloss.NewStyle().Foreground(p.FoldLine),
		status:    lipgloss.NewStyle().Foreground(p.Info),
		success:   lipgloss.NewStyle().Foreground(p.Success),
		warning:   lipgloss.NewStyle().Foreground(p.Warning),
		errStatus: lipgloss.NewStyle().Bold(true).Foreground(p.Error),
	}
}

func (th theme) statusStyle(kind statusKind) lipgloss.Style {
	switch kind {
	case statusSuccess:
		return th.success
	case statusWarning:
		return th.warning
	case statusError:
		return th.errStatus
	default:
		return th.status
	}
}
