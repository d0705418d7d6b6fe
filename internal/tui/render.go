package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/vibetodo/internal/layout"
	"github.com/jask/vibetodo/internal/todo"
)

const (
	appTitle       = "Vibe Coding Todo App"
	appDescription = "A simple todo app that follows your terminal's shape"
	foldDivider    = 3
	minCellWidth   = 12
)

func (a *App) View() string {
	th := themeFor(a.decision.Scheme)
	pad := a.padding()
	inner := max(a.cols-2*pad, minCellWidth)

	var body string
	switch a.decision.Variant {
	case layout.VariantFoldable:
		body = a.renderFoldable(th, inner)
	case layout.VariantTablet:
		body = a.renderTablet(th, inner)
	default:
		body = a.renderPhone(th, inner)
	}

	page := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(th, inner),
		"",
		body,
		"",
		a.renderFooter(th, inner),
	)
	return lipgloss.NewStyle().Padding(0, pad).Render(page)
}

// padding is the horizontal page margin in cells, scaled like a 16pt inset.
func (a *App) padding() int {
	pts := a.decision.Scaler.Moderate(16)
	return min(layout.Cells(pts/cellWidth(a.term), 1), 4)
}

// gap is the grid gutter in cells.
func (a *App) gap() int {
	return layout.Cells(a.decision.Grid.ItemPadding*2/cellWidth(a.term), 1)
}

func cellWidth(o layout.TerminalOptions) float64 {
	if o.CellWidth <= 0 {
		return 1
	}
	return o.CellWidth
}

func (a *App) renderHeader(th theme, width int) string {
	title := th.title.Render(ansi.Truncate(appTitle, width, "…"))
	d := a.decision
	v := a.source.Current().Viewport
	info := fmt.Sprintf("%dx%d · %.0fx%.0fpt · %s · %s · %s · %d col",
		a.cols, a.rows, v.Width, v.Height, a.deviceLabel(), d.Orientation, breakpointLabel(d.Breakpoint), d.Grid.Columns)
	lines := []string{title, th.info.Render(ansi.Truncate(info, width, "…"))}
	if d.Direction == layout.DirectionRow {
		lines = append(lines, th.subtle.Render(ansi.Truncate(appDescription, width, "…")))
	}
	return strings.Join(lines, "\n")
}

func (a *App) deviceLabel() string {
	dev := a.source.Current().Device
	label := string(dev.Resolved())
	if dev.Resolved() == layout.DeviceFoldable && dev.Folded {
		label += " (folded)"
	}
	return label
}

func breakpointLabel(bp layout.Breakpoint) string {
	if bp == layout.BreakpointNone {
		return "auto"
	}
	return bp.String()
}

// renderSummary lays out stats and filter tabs side by side on wide screens
// and stacked on narrow ones.
func (a *App) renderSummary(th theme, width int, dir layout.Direction) string {
	stats := a.renderStats(th)
	tabs := a.renderTabs(th)
	if dir == layout.DirectionRow && lipgloss.Width(stats)+lipgloss.Width(tabs)+2 <= width {
		return lipgloss.JoinHorizontal(lipgloss.Top, tabs, "  ", stats)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, stats)
}

func (a *App) renderStats(th theme) string {
	s := a.list.Stats()
	return th.info.Render(fmt.Sprintf("%d active · %d completed · %d total", s.Active, s.Completed, s.Total))
}

func (a *App) renderTabs(th theme) string {
	parts := make([]string, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		style := th.tab
		if f == a.filter {
			style = th.tabActive
		}
		parts = append(parts, style.Render(string(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderForm(th theme) string {
	if !a.adding {
		return ""
	}
	return a.input.View()
}

// renderTasks draws the visible tasks as a responsive grid.
func (a *App) renderTasks(th theme, width int) string {
	tasks := a.visible()
	if len(tasks) == 0 {
		return th.subtle.Render(emptyMessage(a.filter))
	}

	grid := a.paneGrid(width)
	cell := grid.ItemWidth(width)
	textWidth := max(cell-a.gap(), 1)
	cellStyle := lipgloss.NewStyle().Width(cell)

	rows := grid.Rows(len(tasks))
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, i := range row {
			cells = append(cells, cellStyle.Render(a.renderTask(th, tasks[i], i == a.cursor, textWidth)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

// paneGrid narrows the viewport grid to what fits in a pane of width cells.
func (a *App) paneGrid(width int) layout.Grid {
	g := a.decision.Grid
	if limit := max(width/minCellWidth, 1); g.Columns > limit {
		g.Columns = limit
		g.ItemWidthPercent = 100 / float64(limit)
	}
	return g
}

func (a *App) renderTask(th theme, t todo.Task, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "▶ "
	}
	box := "[ ] "
	style := th.active
	if t.Completed {
		box = "[x] "
		style = th.done
	}
	text := ansi.Truncate(t.Text, max(width-lipgloss.Width(marker)-lipgloss.Width(box), 1), "…")
	line := box + style.Render(text)
	if selected {
		return th.cursor.Render(marker) + line
	}
	return marker + line
}

func emptyMessage(f todo.Filter) string {
	switch f {
	case todo.FilterActive:
		return "Nothing left to do."
	case todo.FilterCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks yet. Press a to add one."
	}
}

func (a *App) showActivity() bool {
	return a.decision.Breakpoint.Rank() >= a.chartBP.Rank()
}

func (a *App) renderPhone(th theme, width int) string {
	parts := []string{a.renderSummary(th, width, a.decision.Direction)}
	if form := a.renderForm(th); form != "" {
		parts = append(parts, form)
	}
	parts = append(parts, "", a.renderTasks(th, width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTablet puts the task grid beside a narrow side panel.
func (a *App) renderTablet(th theme, width int) string {
	side := max(width/3, minCellWidth)
	main := width - side - 2
	if main < minCellWidth {
		return a.renderPhone(th, width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(main).Render(a.renderMain(th, main)),
		"  ",
		lipgloss.NewStyle().Width(side).Render(a.renderSide(th, side)),
	)
}

// renderFoldable shows navigation and content on either side of the fold,
// or a single pane when folded.
func (a *App) renderFoldable(th theme, width int) string {
	fold := a.decision.Fold
	if !fold.Split {
		return a.renderPhone(th, width)
	}
	left, right := fold.Widths(width, foldDivider)
	if left < minCellWidth || right < minCellWidth {
		return a.renderPhone(th, width)
	}
	leftPane := lipgloss.NewStyle().Width(left).Render(a.renderSide(th, left))
	rightPane := lipgloss.NewStyle().Width(right).Render(a.renderMain(th, right))
	height := max(lipgloss.Height(leftPane), lipgloss.Height(rightPane))
	divider := th.foldLine.Render(strings.TrimSuffix(strings.Repeat(" │ \n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, divider, rightPane)
}

func (a *App) renderMain(th theme, width int) string {
	parts := []string{}
	if form := a.renderForm(th); form != "" {
		parts = append(parts, form, "")
	}
	parts = append(parts, a.renderTasks(th, width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderSide(th theme, width int) string {
	parts := []string{a.renderSummary(th, width, layout.DirectionColumn)}
	if a.showActivity() {
		if chart := renderActivity(th, a.list.Tasks(), a.now(), width); chart != "" {
			parts = append(parts, "", chart)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderFooter(th theme, width int) string {
	a.help.Width = width
	helpLine := a.help.ShortHelpView(a.keys.ShortHelp())
	if a.adding {
		helpLine = a.help.ShortHelpView(a.keys.FormHelp())
	}
	if a.status == "" {
		return helpLine
	}
	style := th.statusStyle(a.statusKind)
	return lipgloss.JoinVertical(lipgloss.Left, style.Render(ansi.Truncate(a.status, width, "…")), helpLine)
}
