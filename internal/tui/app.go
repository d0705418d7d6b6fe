package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/vibetodo/internal/layout"
	"github.com/jask/vibetodo/internal/todo"
)

// Deps is everything the app needs from the outside.
type Deps struct {
	List     *todo.List
	Source   *layout.Source
	Options  layout.Options
	Terminal layout.TerminalOptions
	Filter   todo.Filter
	// ChartBreakpoint is the smallest breakpoint that shows the activity
	// chart. Defaults to lg.
	ChartBreakpoint layout.Breakpoint
	Logger          *slog.Logger
	// Changes signals that the backing store was written by another process.
	Changes <-chan struct{}
	Now     func() time.Time
}

// App is the bubbletea model for the todo screen.
type App struct {
	ctx    context.Context
	list   *todo.List
	source *layout.Source
	opts   layout.Options
	term   layout.TerminalOptions
	logger *slog.Logger
	now    func() time.Time

	changes     <-chan struct{}
	unsubscribe func()
	decision    layout.Decision
	cols, rows  int
	chartBP     layout.Breakpoint

	filter     todo.Filter
	cursor     int
	adding     bool
	input      textinput.Model
	keys       keyMap
	help       help.Model
	status     string
	statusKind statusKind
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

type (
	statusMsg struct {
		text string
		kind statusKind
	}
	errMsg            struct{ error }
	storageChangedMsg struct{}
	reloadedMsg       struct{}
)

// New builds the app and subscribes it to layout changes on d.Source.
func New(ctx context.Context, d Deps) *App {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Source == nil {
		d.Source = layout.NewSource(d.Terminal.Snapshot(layout.DefaultColumns, layout.DefaultRows, layout.SchemeDark))
	}
	if d.Filter == "" {
		d.Filter = todo.FilterAll
	}
	if d.ChartBreakpoint == layout.BreakpointNone {
		d.ChartBreakpoint = layout.BreakpointLG
	}

	inp := textinput.New()
	inp.Placeholder = "Add a new task..."
	inp.Prompt = "+ "
	inp.CharLimit = 256

	a := &App{
		ctx:     ctx,
		list:    d.List,
		source:  d.Source,
		opts:    d.Options,
		term:    d.Terminal,
		logger:  d.Logger,
		now:     d.Now,
		changes: d.Changes,
		chartBP: d.ChartBreakpoint,
		filter:  d.Filter,
		input:   inp,
		keys:    defaultKeys(),
		help:    help.New(),
	}
	a.apply(a.source.Current())
	a.unsubscribe = a.source.Subscribe(a.apply)
	return a
}

// apply recomputes the layout decision for snap.
func (a *App) apply(snap layout.Snapshot) {
	a.decision = layout.Decide(snap, a.opts)
	a.cols = max(a.term.Cells(snap.Viewport.Width), 1)
	if a.term.CellHeight > 0 {
		a.rows = max(int(snap.Viewport.Height/a.term.CellHeight), 1)
	} else {
		a.rows = max(int(snap.Viewport.Height), 1)
	}
	a.help.Width = a.cols
	a.input.Width = max(a.cols-8, 10)
}

// Close detaches the app from its layout source.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Decision returns the layout decision the next View will use.
func (a *App) Decision() layout.Decision { return a.decision }

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.waitForChange())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(m.Width, m.Height)
		return a, nil
	case statusMsg:
		a.setStatus(m.kind, m.text)
		a.clampCursor()
		return a, nil
	case errMsg:
		a.setStatus(statusError, m.Error())
		a.logger.Error("tui action failed", "err", m.error)
		a.clampCursor()
		return a, nil
	case storageChangedMsg:
		return a, tea.Batch(a.reloadCmd(), a.waitForChange())
	case reloadedMsg:
		a.clampCursor()
		return a, nil
	case tea.KeyMsg:
		if a.adding {
			return a.updateForm(m)
		}
		return a.updateBrowse(m)
	}
	return a, nil
}

func (a *App) resize(cols, rows int) {
	snap := a.source.Current()
	next := a.term.Snapshot(cols, rows, snap.Scheme)
	// Keep a fold toggled from the keyboard.
	next.Device.Folded = snap.Device.Folded
	if !a.source.Publish(next) {
		a.apply(next)
	}
}

func (a *App) updateForm(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.closeForm()
		return a, nil
	case key.Matches(m, a.keys.Submit):
		text := strings.TrimSpace(a.input.Value())
		a.closeForm()
		if text == "" {
			a.setStatus(statusWarning, "nothing to add")
			return a, nil
		}
		return a, a.addCmd(text)
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) closeForm() {
	a.adding = false
	a.input.Reset()
	a.input.Blur()
}

func (a *App) updateBrowse(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := a.visible()
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Add):
		a.adding = true
		a.setStatus(statusInfo, "")
		return a, a.input.Focus()
	case key.Matches(m, a.keys.Toggle):
		if t, ok := a.selected(visible); ok {
			return a, a.toggleCmd(t)
		}
	case key.Matches(m, a.keys.Delete):
		if t, ok := a.selected(visible); ok {
			return a, a.deleteCmd(t)
		}
	case key.Matches(m, a.keys.Filter):
		a.filter = a.filter.Next()
		a.cursor = 0
		a.setStatus(statusInfo, fmt.Sprintf("showing %s tasks", a.filter))
	case key.Matches(m, a.keys.Fold):
		a.toggleFold()
	}
	return a, nil
}

func (a *App) toggleFold() {
	snap := a.source.Current()
	snap.Device.Folded = !snap.Device.Folded
	a.source.Publish(snap)
	if snap.Device.Resolved() != layout.DeviceFoldable {
		a.setStatus(statusWarning, "fold only applies to foldable layouts")
		return
	}
	if snap.Device.Folded {
		a.setStatus(statusInfo, "folded")
	} else {
		a.setStatus(statusInfo, "unfolded")
	}
}

func (a *App) setStatus(kind statusKind, text string) {
	a.status, a.statusKind = text, kind
}

func (a *App) visible() []todo.Task {
	return a.list.Filtered(a.filter)
}

func (a *App) selected(visible []todo.Task) (todo.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(visible) {
		return todo.Task{}, false
	}
	return visible[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) addCmd(text string) tea.Cmd {
	return func() tea.Msg {
		t, err := a.list.Add(a.ctx, text)
		if err != nil {
			return errMsg{fmt.Errorf("add task: %w", err)}
		}
		return statusMsg{fmt.Sprintf("added %q", t.Text), statusSuccess}
	}
}

func (a *App) toggleCmd(t todo.Task) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.list.Toggle(a.ctx, t.ID); err != nil {
			return errMsg{fmt.Errorf("toggle task: %w", err)}
		}
		if t.Completed {
			return statusMsg{fmt.Sprintf("reopened %q", t.Text), statusInfo}
		}
		return statusMsg{fmt.Sprintf("completed %q", t.Text), statusSuccess}
	}
}

func (a *App) deleteCmd(t todo.Task) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.list.Delete(a.ctx, t.ID); err != nil {
			return errMsg{fmt.Errorf("delete task: %w", err)}
		}
		return statusMsg{fmt.Sprintf("deleted %q", t.Text), statusInfo}
	}
}

func (a *App) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.list.Reload(a.ctx); err != nil {
			return errMsg{fmt.Errorf("reload tasks: %w", err)}
		}
		return reloadedMsg{}
	}
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	ch := a.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storageChangedMsg{}
	}
}
