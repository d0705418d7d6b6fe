package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// StorageKey is the key-value entry holding the serialized list.
const StorageKey = "tasks"

// Storage is a key-value entry store. Get reports ok=false for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// List is the in-memory task list. Every mutation rewrites the whole list
// to storage; a failed write rolls the mutation back.
type List struct {
	mu      sync.Mutex
	tasks   []Task
	storage Storage
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a List.
type Option func(*List)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithLogger sets the logger used for recoverable storage problems.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// Open loads the list from storage. A missing entry is an empty list.
func Open(ctx context.Context, storage Storage, opts ...Option) (*List, error) {
	l := &List{
		storage: storage,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload replaces the in-memory list with what storage holds.
func (l *List) Reload(ctx context.Context) error {
	tasks, err := l.load(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.tasks = tasks
	l.mu.Unlock()
	return nil
}

func (l *List) load(ctx context.Context) ([]Task, error) {
	raw, ok, err := l.storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", StorageKey, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		l.logger.Warn("stored tasks unreadable, starting empty", "key", StorageKey, "error", err)
		return nil, nil
	}
	return tasks, nil
}

// persist writes next and swaps it in. Caller holds mu.
func (l *List) persist(ctx context.Context, next []Task) error {
	if next == nil {
		next = []Task{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := l.storage.Put(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	l.tasks = next
	return nil
}

// Add appends a task. Text is stored as given.
func (l *List) Add(ctx context.Context, text string) (Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Stored as UTC without a monotonic reading so a decoded copy is identical.
	now := l.now().Round(0).UTC()
	id := now.UnixMilli()
	for _, t := range l.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	task := Task{ID: id, Text: text, CreatedAt: now}
	next := append(slices.Clone(l.tasks), task)
	if err := l.persist(ctx, next); err != nil {
		return Task{}, err
	}
	l.logger.Debug("task added", "id", task.ID)
	return task, nil
}

// Toggle flips completion on the task with id. It reports false, without
// writing, when no such task exists.
func (l *List) Toggle(ctx context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := slices.Clone(l.tasks)
	next[idx].Completed = !next[idx].Completed
	if err := l.persist(ctx, next); err != nil {
		return false, err
	}
	l.logger.Debug("task toggled", "id", id, "completed", next[idx].Completed)
	return true, nil
}

// Delete removes the task with id. It reports false, without writing, when
// no such task exists.
func (l *List) Delete(ctx context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := slices.Delete(slices.Clone(l.tasks), idx, idx+1)
	if err := l.persist(ctx, next); err != nil {
		return false, err
	}
	l.logger.Debug("task deleted", "id", id)
	return true, nil
}

func (l *List) indexOf(id int64) int {
	return slices.IndexFunc(l.tasks, func(t Task) bool { return t.ID == id })
}

// Tasks returns a copy of the full list.
func (l *List) Tasks() []Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.tasks)
}

// Filtered returns the tasks visible under f.
func (l *List) Filtered(f Filter) []Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return FilterTasks(l.tasks, f)
}

// Stats counts the full list.
func (l *List) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ComputeStats(l.tasks)
}
