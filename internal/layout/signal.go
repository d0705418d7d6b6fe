package layout

import (
	"sync"

	"github.com/google/uuid"
)

// ColorScheme of the host terminal.
type ColorScheme string

const (
	SchemeDark  ColorScheme = "dark"
	SchemeLight ColorScheme = "light"
)

// Snapshot is the full set of signals a layout pass reads.
type Snapshot struct {
	Viewport Viewport
	Device   DeviceContext
	Scheme   ColorScheme
}

// Source holds the current snapshot and notifies observers when it changes.
type Source struct {
	mu      sync.Mutex
	current Snapshot
	order   []uuid.UUID
	subs    map[uuid.UUID]func(Snapshot)
}

// NewSource returns a source seeded with initial.
func NewSource(initial Snapshot) *Source {
	return &Source{
		current: initial,
		subs:    make(map[uuid.UUID]func(Snapshot)),
	}
}

// Current returns the latest published snapshot.
func (s *Source) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn and returns a function that removes it. fn is not
// called for the current snapshot, only for later changes.
func (s *Source) Subscribe(fn func(Snapshot)) (cancel func()) {
	id := uuid.New()
	s.mu.Lock()
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Source) unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Publish stores snap. Observers run synchronously, in subscription order,
// only when snap differs from the previous snapshot. It reports whether
// anything changed.
func (s *Source) Publish(snap Snapshot) bool {
	s.mu.Lock()
	if snap == s.current {
		s.mu.Unlock()
		return false
	}
	s.current = snap
	fns := make([]func(Snapshot), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	return true
}

// Subscribers returns the number of registered observers.
func (s *Source) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
