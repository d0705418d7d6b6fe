// Package todo holds the ordered task list and mirrors it to key-value storage.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Task is a single todo item. ID is the creation timestamp in Unix milliseconds.
type Task struct {
	ID        int64     `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Filter is the list view mode.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ErrUnknownFilter is returned by ParseFilter.
var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter accepts all, active or completed. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrUnknownFilter, s)
	}
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, o := range Filters {
		if o == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Stats are derived counts over the full list.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
}

// FilterTasks returns the tasks visible under f, in list order.
func FilterTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ComputeStats counts tasks by completion.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}
