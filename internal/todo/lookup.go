package todo

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("ambiguous task reference")
)

// maxSuggestDistance bounds how far a "did you mean" candidate may be.
const maxSuggestDistance = 3

// Resolve finds the task ref points at. A number is first read as a 1-based
// position in tasks, then as an id. Anything else is matched against task
// text: case-insensitive exact match first, then a unique substring.
func Resolve(tasks []Task, ref string) (Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if n, err := strconv.ParseInt(strings.TrimPrefix(ref, "#"), 10, 64); err == nil {
		if n >= 1 && n <= int64(len(tasks)) {
			return tasks[n-1], nil
		}
		for _, t := range tasks {
			if t.ID == n {
				return t, nil
			}
		}
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	needle := strings.ToLower(ref)
	for _, t := range tasks {
		if strings.ToLower(strings.TrimSpace(t.Text)) == needle {
			return t, nil
		}
	}

	var matches []Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		if s := Suggest(tasks, ref); len(s) > 0 {
			return Task{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, ref, s[0])
		}
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	default:
		return Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguous, ref, len(matches))
	}
}

// Suggest returns task texts within a small edit distance of ref, closest first.
func Suggest(tasks []Task, ref string) []string {
	type scored struct {
		text string
		dist int
	}
	needle := strings.ToLower(strings.TrimSpace(ref))
	var out []scored
	seen := make(map[string]bool)
	for _, t := range tasks {
		text := strings.TrimSpace(t.Text)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		d := levenshtein.ComputeDistance(needle, strings.ToLower(text))
		if d <= maxSuggestDistance {
			out = append(out, scored{text: text, dist: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	texts := make([]string, len(out))
	for i, s := range out {
		texts[i] = s.text
	}
	return texts
}
