package store

import (
	"strings"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

// FilterAll is the wildcard predicate value. An empty string means the
// same thing.
const FilterAll = "all"

// Filter selects a display subset of the task collection. All predicates
// are ANDed; the derivation is pure and never persisted.
type Filter struct {
	Category string
	Status   string
	Priority string
	Search   string
}

// Match reports whether the task passes every predicate. The search term
// is a case-insensitive substring match against title, description or any
// tag; an empty term matches everything.
func (f Filter) Match(t core.Task) bool {
	if !wildcard(f.Category) && t.Category != f.Category {
		return false
	}
	if !wildcard(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if !wildcard(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	if f.Search == "" {
		return true
	}

	q := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the matching subset, preserving the input order.
func (f Filter) Apply(tasks []core.Task) []core.Task {
	out := make([]core.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func wildcard(v string) bool {
	return v == "" || v == FilterAll
}
