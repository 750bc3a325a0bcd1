// Package testutil provides shared test fixtures.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

// MemRepository implements core.Repository in memory, with optional
// failure injection for exercising the optimistic-write error path.
type MemRepository struct {
	mu        sync.Mutex
	tasks     []core.Task
	activity  []core.ActivityEntry
	saveCalls int

	// FailSaves makes every save return an error while leaving stored
	// state untouched.
	FailSaves bool
}

// NewMemRepository creates an empty in-memory repository.
func NewMemRepository() *MemRepository {
	return &MemRepository{}
}

// LoadTasks returns the stored task collection.
func (r *MemRepository) LoadTasks(_ context.Context) ([]core.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Task(nil), r.tasks...), nil
}

// SaveTasks replaces the stored task collection.
func (r *MemRepository) SaveTasks(_ context.Context, tasks []core.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.FailSaves {
		return fmt.Errorf("injected save failure")
	}
	r.tasks = append([]core.Task(nil), tasks...)
	return nil
}

// LoadActivity returns the stored activity log.
func (r *MemRepository) LoadActivity(_ context.Context) ([]core.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.ActivityEntry(nil), r.activity...), nil
}

// SaveActivity replaces the stored activity log.
func (r *MemRepository) SaveActivity(_ context.Context, entries []core.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSaves {
		return fmt.Errorf("injected save failure")
	}
	r.activity = append([]core.ActivityEntry(nil), entries...)
	return nil
}

// Seed sets the stored state directly.
func (r *MemRepository) Seed(tasks []core.Task, activity []core.ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append([]core.Task(nil), tasks...)
	r.activity = append([]core.ActivityEntry(nil), activity...)
}

// SavedTasks returns the last persisted task collection.
func (r *MemRepository) SavedTasks() []core.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Task(nil), r.tasks...)
}

// SaveCalls returns how many task saves were attempted.
func (r *MemRepository) SaveCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveCalls
}

// SequentialIDs returns an id generator producing "id-1", "id-2", ...
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// TickingClock returns a clock advancing one second per call from base.
func TickingClock(base time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

var _ core.Repository = (*MemRepository)(nil)
