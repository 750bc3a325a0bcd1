package core

import "context"

// Repository is the persistence boundary for the task store. The store
// works against any implementation: a local JSON blob keeps whole
// collections behind two fixed keys, a SQL row store maps each task and
// activity entry to an individually addressable row. Save operations
// receive the full collection in its current order; implementations must
// preserve that order across a Load round-trip.
type Repository interface {
	// LoadTasks returns the persisted task collection in manual order.
	// A missing or unreadable backing store yields an empty collection,
	// never an error the caller has to special-case.
	LoadTasks(ctx context.Context) ([]Task, error)

	// SaveTasks persists the full task collection, replacing what was
	// stored before.
	SaveTasks(ctx context.Context, tasks []Task) error

	// LoadActivity returns the persisted activity log, newest first.
	LoadActivity(ctx context.Context) ([]ActivityEntry, error)

	// SaveActivity persists the full activity log, replacing what was
	// stored before.
	SaveActivity(ctx context.Context, entries []ActivityEntry) error
}
