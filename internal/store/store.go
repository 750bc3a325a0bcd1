// Package store implements the task store: the single authority for task
// and activity state. All mutations pass through it so that activity
// logging and persistence stay consistent with state changes.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

// Store owns the in-memory task collection and activity log and drives a
// core.Repository for durability. It is constructed once per session and
// passed by reference to consumers.
//
// Mutations are applied optimistically: in-memory state is updated first,
// then persisted. A failed write is surfaced to the caller but the applied
// state is not rolled back.
type Store struct {
	mu       sync.Mutex
	repo     core.Repository
	logger   *slog.Logger
	tasks    []core.Task
	activity *core.ActivityLog
	now      func() time.Time
	newID    func() string
}

// Option configures the store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDFunc overrides the id generator.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithActivityCap overrides the activity log cap.
func WithActivityCap(max int) Option {
	return func(s *Store) {
		s.activity = core.NewActivityLog(
			core.WithActivityCap(max),
			core.WithActivityClock(s.now),
			core.WithActivityIDFunc(s.newID),
		)
	}
}

// New creates a store and loads persisted state from the repository.
func New(ctx context.Context, repo core.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:   repo,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.activity == nil {
		s.activity = core.NewActivityLog(
			core.WithActivityClock(s.now),
			core.WithActivityIDFunc(s.newID),
		)
	}

	tasks, err := repo.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	entries, err := repo.LoadActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activity: %w", err)
	}

	s.tasks = tasks
	s.activity.Replace(entries)
	return s, nil
}

// Create assigns identity and timestamps to the draft, prepends the task
// to the collection (newest first) and records a "created" entry. Defaults
// fill zero-value fields: priority medium, status pending, category
// personal, recurrence none.
func (s *Store) Create(ctx context.Context, draft core.TaskDraft) (core.Task, error) {
	if err := draft.Validate(); err != nil {
		return core.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := core.Task{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Status:      draft.Status,
		Category:    draft.Category,
		Tags:        core.NormalizeTags(draft.Tags),
		DueDate:     draft.DueDate,
		Subtasks:    append([]core.Subtask(nil), draft.Subtasks...),
		Recurrence:  draft.Recurrence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = core.PriorityMedium
	}
	if task.Status == "" {
		task.Status = core.TaskStatusPending
	}
	if task.Category == "" {
		task.Category = core.DefaultCategory
	}
	if task.Recurrence == "" {
		task.Recurrence = core.RecurrenceNone
	}

	s.tasks = append([]core.Task{task}, s.tasks...)
	s.activity.Record(task.ID, task.Title, core.ActionCreated, "")

	return task.Clone(), s.persist(ctx, true, true)
}

// Update merges the partial update into the task and bumps UpdatedAt.
// Status transitions are logged as "completed" when the new status is
// completed, otherwise as "status_changed" with the transition in the
// detail; any other change logs "updated". An unknown id is a silent
// miss: nothing is changed and nothing is logged.
func (s *Store) Update(ctx context.Context, id string, upd core.TaskUpdate) (core.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Task{}, false, nil
	}

	task := &s.tasks[i]
	oldStatus := task.Status
	if upd.Tags != nil {
		upd.Tags = core.NormalizeTags(upd.Tags)
	}
	upd.Apply(task)
	task.UpdatedAt = s.now()

	switch {
	case upd.Status != nil && *upd.Status != oldStatus && *upd.Status == core.TaskStatusCompleted:
		s.activity.Record(task.ID, task.Title, core.ActionCompleted, "")
	case upd.Status != nil && *upd.Status != oldStatus:
		detail := fmt.Sprintf("%s → %s", oldStatus, *upd.Status)
		s.activity.Record(task.ID, task.Title, core.ActionStatusChanged, detail)
	default:
		s.activity.Record(task.ID, task.Title, core.ActionUpdated, "")
	}

	return task.Clone(), true, s.persist(ctx, true, true)
}

// Delete removes the task and its subtasks and records a "deleted" entry
// with the last known title. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	title := s.tasks[i].Title
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.activity.Record(id, title, core.ActionDeleted, "")

	return s.persist(ctx, true, true)
}

// ToggleSubtask flips the completed flag on the named subtask, bumps the
// parent's UpdatedAt and records a "subtask_completed" entry describing
// the new state.
func (s *Store) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (core.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return core.Task{}, false, nil
	}
	task := &s.tasks[i]

	for j := range task.Subtasks {
		if task.Subtasks[j].ID != subtaskID {
			continue
		}
		task.Subtasks[j].Completed = !task.Subtasks[j].Completed
		task.UpdatedAt = s.now()

		state := "unchecked"
		if task.Subtasks[j].Completed {
			state = "checked"
		}
		detail := fmt.Sprintf("%s %q", state, task.Subtasks[j].Title)
		s.activity.Record(task.ID, task.Title, core.ActionSubtaskCompleted, detail)

		return task.Clone(), true, s.persist(ctx, true, true)
	}
	return core.Task{}, false, nil
}

// AddSubtask appends a new unchecked subtask and bumps the parent's
// UpdatedAt.
func (s *Store) AddSubtask(ctx context.Context, taskID, title string) (core.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return core.Task{}, false, nil
	}
	task := &s.tasks[i]
	task.Subtasks = append(task.Subtasks, core.Subtask{
		ID:    s.newID(),
		Title: title,
	})
	task.UpdatedAt = s.now()

	return task.Clone(), true, s.persist(ctx, true, false)
}

// DeleteSubtask removes the subtask by id and bumps the parent's
// UpdatedAt. Unknown ids are a no-op.
func (s *Store) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (core.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return core.Task{}, false, nil
	}
	task := &s.tasks[i]

	for j := range task.Subtasks {
		if task.Subtasks[j].ID == subtaskID {
			task.Subtasks = append(task.Subtasks[:j], task.Subtasks[j+1:]...)
			task.UpdatedAt = s.now()
			return task.Clone(), true, s.persist(ctx, true, false)
		}
	}
	return core.Task{}, false, nil
}

// Reorder removes the moved task from its current position and reinserts
// it at the position the target currently occupies. This manual order is
// distinct from creation time and persists across reloads. A no-op if
// either id is absent.
func (s *Store) Reorder(ctx context.Context, movedID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.indexOf(movedID)
	to := s.indexOf(targetID)
	if from < 0 || to < 0 || from == to {
		return nil
	}

	moved := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
	s.tasks = append(s.tasks[:to], append([]core.Task{moved}, s.tasks[to:]...)...)

	return s.persist(ctx, true, false)
}

// Stats derives aggregate statistics from the current collection.
func (s *Store) Stats() core.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.ComputeStats(s.tasks, s.now())
}

// Tasks returns a deep copy of the task collection in manual order.
func (s *Store) Tasks() []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneTasks()
}

// List returns the filtered view of the collection, preserving order.
func (s *Store) List(f Filter) []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f.Apply(s.cloneTasks())
}

// Activity returns a copy of the activity log, newest first.
func (s *Store) Activity() []core.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity.Entries()
}

// ClearActivity empties the activity log.
func (s *Store) ClearActivity(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity.Clear()
	return s.persist(ctx, false, true)
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) cloneTasks() []core.Task {
	out := make([]core.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}

// persist writes the changed collections through the repository. The
// in-memory state is already applied; a write failure is logged and
// returned but not rolled back.
func (s *Store) persist(ctx context.Context, tasksChanged, activityChanged bool) error {
	if tasksChanged {
		if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
			s.logger.Warn("task save failed, in-memory state kept", "error", err)
			return core.ErrStorage(core.CodeSaveFailed, "persisting tasks").WithCause(err)
		}
	}
	if activityChanged {
		if err := s.repo.SaveActivity(ctx, s.activity.Entries()); err != nil {
			s.logger.Warn("activity save failed, in-memory state kept", "error", err)
			return core.ErrStorage(core.CodeSaveFailed, "persisting activity").WithCause(err)
		}
	}
	return nil
}
