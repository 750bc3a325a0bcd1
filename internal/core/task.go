package core

import (
	"strings"
	"time"
)

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Recurrence is a display label describing how often a task repeats.
// It is never expanded into future task instances.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

// IsValid reports whether r is a known recurrence label.
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	}
	return false
}

// Subtask is a checklist item owned by exactly one task. It has no
// lifecycle outside its parent.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a user-defined unit of work.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate"`
	Subtasks    []Subtask  `json:"subtasks"`
	Recurrence  Recurrence `json:"recurrence"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Subtasks != nil {
		c.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return c
}

// Overdue reports whether the task has a due date in the past and is not
// completed.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// TaskDraft carries the user-supplied fields for task creation. The store
// assigns identity and timestamps and fills zero-value fields with defaults.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate"`
	Subtasks    []Subtask  `json:"subtasks"`
	Recurrence  Recurrence `json:"recurrence"`
}

// Validate checks draft invariants enforced at the creation boundary.
func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrValidation(CodeTitleRequired, "task title cannot be empty")
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return ErrValidation(CodeInvalidPriority, "unknown priority: "+string(d.Priority))
	}
	if d.Status != "" && !d.Status.IsValid() {
		return ErrValidation(CodeInvalidStatus, "unknown status: "+string(d.Status))
	}
	if d.Recurrence != "" && !d.Recurrence.IsValid() {
		return ErrValidation(CodeInvalidRecurrence, "unknown recurrence: "+string(d.Recurrence))
	}
	return nil
}

// TaskUpdate is a partial update applied to an existing task. Nil fields
// are left unchanged.
type TaskUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	ClearDue    bool        `json:"clearDue,omitempty"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
}

// Apply merges the update into the task. Timestamps are the caller's
// responsibility.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Tags != nil {
		t.Tags = append([]string(nil), u.Tags...)
	}
	if u.ClearDue {
		t.DueDate = nil
	} else if u.DueDate != nil {
		due := *u.DueDate
		t.DueDate = &due
	}
	if u.Recurrence != nil {
		t.Recurrence = *u.Recurrence
	}
}

// NormalizeTags trims whitespace and drops empty and duplicate tags while
// preserving insertion order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
