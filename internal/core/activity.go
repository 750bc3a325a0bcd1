package core

import (
	"time"

	"github.com/google/uuid"
)

// Action classifies a recorded mutation event.
type Action string

const (
	ActionCreated          Action = "created"
	ActionUpdated          Action = "updated"
	ActionDeleted          Action = "deleted"
	ActionCompleted        Action = "completed"
	ActionStatusChanged    Action = "status_changed"
	ActionSubtaskCompleted Action = "subtask_completed"
)

// ActivityEntry is an immutable, timestamped record of one mutation event.
// TaskID is a weak reference: the task may no longer exist. TaskTitle is a
// snapshot of the title at the time of the event.
type ActivityEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	TaskTitle string    `json:"taskTitle"`
	Action    Action    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxActivityEntries bounds the activity log. Older entries age out; the
// log is a ring of recent history, not a complete audit trail.
const MaxActivityEntries = 200

// ActivityLog is an append-only, newest-first record of mutations, capped
// at a fixed number of entries. Entries are never edited; the only removal
// operations are aging out and a full clear.
type ActivityLog struct {
	entries []ActivityEntry
	max     int
	now     func() time.Time
	newID   func() string
}

// ActivityLogOption configures the log.
type ActivityLogOption func(*ActivityLog)

// WithActivityClock overrides the timestamp source.
func WithActivityClock(now func() time.Time) ActivityLogOption {
	return func(l *ActivityLog) {
		l.now = now
	}
}

// WithActivityIDFunc overrides the entry id generator.
func WithActivityIDFunc(newID func() string) ActivityLogOption {
	return func(l *ActivityLog) {
		l.newID = newID
	}
}

// WithActivityCap overrides the entry cap.
func WithActivityCap(max int) ActivityLogOption {
	return func(l *ActivityLog) {
		if max > 0 {
			l.max = max
		}
	}
}

// NewActivityLog creates an empty activity log.
func NewActivityLog(opts ...ActivityLogOption) *ActivityLog {
	l := &ActivityLog{
		max:   MaxActivityEntries,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record inserts a new entry at the head of the log and truncates to the
// cap, dropping the oldest entries first.
func (l *ActivityLog) Record(taskID, taskTitle string, action Action, detail string) ActivityEntry {
	entry := ActivityEntry{
		ID:        l.newID(),
		TaskID:    taskID,
		TaskTitle: taskTitle,
		Action:    action,
		Detail:    detail,
		Timestamp: l.now(),
	}
	l.entries = append([]ActivityEntry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
	return entry
}

// Entries returns a copy of the log, newest first.
func (l *ActivityLog) Entries() []ActivityEntry {
	return append([]ActivityEntry(nil), l.entries...)
}

// Replace swaps the log contents, applying the cap. Used when loading
// persisted state and when importing a snapshot.
func (l *ActivityLog) Replace(entries []ActivityEntry) {
	l.entries = append([]ActivityEntry(nil), entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Clear removes all entries.
func (l *ActivityLog) Clear() {
	l.entries = nil
}

// Len returns the number of entries.
func (l *ActivityLog) Len() int {
	return len(l.entries)
}
