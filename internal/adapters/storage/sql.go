package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

// SQLRepository implements core.Repository on a relational row store.
// It works against SQLite for local use and PostgreSQL for remote use;
// every row is scoped to a user id so one database can hold several
// collections. Manual task order is materialized in sort_order, the
// activity log order in position.
type SQLRepository struct {
	db     *sqlx.DB
	userID string
	mu     sync.Mutex
}

// NewSQLiteRepository opens (or creates) a SQLite database at dbPath and
// runs migrations. The user id defaults to "local" when empty.
func NewSQLiteRepository(dbPath, userID string) (*SQLRepository, error) {
	if userID == "" {
		userID = "local"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, core.ErrStorage(core.CodeLoadFailed, "creating storage directory").WithCause(err)
	}

	// WAL mode for better concurrency
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, core.ErrStorage(core.CodeLoadFailed, "opening database").WithCause(err)
	}
	return newSQLRepository(db, userID)
}

// NewPostgresRepository connects to PostgreSQL with the given DSN and
// runs migrations. A user id is required: rows in a shared database must
// be scoped to their owner.
func NewPostgresRepository(dsn, userID string) (*SQLRepository, error) {
	if userID == "" {
		return nil, core.ErrValidation(core.CodeUserRequired, "postgres backend requires a user id")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, core.ErrStorage(core.CodeLoadFailed, "opening database").WithCause(err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, core.ErrStorage(core.CodeLoadFailed, "connecting to database").WithCause(err)
	}
	return newSQLRepository(db, userID)
}

func newSQLRepository(db *sqlx.DB, userID string) (*SQLRepository, error) {
	r := &SQLRepository{db: db, userID: userID}
	if err := r.migrate(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

func (r *SQLRepository) migrate() error {
	if _, err := r.db.Exec(migrationV1); err != nil {
		return fmt.Errorf("applying migration v1: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// taskRow is the relational shape of a task. Timestamps travel as RFC
// 3339 text, tags and subtasks as JSON text.
type taskRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Priority    string         `db:"priority"`
	Status      string         `db:"status"`
	Category    string         `db:"category"`
	Tags        string         `db:"tags"`
	DueDate     sql.NullString `db:"due_date"`
	Subtasks    string         `db:"subtasks"`
	Recurrence  string         `db:"recurrence"`
	SortOrder   int            `db:"sort_order"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

type activityRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	TaskID    string `db:"task_id"`
	TaskTitle string `db:"task_title"`
	Action    string `db:"action"`
	Detail    string `db:"detail"`
	Position  int    `db:"position"`
	Timestamp string `db:"timestamp"`
}

// LoadTasks reads the user's tasks in manual order.
func (r *SQLRepository) LoadTasks(ctx context.Context) ([]core.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []taskRow
	query := r.db.Rebind("SELECT * FROM tasks WHERE user_id = ? ORDER BY sort_order")
	if err := r.db.SelectContext(ctx, &rows, query, r.userID); err != nil {
		return nil, core.ErrStorage(core.CodeLoadFailed, "querying tasks").WithCause(err)
	}

	tasks := make([]core.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toTask()
		if err != nil {
			return nil, core.ErrState(core.CodeStateCorrupted, fmt.Sprintf("decoding task %s", row.ID)).WithCause(err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SaveTasks replaces the user's tasks wholesale inside one transaction,
// recording the collection order in sort_order.
func (r *SQLRepository) SaveTasks(ctx context.Context, tasks []core.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "beginning transaction").WithCause(err)
	}
	defer func() { _ = tx.Rollback() }()

	del := tx.Rebind("DELETE FROM tasks WHERE user_id = ?")
	if _, err := tx.ExecContext(ctx, del, r.userID); err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "deleting existing tasks").WithCause(err)
	}

	ins := tx.Rebind(`
		INSERT INTO tasks (
			id, user_id, title, description, priority, status, category,
			tags, due_date, subtasks, recurrence, sort_order, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, task := range tasks {
		row, err := newTaskRow(task, r.userID, i)
		if err != nil {
			return core.ErrStorage(core.CodeSaveFailed, fmt.Sprintf("encoding task %s", task.ID)).WithCause(err)
		}
		if _, err := tx.ExecContext(ctx, ins,
			row.ID, row.UserID, row.Title, row.Description, row.Priority,
			row.Status, row.Category, row.Tags, row.DueDate, row.Subtasks,
			row.Recurrence, row.SortOrder, row.CreatedAt, row.UpdatedAt,
		); err != nil {
			return core.ErrStorage(core.CodeSaveFailed, fmt.Sprintf("inserting task %s", task.ID)).WithCause(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "committing transaction").WithCause(err)
	}
	return nil
}

// LoadActivity reads the user's activity log, newest first as saved.
func (r *SQLRepository) LoadActivity(ctx context.Context) ([]core.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []activityRow
	query := r.db.Rebind(`SELECT * FROM activity WHERE user_id = ? ORDER BY position`)
	if err := r.db.SelectContext(ctx, &rows, query, r.userID); err != nil {
		return nil, core.ErrStorage(core.CodeLoadFailed, "querying activity").WithCause(err)
	}

	entries := make([]core.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntry()
		if err != nil {
			return nil, core.ErrState(core.CodeStateCorrupted, fmt.Sprintf("decoding activity %s", row.ID)).WithCause(err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SaveActivity replaces the user's activity log wholesale inside one
// transaction.
func (r *SQLRepository) SaveActivity(ctx context.Context, entries []core.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "beginning transaction").WithCause(err)
	}
	defer func() { _ = tx.Rollback() }()

	del := tx.Rebind("DELETE FROM activity WHERE user_id = ?")
	if _, err := tx.ExecContext(ctx, del, r.userID); err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "deleting existing activity").WithCause(err)
	}

	ins := tx.Rebind(`
		INSERT INTO activity (
			id, user_id, task_id, task_title, action, detail, position, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, entry := range entries {
		if _, err := tx.ExecContext(ctx, ins,
			entry.ID, r.userID, entry.TaskID, entry.TaskTitle,
			string(entry.Action), entry.Detail, i,
			entry.Timestamp.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return core.ErrStorage(core.CodeSaveFailed, fmt.Sprintf("inserting activity %s", entry.ID)).WithCause(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "committing transaction").WithCause(err)
	}
	return nil
}

func newTaskRow(t core.Task, userID string, sortOrder int) (taskRow, error) {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return taskRow{}, fmt.Errorf("marshaling tags: %w", err)
	}
	subtasks, err := json.Marshal(t.Subtasks)
	if err != nil {
		return taskRow{}, fmt.Errorf("marshaling subtasks: %w", err)
	}

	row := taskRow{
		ID:          t.ID,
		UserID:      userID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Category:    t.Category,
		Tags:        string(tags),
		Subtasks:    string(subtasks),
		Recurrence:  string(t.Recurrence),
		SortOrder:   sortOrder,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		row.DueDate = sql.NullString{String: t.DueDate.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	return row, nil
}

func (row taskRow) toTask() (core.Task, error) {
	var tags []string
	if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
		return core.Task{}, fmt.Errorf("unmarshaling tags: %w", err)
	}
	var subtasks []core.Subtask
	if err := json.Unmarshal([]byte(row.Subtasks), &subtasks); err != nil {
		return core.Task{}, fmt.Errorf("unmarshaling subtasks: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return core.Task{}, fmt.Errorf("parsing created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return core.Task{}, fmt.Errorf("parsing updated_at: %w", err)
	}

	task := core.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    core.Priority(row.Priority),
		Status:      core.TaskStatus(row.Status),
		Category:    row.Category,
		Tags:        tags,
		Subtasks:    subtasks,
		Recurrence:  core.Recurrence(row.Recurrence),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if row.DueDate.Valid {
		due, err := time.Parse(time.RFC3339Nano, row.DueDate.String)
		if err != nil {
			return core.Task{}, fmt.Errorf("parsing due_date: %w", err)
		}
		task.DueDate = &due
	}
	return task, nil
}

func (row activityRow) toEntry() (core.ActivityEntry, error) {
	ts, err := time.Parse(time.RFC3339Nano, row.Timestamp)
	if err != nil {
		return core.ActivityEntry{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	return core.ActivityEntry{
		ID:        row.ID,
		TaskID:    row.TaskID,
		TaskTitle: row.TaskTitle,
		Action:    core.Action(row.Action),
		Detail:    row.Detail,
		Timestamp: ts,
	}, nil
}

var _ core.Repository = (*SQLRepository)(nil)
