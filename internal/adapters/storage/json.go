// Package storage provides the persistence backends behind
// core.Repository: a JSON blob store for local single-user use and a
// sqlx row store for SQLite and PostgreSQL.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

// JSONRepository implements core.Repository with two JSON files, one per
// collection. Each file carries an envelope with a checksum so corruption
// is detected on load rather than propagated into state.
type JSONRepository struct {
	tasksPath    string
	activityPath string
	logger       *slog.Logger
}

// JSONRepositoryOption configures the repository.
type JSONRepositoryOption func(*JSONRepository)

// WithJSONLogger sets the repository logger.
func WithJSONLogger(logger *slog.Logger) JSONRepositoryOption {
	return func(r *JSONRepository) {
		r.logger = logger
	}
}

// NewJSONRepository creates a JSON repository rooted at dir. Files are
// created lazily on first save.
func NewJSONRepository(dir string, opts ...JSONRepositoryOption) *JSONRepository {
	r := &JSONRepository{
		tasksPath:    filepath.Join(dir, "tasks.json"),
		activityPath: filepath.Join(dir, "activity.json"),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// envelope wraps a persisted collection with integrity metadata. The
// checksum covers the raw payload bytes.
type envelope struct {
	Version   int             `json:"version"`
	Checksum  string          `json:"checksum"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// LoadTasks reads the task collection. A missing or unrecoverable file
// yields an empty collection, never an error.
func (r *JSONRepository) LoadTasks(_ context.Context) ([]core.Task, error) {
	var tasks []core.Task
	if err := r.load(r.tasksPath, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []core.Task{}
	}
	return tasks, nil
}

// SaveTasks writes the full task collection atomically, keeping the
// previous file as a .bak fallback.
func (r *JSONRepository) SaveTasks(_ context.Context, tasks []core.Task) error {
	return r.save(r.tasksPath, tasks)
}

// LoadActivity reads the activity log, newest first as saved.
func (r *JSONRepository) LoadActivity(_ context.Context) ([]core.ActivityEntry, error) {
	var entries []core.ActivityEntry
	if err := r.load(r.activityPath, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []core.ActivityEntry{}
	}
	return entries, nil
}

// SaveActivity writes the full activity log atomically.
func (r *JSONRepository) SaveActivity(_ context.Context, entries []core.ActivityEntry) error {
	return r.save(r.activityPath, entries)
}

func (r *JSONRepository) save(path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "creating storage directory").WithCause(err)
	}

	// Keep the previous generation around for recovery.
	if data, err := os.ReadFile(path); err == nil {
		if err := atomicWriteFile(path+".bak", data, 0o644); err != nil {
			return core.ErrStorage(core.CodeSaveFailed, "writing backup file").WithCause(err)
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "marshaling payload").WithCause(err)
	}
	hash := sha256.Sum256(raw)

	env := envelope{
		Version:   1,
		Checksum:  hex.EncodeToString(hash[:]),
		UpdatedAt: time.Now(),
		Payload:   raw,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "marshaling envelope").WithCause(err)
	}

	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return core.ErrStorage(core.CodeSaveFailed, "writing storage file").WithCause(err)
	}
	return nil
}

func (r *JSONRepository) load(path string, out interface{}) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if err := r.loadFromPath(path, out); err != nil {
		r.logger.Warn("storage file unreadable, trying backup", "path", path, "error", err)
		if bakErr := r.loadFromPath(path+".bak", out); bakErr != nil {
			// Unrecoverable store: start from an empty collection
			// rather than refusing to run.
			r.logger.Warn("backup also unreadable, starting empty", "path", path, "error", bakErr)
		}
	}
	return nil
}

func (r *JSONRepository) loadFromPath(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.ErrStorage(core.CodeLoadFailed, "reading storage file").WithCause(err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return core.ErrState(core.CodeStateCorrupted, "unmarshaling envelope").WithCause(err)
	}

	hash := sha256.Sum256(env.Payload)
	if hex.EncodeToString(hash[:]) != env.Checksum {
		return core.ErrState(core.CodeStateCorrupted, "checksum mismatch")
	}

	if err := json.Unmarshal(env.Payload, out); err != nil {
		return core.ErrState(core.CodeStateCorrupted, "unmarshaling payload").WithCause(err)
	}
	return nil
}

// TasksPath returns the tasks file path.
func (r *JSONRepository) TasksPath() string {
	return r.tasksPath
}

// ActivityPath returns the activity file path.
func (r *JSONRepository) ActivityPath() string {
	return r.activityPath
}

var _ core.Repository = (*JSONRepository)(nil)
