package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

// Backend names a persistence backend.
type Backend string

const (
	// BackendJSON is the local JSON blob store, the default.
	BackendJSON Backend = "json"

	// BackendSQLite is the local SQLite row store.
	BackendSQLite Backend = "sqlite"

	// BackendPostgres is the remote PostgreSQL row store.
	BackendPostgres Backend = "postgres"
)

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendJSON, BackendSQLite, BackendPostgres:
		return true
	}
	return false
}

// Options configures repository creation.
type Options struct {
	// Backend selects the persistence backend. Empty means json.
	Backend Backend

	// Dir is the data directory for file-backed backends.
	Dir string

	// DSN is the connection string for the postgres backend.
	DSN string

	// UserID scopes rows in the row stores. Required for postgres,
	// defaults to "local" for sqlite, ignored by json.
	UserID string

	// Logger is used for recovery warnings. Defaults to slog.Default.
	Logger *slog.Logger
}

// NewRepository creates the repository for the configured backend.
func NewRepository(opts Options) (core.Repository, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendJSON
	}

	switch backend {
	case BackendJSON:
		var jsonOpts []JSONRepositoryOption
		if opts.Logger != nil {
			jsonOpts = append(jsonOpts, WithJSONLogger(opts.Logger))
		}
		return NewJSONRepository(opts.Dir, jsonOpts...), nil

	case BackendSQLite:
		return NewSQLiteRepository(filepath.Join(opts.Dir, "taskflow.db"), opts.UserID)

	case BackendPostgres:
		if opts.DSN == "" {
			return nil, core.ErrValidation(core.CodeInvalidConfig, "postgres backend requires a DSN")
		}
		return NewPostgresRepository(opts.DSN, opts.UserID)

	default:
		return nil, core.ErrValidation(core.CodeInvalidConfig, fmt.Sprintf("unknown storage backend %q", backend))
	}
}

// Closeable is an optional interface for repositories that need cleanup.
type Closeable interface {
	Close() error
}

// CloseRepository safely closes a repository if it implements Closeable.
func CloseRepository(repo core.Repository) error {
	if closeable, ok := repo.(Closeable); ok {
		return closeable.Close()
	}
	return nil
}
