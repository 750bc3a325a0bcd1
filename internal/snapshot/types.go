// Package snapshot implements the backup document: a complete serialized
// copy of tasks and activity for export and restore.
package snapshot

import (
	"fmt"
	"time"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

// ImportMode controls how an imported document is applied to existing
// state.
type ImportMode string

const (
	// ImportModeReplace swaps the whole collection for the document
	// contents. Default for the local blob backend.
	ImportModeReplace ImportMode = "replace"

	// ImportModeMerge keeps existing entities and appends document
	// entities whose ids are not already present. Default for row-store
	// backends.
	ImportModeMerge ImportMode = "merge"
)

// IsValid reports whether m is a known import mode.
func (m ImportMode) IsValid() bool {
	return m == ImportModeReplace || m == ImportModeMerge
}

// Document is the transportable backup shape.
type Document struct {
	Tasks      []core.Task          `json:"tasks"`
	Activity   []core.ActivityEntry `json:"activity"`
	ExportedAt time.Time            `json:"exportedAt"`
}

// Filename returns the conventional date-stamped export file name.
func Filename(now time.Time) string {
	return fmt.Sprintf("taskflow-backup-%s.json", now.Format("2006-01-02"))
}
