package store

import (
	"context"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
	"github.com/hugo-lorenzo-mato/taskflow/internal/snapshot"
)

// Export serializes the full task collection and activity log into one
// transportable document.
func (s *Store) Export() snapshot.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot.Document{
		Tasks:      s.cloneTasks(),
		Activity:   s.activity.Entries(),
		ExportedAt: s.now(),
	}
}

// Import applies a previously exported document. Replace mode swaps both
// collections wholesale; merge mode appends tasks and activity entries
// whose ids are not already present. The document must already be
// validated (snapshot.Decode); persistence failure is surfaced but the
// applied in-memory state is kept.
func (s *Store) Import(ctx context.Context, doc snapshot.Document, mode snapshot.ImportMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case snapshot.ImportModeMerge:
		have := make(map[string]struct{}, len(s.tasks))
		for i := range s.tasks {
			have[s.tasks[i].ID] = struct{}{}
		}
		for _, t := range doc.Tasks {
			if _, ok := have[t.ID]; ok {
				continue
			}
			s.tasks = append(s.tasks, t.Clone())
		}

		seen := make(map[string]struct{})
		for _, e := range s.activity.Entries() {
			seen[e.ID] = struct{}{}
		}
		merged := s.activity.Entries()
		for _, e := range doc.Activity {
			if _, ok := seen[e.ID]; ok {
				continue
			}
			merged = append(merged, e)
		}
		s.activity.Replace(merged)

	default: // replace
		tasks := make([]core.Task, len(doc.Tasks))
		for i, t := range doc.Tasks {
			tasks[i] = t.Clone()
		}
		s.tasks = tasks
		s.activity.Replace(doc.Activity)
	}

	return s.persist(ctx, true, true)
}
