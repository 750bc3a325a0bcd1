package store

import (
	"testing"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

func fixtureTasks() []core.Task {
	return []core.Task{
		{
			ID:       "t1",
			Title:    "Buy milk",
			Priority: core.PriorityLow,
			Status:   core.TaskStatusPending,
			Category: "personal",
			Tags:     []string{"errand"},
		},
		{
			ID:          "t2",
			Title:       "Ship release",
			Description: "cut the v2 tag",
			Priority:    core.PriorityHigh,
			Status:      core.TaskStatusInProgress,
			Category:    "work",
			Tags:        []string{"deploy", "urgent"},
		},
		{
			ID:       "t3",
			Title:    "Morning run",
			Priority: core.PriorityMedium,
			Status:   core.TaskStatusCompleted,
			Category: "health",
		},
	}
}

func TestFilter_Match(t *testing.T) {
	tasks := fixtureTasks()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty matches all", Filter{}, []string{"t1", "t2", "t3"}},
		{"all wildcard", Filter{Category: "all", Status: "all", Priority: "all"}, []string{"t1", "t2", "t3"}},
		{"category", Filter{Category: "work"}, []string{"t2"}},
		{"status", Filter{Status: "completed"}, []string{"t3"}},
		{"priority", Filter{Priority: "high"}, []string{"t2"}},
		{"search title case-insensitive", Filter{Search: "MILK"}, []string{"t1"}},
		{"search description", Filter{Search: "v2 tag"}, []string{"t2"}},
		{"search tag", Filter{Search: "urgent"}, []string{"t2"}},
		{"predicates are ANDed", Filter{Category: "work", Status: "pending"}, []string{}},
		{"category plus search", Filter{Category: "personal", Search: "milk"}, []string{"t1"}},
		{"no match", Filter{Search: "nothing here"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(tasks)
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() returned %d tasks, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Fatalf("Apply()[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilter_ApplyPreservesOrder(t *testing.T) {
	tasks := fixtureTasks()
	got := Filter{}.Apply(tasks)
	for i := range tasks {
		if got[i].ID != tasks[i].ID {
			t.Fatalf("order changed at %d: got %s, want %s", i, got[i].ID, tasks[i].ID)
		}
	}
}
