package snapshot

import (
	"strings"
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{
		Tasks: []core.Task{{
			ID:         "t1",
			Title:      "Buy milk",
			Priority:   core.PriorityLow,
			Status:     core.TaskStatusPending,
			Category:   "personal",
			Tags:       []string{"errand"},
			DueDate:    &due,
			Subtasks:   []core.Subtask{{ID: "s1", Title: "find wallet"}},
			Recurrence: core.RecurrenceNone,
			CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		}},
		Activity: []core.ActivityEntry{{
			ID:        "a1",
			TaskID:    "t1",
			TaskTitle: "Buy milk",
			Action:    core.ActionCreated,
			Timestamp: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}},
		ExportedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "t1" {
		t.Fatalf("tasks = %+v", got.Tasks)
	}
	if got.Tasks[0].DueDate == nil || !got.Tasks[0].DueDate.Equal(due) {
		t.Fatalf("DueDate = %v, want %v", got.Tasks[0].DueDate, due)
	}
	if len(got.Activity) != 1 || got.Activity[0].Action != core.ActionCreated {
		t.Fatalf("activity = %+v", got.Activity)
	}
	if !got.ExportedAt.Equal(doc.ExportedAt) {
		t.Fatalf("ExportedAt = %v", got.ExportedAt)
	}
}

func TestDecode_CamelCaseFieldNames(t *testing.T) {
	data, err := Encode(Document{
		Tasks:    []core.Task{{ID: "t1", Title: "x"}},
		Activity: []core.ActivityEntry{{ID: "a1", TaskID: "t1", Action: core.ActionCreated}},
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, field := range []string{`"dueDate"`, `"createdAt"`, `"updatedAt"`, `"taskId"`, `"exportedAt"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("encoded document missing %s field", field)
		}
	}
}

func TestDecode_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"tasks": [`},
		{"missing collections", `{}`},
		{"tasks not array", `{"tasks": {}, "activity": []}`},
		{"task without id", `{"tasks": [{"title": "x"}], "activity": []}`},
		{"task without title", `{"tasks": [{"id": "t1"}], "activity": []}`},
		{"bad priority", `{"tasks": [{"id": "t1", "title": "x", "priority": "urgent"}], "activity": []}`},
		{"bad action", `{"tasks": [], "activity": [{"id": "a1", "action": "exploded"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !core.IsCategory(err, core.ErrCatValidation) {
				t.Fatalf("category = %s, want validation", core.GetCategory(err))
			}
		})
	}
}

func TestDecode_AppliesDefaults(t *testing.T) {
	data := `{"tasks": [{"id": "t1", "title": "bare"}], "activity": []}`
	doc, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	task := doc.Tasks[0]
	if task.Priority != core.PriorityMedium {
		t.Errorf("Priority = %s, want medium", task.Priority)
	}
	if task.Status != core.TaskStatusPending {
		t.Errorf("Status = %s, want pending", task.Status)
	}
	if task.Category != core.DefaultCategory {
		t.Errorf("Category = %s, want %s", task.Category, core.DefaultCategory)
	}
	if task.Recurrence != core.RecurrenceNone {
		t.Errorf("Recurrence = %s, want none", task.Recurrence)
	}
	if task.Tags == nil || task.Subtasks == nil {
		t.Error("Tags and Subtasks must be non-nil")
	}
	if task.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}
	if task.UpdatedAt.Before(task.CreatedAt) {
		t.Error("UpdatedAt before CreatedAt")
	}
}

func TestImportMode_IsValid(t *testing.T) {
	if !ImportModeReplace.IsValid() || !ImportModeMerge.IsValid() {
		t.Fatal("known modes must validate")
	}
	if ImportMode("overwrite").IsValid() {
		t.Fatal("unknown mode must not validate")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	if got := Filename(now); got != "taskflow-backup-2026-08-30.json" {
		t.Fatalf("Filename() = %q", got)
	}
}
