package core

import (
	"testing"
	"time"
)

func TestTaskUpdate_Apply(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task := Task{
		Title:    "Buy milk",
		Priority: PriorityLow,
		Status:   TaskStatusPending,
		Category: "personal",
	}

	title := "Buy oat milk"
	status := TaskStatusCompleted
	upd := TaskUpdate{
		Title:   &title,
		Status:  &status,
		Tags:    []string{"errand"},
		DueDate: &due,
	}
	upd.Apply(&task)

	if task.Title != "Buy oat milk" {
		t.Fatalf("Title = %q, want %q", task.Title, "Buy oat milk")
	}
	if task.Status != TaskStatusCompleted {
		t.Fatalf("Status = %s, want completed", task.Status)
	}
	if task.Priority != PriorityLow {
		t.Fatalf("Priority changed unexpectedly: %s", task.Priority)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("DueDate = %v, want %v", task.DueDate, due)
	}

	upd = TaskUpdate{ClearDue: true}
	upd.Apply(&task)
	if task.DueDate != nil {
		t.Fatalf("expected DueDate cleared, got %v", task.DueDate)
	}
}

func TestTask_Clone_Independence(t *testing.T) {
	due := time.Now()
	task := Task{
		ID:       "t1",
		Tags:     []string{"a", "b"},
		Subtasks: []Subtask{{ID: "s1", Title: "step"}},
		DueDate:  &due,
	}

	clone := task.Clone()
	clone.Tags[0] = "mutated"
	clone.Subtasks[0].Completed = true
	*clone.DueDate = due.Add(time.Hour)

	if task.Tags[0] != "a" {
		t.Fatalf("clone mutation leaked into original tags")
	}
	if task.Subtasks[0].Completed {
		t.Fatalf("clone mutation leaked into original subtasks")
	}
	if !task.DueDate.Equal(due) {
		t.Fatalf("clone mutation leaked into original due date")
	}
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: TaskStatusPending}, false},
		{"past due pending", Task{Status: TaskStatusPending, DueDate: &past}, true},
		{"past due completed", Task{Status: TaskStatusCompleted, DueDate: &past}, false},
		{"future due", Task{Status: TaskStatusPending, DueDate: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Fatalf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskDraft_Validate(t *testing.T) {
	if err := (TaskDraft{Title: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if err := (TaskDraft{Title: "ok", Priority: "urgent"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
	if err := (TaskDraft{Title: "ok", Priority: PriorityHigh, Status: TaskStatusPending}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" go ", "go", "", "work", "go"})
	want := []string{"go", "work"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
