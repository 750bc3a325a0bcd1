package core

import (
	"math"
	"time"
)

// Stats is a read-only aggregate over the task collection.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// ComputeStats derives statistics from the task collection. The completion
// rate is a rounded percentage and is 0 for an empty collection.
func ComputeStats(tasks []Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusPending:
			s.Pending++
		case TaskStatusInProgress:
			s.InProgress++
		case TaskStatusCompleted:
			s.Completed++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
