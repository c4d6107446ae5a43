package model

import (
	"math"
	"strings"
	"time"
)

// Subtask is a leaf work item owned by exactly one task.
type Subtask struct {
	ID          string
	Title       string
	Description string
	Status      Status
	// FinishedAt is set if and only if the status is done.
	FinishedAt     *time.Time
	EstimatedHours float64
	// ActualHours is only meaningful when the subtask is done.
	ActualHours *float64
}

// Task is a top level work item. When it has subtasks its status and finish
// time are derived from them.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	FinishedAt  *time.Time
	Subtasks    []Subtask
}

// Done returns true if the subtask is done.
func (s Subtask) Done() bool { return s.Status == StatusDone }

// Done returns true if the task is done.
func (t Task) Done() bool { return t.Status == StatusDone }

// HasSubtasks returns true if the task status is derived from subtasks.
func (t Task) HasSubtasks() bool { return len(t.Subtasks) > 0 }

// SubtaskIndex returns the index of the subtask with the ID, -1 if missing.
func (t Task) SubtaskIndex(id string) int {
	for i, s := range t.Subtasks {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Copy returns a deep copy of the task.
func (t Task) Copy() Task {
	c := t
	c.FinishedAt = copyTime(t.FinishedAt)
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		for i, s := range t.Subtasks {
			c.Subtasks[i] = s.Copy()
		}
	}
	return c
}

// Copy returns a deep copy of the subtask.
func (s Subtask) Copy() Subtask {
	c := s
	c.FinishedAt = copyTime(s.FinishedAt)
	if s.ActualHours != nil {
		h := *s.ActualHours
		c.ActualHours = &h
	}
	return c
}

// ValidateTitle validates a task or subtask title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	return nil
}

// ValidateHours validates an hours amount.
func ValidateHours(field string, hours float64) error {
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return NewValidationError(field, "must be a number >= 0")
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
