package io

import (
	"strconv"
	"strings"
	"time"

	"github.com/slok/tasktrack/internal/model"
)

// TaskRecord is the persisted shape of a task.
type TaskRecord struct {
	ID           string          `json:"id,omitempty" yaml:"id,omitempty"`
	Title        string          `json:"title" yaml:"title"`
	Description  string          `json:"description" yaml:"description"`
	Priority     string          `json:"priority" yaml:"priority"`
	Status       string          `json:"status" yaml:"status"`
	FinishedDate *string         `json:"finished_date" yaml:"finished_date"`
	Subtasks     []SubtaskRecord `json:"subtasks" yaml:"subtasks"`
}

// SubtaskRecord is the persisted shape of a subtask. Hours are decoded
// leniently, anything that is not a number degrades to zero or absent.
type SubtaskRecord struct {
	ID             string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title          string  `json:"title" yaml:"title"`
	Description    string  `json:"description" yaml:"description"`
	Status         string  `json:"status" yaml:"status"`
	FinishedDate   *string `json:"finished_date" yaml:"finished_date"`
	EstimatedHours any     `json:"estimated_hours" yaml:"estimated_hours"`
	ActualHours    any     `json:"actual_hours" yaml:"actual_hours"`
}

// Labels written by the first generation of the tool.
var (
	legacyStatuses = map[string]model.Status{
		"Meeting vereinbart":            model.StatusMeetingScheduled,
		"On Hold":                       model.StatusOnHold,
		"Warte auf Antwort":             model.StatusWaitingForReply,
		"Warten auf anderen Arbeitstag": model.StatusWaitingForOtherWorkday,
		"Warten auf Mail":               model.StatusWaitingForEmail,
	}
	legacyPriorities = map[string]model.Priority{
		"Niedrig":  model.PriorityLow,
		"Mittel":   model.PriorityMedium,
		"Hoch":     model.PriorityHigh,
		"Kritisch": model.PriorityCritical,
	}
)

// ToModel converts the record into a (not yet normalized) domain task.
func (r TaskRecord) ToModel() model.Task {
	t := model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    parsePriority(r.Priority),
		Status:      parseStatus(r.Status),
		FinishedAt:  parseTimestamp(r.FinishedDate),
	}

	if len(r.Subtasks) > 0 {
		t.Subtasks = make([]model.Subtask, 0, len(r.Subtasks))
		for _, s := range r.Subtasks {
			t.Subtasks = append(t.Subtasks, s.ToModel())
		}
	}

	return t
}

// ToModel converts the record into a (not yet normalized) domain subtask.
func (r SubtaskRecord) ToModel() model.Subtask {
	s := model.Subtask{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      parseStatus(r.Status),
		FinishedAt:  parseTimestamp(r.FinishedDate),
	}

	if h, ok := parseHours(r.EstimatedHours); ok {
		s.EstimatedHours = h
	}
	if h, ok := parseHours(r.ActualHours); ok {
		s.ActualHours = &h
	}

	return s
}

// NewTaskRecord converts a domain task into its persisted shape.
func NewTaskRecord(t model.Task) TaskRecord {
	r := TaskRecord{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		FinishedDate: formatFinished(t.FinishedAt),
		Subtasks:     make([]SubtaskRecord, 0, len(t.Subtasks)),
	}

	for _, s := range t.Subtasks {
		sr := SubtaskRecord{
			ID:             s.ID,
			Title:          s.Title,
			Description:    s.Description,
			Status:         string(s.Status),
			FinishedDate:   formatFinished(s.FinishedAt),
			EstimatedHours: s.EstimatedHours,
		}
		if s.ActualHours != nil {
			sr.ActualHours = *s.ActualHours
		}
		r.Subtasks = append(r.Subtasks, sr)
	}

	return r
}

func formatFinished(t *time.Time) *string {
	if t == nil {
		return nil
	}
	f := model.FormatTimestamp(*t)
	return &f
}

func parseStatus(s string) model.Status {
	if st, ok := legacyStatuses[s]; ok {
		return st
	}
	return model.Status(s)
}

func parsePriority(p string) model.Priority {
	if pr, ok := legacyPriorities[p]; ok {
		return pr
	}
	return model.Priority(p)
}

func parseTimestamp(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := model.ParseTimestamp(*s)
	if !ok {
		return nil
	}
	return &t
}

func parseHours(v any) (float64, bool) {
	switch h := v.(type) {
	case float64:
		return h, true
	case float32:
		return float64(h), true
	case int:
		return float64(h), true
	case int64:
		return float64(h), true
	case uint64:
		return float64(h), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
