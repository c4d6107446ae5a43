package report

import (
	"fmt"
	"time"

	"github.com/slok/tasktrack/internal/model"
)

// MonthReport is what got done in a calendar month.
type MonthReport struct {
	Year    int
	Month   time.Month
	Entries []MonthEntry
}

// MonthEntry is a task with work finished in the report month.
type MonthEntry struct {
	TaskID      string
	Title       string
	Description string
	Priority    model.Priority
	// TaskFinishedAt is only set when the task itself was finished in the month.
	TaskFinishedAt *time.Time
	Subtasks       []MonthSubtask
}

// MonthSubtask is a subtask finished in the report month.
type MonthSubtask struct {
	SubtaskID   string
	Title       string
	Description string
	FinishedAt  time.Time
}

// Month returns the tasks that were finished, or had subtasks finished, in the
// month. A task can be included only because of its subtasks. When nothing was
// finished in the month it returns model.ErrNoResults.
func Month(tasks []model.Task, year int, month time.Month) (*MonthReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month %d: %w", month, model.NewValidationError("month", "must be between 1 and 12"))
	}

	inMonth := func(t *time.Time) bool {
		return t != nil && t.Year() == year && t.Month() == month
	}

	r := &MonthReport{Year: year, Month: month}
	for _, t := range tasks {
		taskQualifies := t.Done() && inMonth(t.FinishedAt)

		var subs []MonthSubtask
		for _, s := range t.Subtasks {
			if !s.Done() || !inMonth(s.FinishedAt) {
				continue
			}
			subs = append(subs, MonthSubtask{
				SubtaskID:   s.ID,
				Title:       s.Title,
				Description: s.Description,
				FinishedAt:  *s.FinishedAt,
			})
		}

		if !taskQualifies && len(subs) == 0 {
			continue
		}

		e := MonthEntry{
			TaskID:      t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			Subtasks:    subs,
		}
		if taskQualifies {
			f := *t.FinishedAt
			e.TaskFinishedAt = &f
		}
		r.Entries = append(r.Entries, e)
	}

	if len(r.Entries) == 0 {
		return nil, fmt.Errorf("nothing finished in %d-%02d: %w", year, month, model.ErrNoResults)
	}

	return r, nil
}
