package tracker

import (
	"context"
	"time"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/report"
)

// StatusCounts returns the status distribution of the live collection.
func (e *Engine) StatusCounts() report.StatusDistribution {
	return report.StatusCounts(e.tasks)
}

// WeeklyCompletions returns the done tasks grouped by ISO week.
func (e *Engine) WeeklyCompletions() []report.WeekCount {
	return report.WeeklyCompletions(e.tasks)
}

// TimeTotals returns the estimated and actual hours of the done subtasks.
func (e *Engine) TimeTotals() report.TimeTotals {
	return report.Totals(e.tasks)
}

// ExportMonth returns the work finished in a month.
func (e *Engine) ExportMonth(year int, month time.Month) (*report.MonthReport, error) {
	return report.Month(e.tasks, year, month)
}

// SeedExample stores an example task when the collection is empty, returns
// false when there was already something stored.
func (e *Engine) SeedExample(ctx context.Context) (bool, error) {
	tasks, err := e.mutable()
	if err != nil {
		return false, err
	}
	if len(tasks) > 0 {
		return false, nil
	}

	tasks = append(tasks, e.norm.Task(model.Task{
		ID:          e.norm.NewID(),
		Title:       "Example project",
		Description: "First task as an example",
		Priority:    model.PriorityMedium,
		Status:      model.StatusToDo,
		Subtasks: []model.Subtask{
			{ID: e.norm.NewID(), Title: "Research", Description: "Gather information", Status: model.StatusToDo},
			{ID: e.norm.NewID(), Title: "Get in touch", Description: "Write an email", Status: model.StatusWaitingForReply},
		},
	}))

	if err := e.commit(ctx, tasks); err != nil {
		return false, err
	}

	e.logger.Infof("Example task seeded")
	return true, nil
}

// Summary returns every statistic of the live collection.
func (e *Engine) Summary() report.Summary {
	return report.Summarize(e.tasks)
}
