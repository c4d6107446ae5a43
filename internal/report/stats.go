// Package report has the read only views over a task collection.
package report

import (
	"fmt"
	"sort"

	"github.com/slok/tasktrack/internal/model"
)

// StatusDistribution counts tasks and subtasks per status. Both maps have an
// entry for every known status, zero included.
type StatusDistribution struct {
	Tasks    map[model.Status]int
	Subtasks map[model.Status]int
}

// StatusCounts returns the status distribution of the tasks and of all their subtasks.
func StatusCounts(tasks []model.Task) StatusDistribution {
	d := StatusDistribution{
		Tasks:    make(map[model.Status]int, len(model.StatusOrder)),
		Subtasks: make(map[model.Status]int, len(model.StatusOrder)),
	}
	for _, st := range model.StatusOrder {
		d.Tasks[st] = 0
		d.Subtasks[st] = 0
	}

	for _, t := range tasks {
		d.Tasks[t.Status]++
		for _, s := range t.Subtasks {
			d.Subtasks[s.Status]++
		}
	}

	return d
}

// WeekCount is the number of tasks finished in an ISO week.
type WeekCount struct {
	Year  int
	Week  int
	Count int
}

// Label returns the week label, e.g. 2025-W01.
func (w WeekCount) Label() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// WeeklyCompletions counts done tasks by the ISO week of their finish time,
// sorted by week ascending. Subtasks are not counted on their own.
func WeeklyCompletions(tasks []model.Task) []WeekCount {
	type isoWeek struct{ year, week int }

	counts := map[isoWeek]int{}
	for _, t := range tasks {
		if !t.Done() || t.FinishedAt == nil {
			continue
		}
		y, w := t.FinishedAt.ISOWeek()
		counts[isoWeek{year: y, week: w}]++
	}

	weeks := make([]WeekCount, 0, len(counts))
	for k, c := range counts {
		weeks = append(weeks, WeekCount{Year: k.year, Week: k.week, Count: c})
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year < weeks[j].Year
		}
		return weeks[i].Week < weeks[j].Week
	})

	return weeks
}

// TimeTotals are the estimated and actual hours of the done subtasks.
type TimeTotals struct {
	EstimatedHours float64
	ActualHours    float64
}

// Totals sums the hours of every done subtask, subtasks that are not done are ignored.
func Totals(tasks []model.Task) TimeTotals {
	var tt TimeTotals
	for _, t := range tasks {
		for _, s := range t.Subtasks {
			if !s.Done() {
				continue
			}
			tt.EstimatedHours += s.EstimatedHours
			if s.ActualHours != nil {
				tt.ActualHours += *s.ActualHours
			}
		}
	}
	return tt
}

// Summary groups every statistic of a task collection.
type Summary struct {
	Distribution StatusDistribution
	Weekly       []WeekCount
	Totals       TimeTotals
}

// Summarize returns the statistics of the tasks.
func Summarize(tasks []model.Task) Summary {
	return Summary{
		Distribution: StatusCounts(tasks),
		Weekly:       WeeklyCompletions(tasks),
		Totals:       Totals(tasks),
	}
}
