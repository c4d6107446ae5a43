package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/report"
)

func tp(t time.Time) *time.Time { return &t }

func fp(f float64) *float64 { return &f }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }

func TestStatusCounts(t *testing.T) {
	assert := assert.New(t)

	tasks := []model.Task{
		{Status: model.StatusOnHold, Subtasks: []model.Subtask{
			{Status: model.StatusOnHold},
			{Status: model.StatusWaitingForReply},
			{Status: model.StatusToDo},
		}},
		{Status: model.StatusDone},
		{Status: model.StatusDone, Subtasks: []model.Subtask{{Status: model.StatusDone}}},
	}

	got := report.StatusCounts(tasks)

	assert.Len(got.Tasks, len(model.StatusOrder))
	assert.Len(got.Subtasks, len(model.StatusOrder))
	assert.Equal(map[model.Status]int{
		model.StatusToDo:                   0,
		model.StatusWaitingForOtherWorkday: 0,
		model.StatusWaitingForEmail:        0,
		model.StatusWaitingForReply:        0,
		model.StatusMeetingScheduled:       0,
		model.StatusOnHold:                 1,
		model.StatusDone:                   2,
	}, got.Tasks)
	assert.Equal(map[model.Status]int{
		model.StatusToDo:                   1,
		model.StatusWaitingForOtherWorkday: 0,
		model.StatusWaitingForEmail:        0,
		model.StatusWaitingForReply:        1,
		model.StatusMeetingScheduled:       0,
		model.StatusOnHold:                 1,
		model.StatusDone:                   1,
	}, got.Subtasks)
}

func TestStatusCountsEmpty(t *testing.T) {
	got := report.StatusCounts(nil)
	for _, st := range model.StatusOrder {
		assert.Equal(t, 0, got.Tasks[st])
		v, ok := got.Subtasks[st]
		assert.True(t, ok)
		assert.Equal(t, 0, v)
	}
}

func TestWeeklyCompletions(t *testing.T) {
	tests := map[string]struct {
		tasks     []model.Task
		expWeeks  []report.WeekCount
		expLabels []string
	}{
		"No tasks should return no weeks.": {
			expWeeks:  []report.WeekCount{},
			expLabels: []string{},
		},
		"Tasks done in consecutive weeks should be counted per ISO week.": {
			tasks: []model.Task{
				{Status: model.StatusDone, FinishedAt: tp(date(2025, time.January, 8))},
				{Status: model.StatusDone, FinishedAt: tp(date(2025, time.January, 1))},
			},
			expWeeks:  []report.WeekCount{{Year: 2025, Week: 1, Count: 1}, {Year: 2025, Week: 2, Count: 1}},
			expLabels: []string{"2025-W01", "2025-W02"},
		},
		"Tasks not done or without finish time should be ignored even with done subtasks.": {
			tasks: []model.Task{
				{Status: model.StatusDone, FinishedAt: tp(date(2025, time.March, 3))},
				{Status: model.StatusDone, FinishedAt: tp(date(2025, time.March, 4))},
				{Status: model.StatusDone},
				{Status: model.StatusOnHold, Subtasks: []model.Subtask{
					{Status: model.StatusDone, FinishedAt: tp(date(2025, time.March, 4))},
				}},
			},
			expWeeks:  []report.WeekCount{{Year: 2025, Week: 10, Count: 2}},
			expLabels: []string{"2025-W10"},
		},
		"ISO years should be used at year boundaries.": {
			tasks: []model.Task{
				{Status: model.StatusDone, FinishedAt: tp(date(2024, time.December, 30))},
				{Status: model.StatusDone, FinishedAt: tp(date(2021, time.January, 1))},
				{Status: model.StatusDone, FinishedAt: tp(date(2024, time.June, 1))},
			},
			expWeeks: []report.WeekCount{
				{Year: 2020, Week: 53, Count: 1},
				{Year: 2024, Week: 22, Count: 1},
				{Year: 2025, Week: 1, Count: 1},
			},
			expLabels: []string{"2020-W53", "2024-W22", "2025-W01"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			got := report.WeeklyCompletions(test.tasks)

			assert.Equal(test.expWeeks, got)
			labels := []string{}
			for _, w := range got {
				labels = append(labels, w.Label())
			}
			assert.Equal(test.expLabels, labels)
		})
	}
}

func TestTotals(t *testing.T) {
	tests := map[string]struct {
		tasks     []model.Task
		expTotals report.TimeTotals
	}{
		"Only done subtasks should be summed.": {
			tasks: []model.Task{
				{Subtasks: []model.Subtask{
					{Status: model.StatusDone, EstimatedHours: 2, ActualHours: fp(1.5)},
					{Status: model.StatusToDo, EstimatedHours: 5},
				}},
				{Subtasks: []model.Subtask{
					{Status: model.StatusDone, EstimatedHours: 1, ActualHours: fp(2)},
				}},
			},
			expTotals: report.TimeTotals{EstimatedHours: 3, ActualHours: 3.5},
		},
		"Done subtasks without actual hours should only add their estimate.": {
			tasks: []model.Task{
				{Subtasks: []model.Subtask{
					{Status: model.StatusDone, EstimatedHours: 4},
					{Status: model.StatusOnHold, EstimatedHours: 1, ActualHours: fp(8)},
				}},
			},
			expTotals: report.TimeTotals{EstimatedHours: 4},
		},
		"Done leaf tasks should not add anything.": {
			tasks:     []model.Task{{Status: model.StatusDone}},
			expTotals: report.TimeTotals{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expTotals, report.Totals(test.tasks))
		})
	}
}
