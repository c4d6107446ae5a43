package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tasktrack/internal/model"
)

func TestStatusGroup(t *testing.T) {
	tests := map[string]struct {
		status   model.Status
		expGroup model.WaitingGroup
	}{
		"Done should be in the done group.":               {status: model.StatusDone, expGroup: model.WaitingGroupDone},
		"On hold should be in the on hold group.":         {status: model.StatusOnHold, expGroup: model.WaitingGroupOnHold},
		"Waiting for reply should be waiting.":            {status: model.StatusWaitingForReply, expGroup: model.WaitingGroupWaiting},
		"Waiting for other workday should be waiting.":    {status: model.StatusWaitingForOtherWorkday, expGroup: model.WaitingGroupWaiting},
		"Waiting for email should be waiting.":            {status: model.StatusWaitingForEmail, expGroup: model.WaitingGroupWaiting},
		"Meeting scheduled should be waiting.":            {status: model.StatusMeetingScheduled, expGroup: model.WaitingGroupWaiting},
		"To do should be in the todo group.":              {status: model.StatusToDo, expGroup: model.WaitingGroupToDo},
		"Unknown statuses should fall in the todo group.": {status: model.Status("whatever"), expGroup: model.WaitingGroupToDo},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expGroup, test.status.Group())
		})
	}
}

func TestStatusOrder(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, model.StatusToDo.Index())
	assert.Equal(6, model.StatusDone.Index())
	assert.Greater(model.StatusOnHold.Index(), model.StatusWaitingForReply.Index())
	assert.Greater(model.StatusMeetingScheduled.Index(), model.StatusWaitingForEmail.Index())
	assert.Equal(-1, model.Status("Warte auf Antwort").Index())
	assert.False(model.Status("").Valid())
	assert.True(model.PriorityCritical.Valid())
	assert.False(model.Priority("Mittel").Valid())
}

func TestValidationError(t *testing.T) {
	assert := assert.New(t)

	err := model.ValidateTitle("   ")
	var verr *model.ValidationError
	assert.True(errors.As(err, &verr))
	assert.Equal("title", verr.Field)
	assert.ErrorIs(err, model.ErrNotValid)
	assert.NotErrorIs(err, model.ErrTransitionRejected)

	err = model.NewRejectedTransitionError("actual_hours", "required")
	assert.ErrorIs(err, model.ErrNotValid)
	assert.ErrorIs(err, model.ErrTransitionRejected)

	assert.Error(model.ValidateHours("estimated_hours", -1))
	assert.NoError(model.ValidateHours("estimated_hours", 0))
}

func TestTaskCopy(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	actual := 1.5
	task := model.Task{
		ID:         "t1",
		FinishedAt: &now,
		Subtasks:   []model.Subtask{{ID: "s1", FinishedAt: &now, ActualHours: &actual}},
	}

	c := task.Copy()
	*c.FinishedAt = c.FinishedAt.Add(time.Hour)
	*c.Subtasks[0].ActualHours = 3
	c.Subtasks[0].Title = "changed"

	assert.Equal(now, *task.FinishedAt)
	assert.Equal(1.5, *task.Subtasks[0].ActualHours)
	assert.Equal("", task.Subtasks[0].Title)
	assert.Equal(0, task.SubtaskIndex("s1"))
	assert.Equal(-1, task.SubtaskIndex("s2"))
}

func TestParseTimestamp(t *testing.T) {
	tests := map[string]struct {
		value  string
		expOK  bool
		expUTC time.Time
	}{
		"RFC3339 timestamps should be parsed.": {
			value:  "2025-01-03T10:20:30Z",
			expOK:  true,
			expUTC: time.Date(2025, 1, 3, 10, 20, 30, 0, time.UTC),
		},
		"Sub second precision should be truncated.": {
			value:  "2025-01-03T10:20:30.999Z",
			expOK:  true,
			expUTC: time.Date(2025, 1, 3, 10, 20, 30, 0, time.UTC),
		},
		"Empty timestamps should not be parsed.": {
			value: "",
		},
		"Garbage should not be parsed.": {
			value: "yesterday",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			got, ok := model.ParseTimestamp(test.value)
			assert.Equal(test.expOK, ok)
			if test.expOK {
				assert.True(test.expUTC.Equal(got))
			}
		})
	}
}

func TestParseNaiveTimestampRoundTrip(t *testing.T) {
	assert := assert.New(t)

	got, ok := model.ParseTimestamp("2025-01-03T08:00:00")
	assert.True(ok)
	assert.Equal(time.Local, got.Location())

	again, ok := model.ParseTimestamp(model.FormatTimestamp(got))
	assert.True(ok)
	assert.True(got.Equal(again))
}
