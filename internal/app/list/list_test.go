package list_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktrack/internal/app/list"
	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config list.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: list.ServiceConfig{
				Tasks:  list.TaskGetterFunc(func() []model.Task { return nil }),
				Logger: log.Noop,
			},
			expErr: false,
		},
		"missing task getter should fail": {
			config: list.ServiceConfig{
				Logger: log.Noop,
			},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: list.ServiceConfig{
				Tasks: list.TaskGetterFunc(func() []model.Task { return nil }),
			},
			expErr: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := list.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	day := func(d int) *time.Time {
		t := time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
		return &t
	}

	tasks := []model.Task{
		{ID: "t1", Title: "beta", Description: "Call the bank", Priority: model.PriorityHigh, Status: model.StatusWaitingForReply},
		{ID: "t2", Title: "Alpha", Priority: model.PriorityLow, Status: model.StatusDone, FinishedAt: day(5)},
		{ID: "t3", Title: "gamma", Description: "bank statement", Priority: model.PriorityCritical, Status: model.StatusOnHold},
		{ID: "t4", Title: "delta", Priority: model.PriorityHigh, Status: model.StatusDone, FinishedAt: day(2)},
		{ID: "t5", Title: "epsilon", Priority: model.PriorityMedium, Status: model.StatusWaitingForEmail},
	}

	ids := func(ts []model.Task) []string {
		res := []string{}
		for _, t := range ts {
			res = append(res, t.ID)
		}
		return res
	}

	status := func(s model.Status) *model.Status { return &s }
	priority := func(p model.Priority) *model.Priority { return &p }
	group := func(g model.WaitingGroup) *model.WaitingGroup { return &g }

	tests := map[string]struct {
		req    list.Request
		expIDs []string
		expErr bool
	}{
		"list all tasks without filter keeps insertion order": {
			req:    list.Request{},
			expIDs: []string{"t1", "t2", "t3", "t4", "t5"},
		},
		"filter by status": {
			req:    list.Request{StatusFilter: status(model.StatusDone)},
			expIDs: []string{"t2", "t4"},
		},
		"filter by priority": {
			req:    list.Request{PriorityFilter: priority(model.PriorityHigh)},
			expIDs: []string{"t1", "t4"},
		},
		"filter by waiting group": {
			req:    list.Request{GroupFilter: group(model.WaitingGroupWaiting)},
			expIDs: []string{"t1", "t5"},
		},
		"query matches title and description case insensitive": {
			req:    list.Request{Query: " BANK "},
			expIDs: []string{"t1", "t3"},
		},
		"filters are combined": {
			req:    list.Request{Query: "bank", PriorityFilter: priority(model.PriorityCritical)},
			expIDs: []string{"t3"},
		},
		"filter with no matches returns empty list": {
			req:    list.Request{StatusFilter: status(model.StatusMeetingScheduled)},
			expIDs: []string{},
		},
		"sort by priority is stable": {
			req:    list.Request{SortBy: list.SortByPriority},
			expIDs: []string{"t2", "t5", "t1", "t4", "t3"},
		},
		"sort by status descending": {
			req:    list.Request{SortBy: list.SortByStatus, Descending: true},
			expIDs: []string{"t2", "t4", "t3", "t1", "t5"},
		},
		"sort by title is case insensitive": {
			req:    list.Request{SortBy: list.SortByTitle},
			expIDs: []string{"t2", "t1", "t4", "t5", "t3"},
		},
		"sort by finished puts unfinished first": {
			req:    list.Request{SortBy: list.SortByFinished},
			expIDs: []string{"t1", "t3", "t5", "t4", "t2"},
		},
		"unknown sort field should fail": {
			req:    list.Request{SortBy: "size"},
			expErr: true,
		},
		"unknown status filter should fail": {
			req:    list.Request{StatusFilter: status("later")},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			svc, err := list.NewService(list.ServiceConfig{
				Tasks:  list.TaskGetterFunc(func() []model.Task { return tasks }),
				Logger: log.Noop,
			})
			require.NoError(err)

			result, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.ErrorIs(err, model.ErrNotValid)
			} else {
				assert.NoError(err)
				assert.Equal(test.expIDs, ids(result))
			}
		})
	}
}
