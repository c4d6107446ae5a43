package lib

import (
	"context"

	"github.com/slok/tasktrack/internal/app/list"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/tracker"
)

// ListTasksOpts filters and sorts the listed tasks. Pass nil for all tasks
// in insertion order.
type ListTasksOpts struct {
	// Status only lists the tasks with this status.
	Status *Status
	// Priority only lists the tasks with this priority.
	Priority *Priority
	// Group only lists the tasks whose status is in this group.
	Group *WaitingGroup
	// Query matches case insensitive on the title and description.
	Query string
	// SortBy is one of "priority", "status", "title" or "finished".
	SortBy     string
	Descending bool
}

// ListTasks lists tasks with optional filtering and sorting.
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOpts) ([]Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := list.Request{}
	if opts != nil {
		req = list.Request{
			StatusFilter:   toInternalStatus(opts.Status),
			PriorityFilter: toInternalPriority(opts.Priority),
			GroupFilter:    toInternalGroup(opts.Group),
			Query:          opts.Query,
			SortBy:         list.SortBy(opts.SortBy),
			Descending:     opts.Descending,
		}
	}

	tasks, err := c.lister.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	return fromInternalTaskList(tasks), nil
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.engine.Task(id)
	if err != nil {
		return nil, err
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// AddTask creates a new task at the end of the collection.
func (c *Client) AddTask(ctx context.Context, opts AddTaskOpts) (*Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.engine.AddTask(ctx, tracker.AddTaskOptions{
		Title:       opts.Title,
		Description: opts.Description,
		Priority:    model.Priority(opts.Priority),
		Status:      model.Status(opts.Status),
	})
	if err != nil {
		return nil, err
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// EditTask changes the set fields of a task.
func (c *Client) EditTask(ctx context.Context, id string, opts EditTaskOpts) (*Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.engine.EditTask(ctx, id, tracker.EditTaskOptions{
		Title:       opts.Title,
		Description: opts.Description,
		Priority:    toInternalPriority(opts.Priority),
		Status:      toInternalStatus(opts.Status),
	})
	if err != nil {
		return nil, err
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// RemoveTask removes a task and all its subtasks.
func (c *Client) RemoveTask(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.DeleteTask(ctx, id)
}

// SetTaskStatus sets the status of a task without subtasks.
func (c *Client) SetTaskStatus(ctx context.Context, id string, status Status) (*Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.engine.SetTaskStatus(ctx, id, model.Status(status))
	if err != nil {
		return nil, err
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// CompleteTask marks a task and all its pending subtasks as done. Pending
// subtasks without actual hours get actualHours, if nil they must already
// have them.
func (c *Client) CompleteTask(ctx context.Context, id string, actualHours *float64) (*Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.engine.CompleteTask(ctx, id, actualHours)
	if err != nil {
		return nil, err
	}

	out := fromInternalTask(*t)
	return &out, nil
}
