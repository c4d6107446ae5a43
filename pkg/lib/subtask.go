package lib

import (
	"context"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/tracker"
)

// AddSubtask appends a subtask to a task.
func (c *Client) AddSubtask(ctx context.Context, taskID string, opts AddSubtaskOpts) (*Subtask, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.engine.AddSubtask(ctx, taskID, tracker.AddSubtaskOptions{
		Title:          opts.Title,
		Description:    opts.Description,
		Status:         model.Status(opts.Status),
		EstimatedHours: opts.EstimatedHours,
		ActualHours:    opts.ActualHours,
	})
	if err != nil {
		return nil, err
	}

	out := fromInternalSubtask(*s)
	return &out, nil
}

// EditSubtask changes the set fields of a subtask.
func (c *Client) EditSubtask(ctx context.Context, taskID, subtaskID string, opts EditSubtaskOpts) (*Subtask, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.engine.EditSubtask(ctx, taskID, subtaskID, tracker.EditSubtaskOptions{
		Title:          opts.Title,
		Description:    opts.Description,
		Status:         toInternalStatus(opts.Status),
		EstimatedHours: opts.EstimatedHours,
		ActualHours:    opts.ActualHours,
	})
	if err != nil {
		return nil, err
	}

	out := fromInternalSubtask(*s)
	return &out, nil
}

// RemoveSubtask removes a subtask from a task.
func (c *Client) RemoveSubtask(ctx context.Context, taskID, subtaskID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.DeleteSubtask(ctx, taskID, subtaskID)
}

// SetSubtaskStatus sets the status of a subtask. Marking it as done needs
// actualHours unless the subtask already has them.
func (c *Client) SetSubtaskStatus(ctx context.Context, taskID, subtaskID string, status Status, actualHours *float64) (*Subtask, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.engine.SetSubtaskStatus(ctx, taskID, subtaskID, model.Status(status), actualHours)
	if err != nil {
		return nil, err
	}

	out := fromInternalSubtask(*s)
	return &out, nil
}
