package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/tasktrack/internal/model"
)

// AddSubtaskOptions are the options to add a subtask.
type AddSubtaskOptions struct {
	Title       string
	Description string
	// Status defaults to todo.
	Status         model.Status
	EstimatedHours float64
	// ActualHours is required when the subtask is created as done.
	ActualHours *float64
}

func (o *AddSubtaskOptions) validate() error {
	o.Title = strings.TrimSpace(o.Title)
	o.Description = strings.TrimSpace(o.Description)

	if err := model.ValidateTitle(o.Title); err != nil {
		return err
	}

	if o.Status == "" {
		o.Status = model.StatusToDo
	}
	if !o.Status.Valid() {
		return model.NewValidationError("status", fmt.Sprintf("unknown status %q", o.Status))
	}

	if err := model.ValidateHours("estimated_hours", o.EstimatedHours); err != nil {
		return err
	}
	if o.ActualHours != nil {
		if err := model.ValidateHours("actual_hours", *o.ActualHours); err != nil {
			return err
		}
	}

	return requireActualHours(o.Status, o.ActualHours)
}

// AddSubtask appends a new subtask to a task, the task status is derived again.
func (e *Engine) AddSubtask(ctx context.Context, taskID string, opts AddSubtaskOptions) (*model.Subtask, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}
	ti, err := e.taskIndex(taskID)
	if err != nil {
		return nil, err
	}

	s := model.Subtask{
		ID:             e.norm.NewID(),
		Title:          opts.Title,
		Description:    opts.Description,
		Status:         opts.Status,
		EstimatedHours: opts.EstimatedHours,
		ActualHours:    copyHours(opts.ActualHours),
	}
	tasks[ti].Subtasks = append(tasks[ti].Subtasks, s)
	tasks[ti] = e.norm.Task(tasks[ti])

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Added subtask %s to task %s: %s", s.ID, taskID, s.Title)
	return e.subtask(taskID, s.ID)
}

// EditSubtaskOptions are the subtask fields to change, nil fields are left unchanged.
type EditSubtaskOptions struct {
	Title          *string
	Description    *string
	Status         *model.Status
	EstimatedHours *float64
	ActualHours    *float64
}

// EditSubtask changes the fields of a subtask, the owner task status is derived again.
func (e *Engine) EditSubtask(ctx context.Context, taskID, subtaskID string, opts EditSubtaskOptions) (*model.Subtask, error) {
	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}
	ti, si, err := e.subtaskIndex(taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	var title, description string
	if opts.Title != nil {
		title = strings.TrimSpace(*opts.Title)
		if err := model.ValidateTitle(title); err != nil {
			return nil, err
		}
	}
	if opts.Description != nil {
		description = strings.TrimSpace(*opts.Description)
	}
	if opts.EstimatedHours != nil {
		if err := model.ValidateHours("estimated_hours", *opts.EstimatedHours); err != nil {
			return nil, err
		}
	}
	if opts.ActualHours != nil {
		if err := model.ValidateHours("actual_hours", *opts.ActualHours); err != nil {
			return nil, err
		}
	}

	s := &tasks[ti].Subtasks[si]
	if opts.Status != nil {
		if !opts.Status.Valid() {
			return nil, model.NewValidationError("status", fmt.Sprintf("unknown status %q", *opts.Status))
		}
		hours := s.ActualHours
		if opts.ActualHours != nil {
			hours = opts.ActualHours
		}
		if *opts.Status != s.Status {
			if err := requireActualHours(*opts.Status, hours); err != nil {
				return nil, err
			}
		}
	}

	if opts.Title != nil {
		s.Title = title
	}
	if opts.Description != nil {
		s.Description = description
	}
	if opts.EstimatedHours != nil {
		s.EstimatedHours = *opts.EstimatedHours
	}
	if opts.ActualHours != nil {
		s.ActualHours = copyHours(opts.ActualHours)
	}
	if opts.Status != nil {
		s.Status = *opts.Status
	}
	tasks[ti] = e.norm.Task(tasks[ti])

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Edited subtask %s of task %s", subtaskID, taskID)
	return e.subtask(taskID, subtaskID)
}

// DeleteSubtask removes a subtask, the owner task status is derived again.
func (e *Engine) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	tasks, err := e.mutable()
	if err != nil {
		return err
	}
	ti, si, err := e.subtaskIndex(taskID, subtaskID)
	if err != nil {
		return err
	}

	subs := tasks[ti].Subtasks
	tasks[ti].Subtasks = append(subs[:si], subs[si+1:]...)
	tasks[ti] = e.norm.Task(tasks[ti])

	if err := e.commit(ctx, tasks); err != nil {
		return err
	}

	e.logger.Infof("Deleted subtask %s of task %s", subtaskID, taskID)
	return nil
}

// SetSubtaskStatus sets the status of a subtask. Moving to done requires actual
// hours, either the ones passed or the ones already recorded in the subtask.
func (e *Engine) SetSubtaskStatus(ctx context.Context, taskID, subtaskID string, status model.Status, actualHours *float64) (*model.Subtask, error) {
	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}
	ti, si, err := e.subtaskIndex(taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, model.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if actualHours != nil {
		if err := model.ValidateHours("actual_hours", *actualHours); err != nil {
			return nil, err
		}
	}

	s := &tasks[ti].Subtasks[si]
	hours := s.ActualHours
	if actualHours != nil {
		hours = actualHours
	}
	if err := requireActualHours(status, hours); err != nil {
		return nil, err
	}

	s.Status = status
	s.ActualHours = copyHours(hours)
	tasks[ti] = e.norm.Task(tasks[ti])

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Subtask %s of task %s status set to %s", subtaskID, taskID, status)
	return e.subtask(taskID, subtaskID)
}

func (e *Engine) subtask(taskID, subtaskID string) (*model.Subtask, error) {
	ti, si, err := e.subtaskIndex(taskID, subtaskID)
	if err != nil {
		return nil, err
	}
	s := e.tasks[ti].Subtasks[si].Copy()
	return &s, nil
}

func requireActualHours(status model.Status, hours *float64) error {
	if status == model.StatusDone && hours == nil {
		return model.NewRejectedTransitionError("actual_hours", "actual hours are required to mark a subtask as done")
	}
	return nil
}

func copyHours(h *float64) *float64 {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}
