package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/tasktrack/internal/model"
)

// AddTaskOptions are the options to add a task.
type AddTaskOptions struct {
	Title       string
	Description string
	// Priority defaults to model.DefaultPriority.
	Priority model.Priority
	// Status defaults to todo.
	Status model.Status
}

func (o *AddTaskOptions) validate() error {
	o.Title = strings.TrimSpace(o.Title)
	o.Description = strings.TrimSpace(o.Description)

	if err := model.ValidateTitle(o.Title); err != nil {
		return err
	}

	if o.Priority == "" {
		o.Priority = model.DefaultPriority
	}
	if !o.Priority.Valid() {
		return model.NewValidationError("priority", fmt.Sprintf("unknown priority %q", o.Priority))
	}

	if o.Status == "" {
		o.Status = model.StatusToDo
	}
	if !o.Status.Valid() {
		return model.NewValidationError("status", fmt.Sprintf("unknown status %q", o.Status))
	}

	return nil
}

// AddTask appends a new task to the collection.
func (e *Engine) AddTask(ctx context.Context, opts AddTaskOptions) (*model.Task, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}

	t := e.norm.Task(model.Task{
		ID:          e.norm.NewID(),
		Title:       opts.Title,
		Description: opts.Description,
		Priority:    opts.Priority,
		Status:      opts.Status,
	})
	tasks = append(tasks, t)

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Added task %s: %s", t.ID, t.Title)
	return e.Task(t.ID)
}

// EditTaskOptions are the task fields to change, nil fields are left unchanged.
type EditTaskOptions struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	// Status can only be changed on tasks without subtasks.
	Status *model.Status
}

// EditTask changes the fields of a task.
func (e *Engine) EditTask(ctx context.Context, id string, opts EditTaskOptions) (*model.Task, error) {
	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}
	ti, err := e.taskIndex(id)
	if err != nil {
		return nil, err
	}
	current := tasks[ti]

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
	if opts.Priority != nil && !opts.Priority.Valid() {
		return nil, model.NewValidationError("priority", fmt.Sprintf("unknown priority %q", *opts.Priority))
	}
	if opts.Status != nil {
		if err := validateTaskStatusChange(current, *opts.Status); err != nil {
			return nil, err
		}
	}

	t := &tasks[ti]
	if opts.Title != nil {
		t.Title = title
	}
	if opts.Description != nil {
		t.Description = description
	}
	if opts.Priority != nil {
		t.Priority = *opts.Priority
	}
	if opts.Status != nil && !t.HasSubtasks() {
		t.Status = *opts.Status
	}
	*t = e.norm.Task(*t)

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Edited task %s", id)
	return e.Task(id)
}

// DeleteTask removes a task with all its subtasks.
func (e *Engine) DeleteTask(ctx context.Context, id string) error {
	tasks, err := e.mutable()
	if err != nil {
		return err
	}
	ti, err := e.taskIndex(id)
	if err != nil {
		return err
	}

	tasks = append(tasks[:ti], tasks[ti+1:]...)

	if err := e.commit(ctx, tasks); err != nil {
		return err
	}

	e.logger.Infof("Deleted task %s", id)
	return nil
}

// SetTaskStatus sets the status of a task without subtasks. The status of tasks
// with subtasks is derived from them and can't be set.
func (e *Engine) SetTaskStatus(ctx context.Context, id string, status model.Status) (*model.Task, error) {
	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}
	ti, err := e.taskIndex(id)
	if err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, model.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if tasks[ti].HasSubtasks() {
		return nil, model.NewRejectedTransitionError("status", "task status is derived from its subtasks")
	}

	tasks[ti].Status = status
	tasks[ti] = e.norm.Task(tasks[ti])

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Task %s status set to %s", id, status)
	return e.Task(id)
}

// CompleteTask marks a task as done. On tasks with subtasks every pending
// subtask is marked as done, actualHours is used for the ones without actual
// hours and is required if any of them lacks it.
func (e *Engine) CompleteTask(ctx context.Context, id string, actualHours *float64) (*model.Task, error) {
	tasks, err := e.mutable()
	if err != nil {
		return nil, err
	}
	ti, err := e.taskIndex(id)
	if err != nil {
		return nil, err
	}

	if actualHours != nil {
		if err := model.ValidateHours("actual_hours", *actualHours); err != nil {
			return nil, err
		}
	}

	for _, s := range tasks[ti].Subtasks {
		if !s.Done() && s.ActualHours == nil && actualHours == nil {
			return nil, model.NewRejectedTransitionError("actual_hours", fmt.Sprintf("subtask %s needs actual hours to be done", s.ID))
		}
	}

	t := &tasks[ti]
	if !t.HasSubtasks() {
		t.Status = model.StatusDone
	}
	for i := range t.Subtasks {
		s := &t.Subtasks[i]
		if s.Done() {
			continue
		}
		if s.ActualHours == nil {
			h := *actualHours
			s.ActualHours = &h
		}
		s.Status = model.StatusDone
	}
	*t = e.norm.Task(*t)

	if err := e.commit(ctx, tasks); err != nil {
		return nil, err
	}

	e.logger.Infof("Task %s completed", id)
	return e.Task(id)
}

func validateTaskStatusChange(t model.Task, status model.Status) error {
	if !status.Valid() {
		return model.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if t.HasSubtasks() && status != t.Status {
		return model.NewRejectedTransitionError("status", "task status is derived from its subtasks")
	}
	return nil
}
