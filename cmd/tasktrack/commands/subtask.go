package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/tracker"
)

// SubtaskCommand is the parent command for subtask management subcommands.
type SubtaskCommand struct {
	Cmd *kingpin.CmdClause
}

// NewSubtaskCommand returns the subtask parent command.
func NewSubtaskCommand(app *kingpin.Application) *SubtaskCommand {
	c := &SubtaskCommand{}
	c.Cmd = app.Command("subtask", "Manage the subtasks of a task.")
	return c
}

// SubtaskAddCommand adds a subtask to a task.
type SubtaskAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID      string
	title       string
	description string
	status      string
	estimated   float64
	actual      optionalFloat
}

// NewSubtaskAddCommand returns the subtask add command.
func NewSubtaskAddCommand(rootCmd *RootCommand, subCmd *SubtaskCommand) *SubtaskAddCommand {
	c := &SubtaskAddCommand{rootCmd: rootCmd}

	c.Cmd = subCmd.Cmd.Command("add", "Add a subtask to a task.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Arg("title", "Title of the subtask.").Required().StringVar(&c.title)
	c.Cmd.Flag("description", "Description of the subtask.").Short('d').StringVar(&c.description)
	c.Cmd.Flag("status", "Initial status of the subtask.").Short('s').Default(string(model.StatusToDo)).EnumVar(&c.status, statusValues()...)
	c.Cmd.Flag("estimated", "Estimated hours.").Short('e').Default("0").Float64Var(&c.estimated)
	c.Cmd.Flag("actual", "Actual hours, required when created as done.").Short('a').IsSetByUser(&c.actual.set).Float64Var(&c.actual.value)

	return c
}

func (c SubtaskAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c SubtaskAddCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	_, err = eng.AddSubtask(ctx, c.taskID, tracker.AddSubtaskOptions{
		Title:          c.title,
		Description:    c.description,
		Status:         model.Status(c.status),
		EstimatedHours: c.estimated,
		ActualHours:    c.actual.ptr(),
	})
	if err != nil {
		return fmt.Errorf("could not add subtask: %w", err)
	}

	return printTask(c.rootCmd, eng, c.taskID)
}

// SubtaskEditCommand edits a subtask.
type SubtaskEditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID      string
	subtaskID   string
	title       optionalString
	description optionalString
	status      optionalString
	estimated   optionalFloat
	actual      optionalFloat
}

// NewSubtaskEditCommand returns the subtask edit command.
func NewSubtaskEditCommand(rootCmd *RootCommand, subCmd *SubtaskCommand) *SubtaskEditCommand {
	c := &SubtaskEditCommand{rootCmd: rootCmd}

	c.Cmd = subCmd.Cmd.Command("edit", "Edit a subtask, only the set flags are changed.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Arg("subtask-id", "ID of the subtask.").Required().StringVar(&c.subtaskID)
	c.Cmd.Flag("title", "New title.").Short('t').IsSetByUser(&c.title.set).StringVar(&c.title.value)
	c.Cmd.Flag("description", "New description.").Short('d').IsSetByUser(&c.description.set).StringVar(&c.description.value)
	c.Cmd.Flag("status", "New status.").Short('s').IsSetByUser(&c.status.set).EnumVar(&c.status.value, statusValues()...)
	c.Cmd.Flag("estimated", "New estimated hours.").Short('e').IsSetByUser(&c.estimated.set).Float64Var(&c.estimated.value)
	c.Cmd.Flag("actual", "New actual hours.").Short('a').IsSetByUser(&c.actual.set).Float64Var(&c.actual.value)

	return c
}

func (c SubtaskEditCommand) Name() string { return c.Cmd.FullCommand() }

func (c SubtaskEditCommand) Run(ctx context.Context) error {
	opts := tracker.EditSubtaskOptions{
		Title:          c.title.ptr(),
		Description:    c.description.ptr(),
		EstimatedHours: c.estimated.ptr(),
		ActualHours:    c.actual.ptr(),
	}
	if c.status.set {
		s := model.Status(c.status.value)
		opts.Status = &s
	}

	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	if _, err := eng.EditSubtask(ctx, c.taskID, c.subtaskID, opts); err != nil {
		return fmt.Errorf("could not edit subtask: %w", err)
	}

	return printTask(c.rootCmd, eng, c.taskID)
}

// SubtaskRmCommand removes a subtask.
type SubtaskRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID    string
	subtaskID string
}

// NewSubtaskRmCommand returns the subtask rm command.
func NewSubtaskRmCommand(rootCmd *RootCommand, subCmd *SubtaskCommand) *SubtaskRmCommand {
	c := &SubtaskRmCommand{rootCmd: rootCmd}

	c.Cmd = subCmd.Cmd.Command("rm", "Remove a subtask.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Arg("subtask-id", "ID of the subtask.").Required().StringVar(&c.subtaskID)

	return c
}

func (c SubtaskRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c SubtaskRmCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.DeleteSubtask(ctx, c.taskID, c.subtaskID); err != nil {
		return fmt.Errorf("could not remove subtask: %w", err)
	}

	return printTask(c.rootCmd, eng, c.taskID)
}

// SubtaskStatusCommand sets the status of a subtask.
type SubtaskStatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID    string
	subtaskID string
	status    string
	actual    optionalFloat
}

// NewSubtaskStatusCommand returns the subtask status command.
func NewSubtaskStatusCommand(rootCmd *RootCommand, subCmd *SubtaskCommand) *SubtaskStatusCommand {
	c := &SubtaskStatusCommand{rootCmd: rootCmd}

	c.Cmd = subCmd.Cmd.Command("status", "Set the status of a subtask.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Arg("subtask-id", "ID of the subtask.").Required().StringVar(&c.subtaskID)
	c.Cmd.Arg("status", "New status.").Required().EnumVar(&c.status, statusValues()...)
	c.Cmd.Flag("actual", "Actual hours, required to mark as done when not recorded.").Short('a').IsSetByUser(&c.actual.set).Float64Var(&c.actual.value)

	return c
}

func (c SubtaskStatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c SubtaskStatusCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	if _, err := eng.SetSubtaskStatus(ctx, c.taskID, c.subtaskID, model.Status(c.status), c.actual.ptr()); err != nil {
		return fmt.Errorf("could not set subtask status: %w", err)
	}

	return printTask(c.rootCmd, eng, c.taskID)
}

// printTask prints the owner task, subtask changes can change it too.
func printTask(rootCmd *RootCommand, eng *tracker.Engine, taskID string) error {
	task, err := eng.Task(taskID)
	if err != nil {
		return err
	}
	return rootCmd.newPrinter(formatTable).PrintTask(*task)
}
