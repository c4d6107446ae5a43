package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/tracker"
)

type EditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id          string
	title       optionalString
	description optionalString
	priority    optionalString
	status      optionalString
}

// NewEditCommand returns the edit command.
func NewEditCommand(rootCmd *RootCommand, app *kingpin.Application) *EditCommand {
	c := &EditCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("edit", "Edit a task, only the set flags are changed.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)
	c.Cmd.Flag("title", "New title.").Short('t').IsSetByUser(&c.title.set).StringVar(&c.title.value)
	c.Cmd.Flag("description", "New description.").Short('d').IsSetByUser(&c.description.set).StringVar(&c.description.value)
	c.Cmd.Flag("priority", "New priority.").Short('p').IsSetByUser(&c.priority.set).EnumVar(&c.priority.value, priorityValues()...)
	c.Cmd.Flag("status", "New status, only for tasks without subtasks.").Short('s').IsSetByUser(&c.status.set).EnumVar(&c.status.value, statusValues()...)

	return c
}

func (c EditCommand) Name() string { return c.Cmd.FullCommand() }

func (c EditCommand) Run(ctx context.Context) error {
	opts := tracker.EditTaskOptions{
		Title:       c.title.ptr(),
		Description: c.description.ptr(),
	}
	if c.priority.set {
		p := model.Priority(c.priority.value)
		opts.Priority = &p
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

	task, err := eng.EditTask(ctx, c.id, opts)
	if err != nil {
		return fmt.Errorf("could not edit task: %w", err)
	}

	return c.rootCmd.newPrinter(formatTable).PrintTask(*task)
}
