package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktrack/internal/model"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	status string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Set the status of a task without subtasks.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)
	c.Cmd.Arg("status", "New status.").Required().EnumVar(&c.status, statusValues()...)

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	task, err := eng.SetTaskStatus(ctx, c.id, model.Status(c.status))
	if err != nil {
		return fmt.Errorf("could not set task status: %w", err)
	}

	return c.rootCmd.newPrinter(formatTable).PrintTask(*task)
}
