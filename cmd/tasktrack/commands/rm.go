package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewRemoveCommand returns the rm command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a task with all its subtasks.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.DeleteTask(ctx, c.id); err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}

	return c.rootCmd.newPrinter(formatTable).PrintMessage(fmt.Sprintf("Task %s removed", c.id))
}
