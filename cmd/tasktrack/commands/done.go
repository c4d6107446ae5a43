package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type DoneCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	actual optionalFloat
}

// NewDoneCommand returns the done command.
func NewDoneCommand(rootCmd *RootCommand, app *kingpin.Application) *DoneCommand {
	c := &DoneCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("done", "Mark a task as done, including all its pending subtasks.")
	c.Cmd.Arg("id", "ID of the task.").Required().StringVar(&c.id)
	c.Cmd.Flag("actual", "Actual hours for the pending subtasks without them.").Short('a').IsSetByUser(&c.actual.set).Float64Var(&c.actual.value)

	return c
}

func (c DoneCommand) Name() string { return c.Cmd.FullCommand() }

func (c DoneCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	task, err := eng.CompleteTask(ctx, c.id, c.actual.ptr())
	if err != nil {
		return fmt.Errorf("could not complete task: %w", err)
	}

	return c.rootCmd.newPrinter(formatTable).PrintTask(*task)
}
