package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type InitCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewInitCommand returns the init command.
func NewInitCommand(rootCmd *RootCommand, app *kingpin.Application) *InitCommand {
	c := &InitCommand{rootCmd: rootCmd}
	c.Cmd = app.Command("init", "Initialize the task store with an example task.")
	return c
}

func (c InitCommand) Name() string { return c.Cmd.FullCommand() }

func (c InitCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	seeded, err := eng.SeedExample(ctx)
	if err != nil {
		return fmt.Errorf("could not seed example: %w", err)
	}

	p := c.rootCmd.newPrinter(formatTable)
	if !seeded {
		return p.PrintMessage("Task store already has tasks, nothing to do")
	}

	return p.PrintMessage("Task store initialized with an example task")
}
