package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/tracker"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title       string
	description string
	priority    string
	status      string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a new task.")
	c.Cmd.Arg("title", "Title of the task.").Required().StringVar(&c.title)
	c.Cmd.Flag("description", "Description of the task.").Short('d').StringVar(&c.description)
	c.Cmd.Flag("priority", "Priority of the task.").Short('p').Default(string(model.DefaultPriority)).EnumVar(&c.priority, priorityValues()...)
	c.Cmd.Flag("status", "Initial status of the task.").Short('s').Default(string(model.StatusToDo)).EnumVar(&c.status, statusValues()...)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	task, err := eng.AddTask(ctx, tracker.AddTaskOptions{
		Title:       c.title,
		Description: c.description,
		Priority:    model.Priority(c.priority),
		Status:      model.Status(c.status),
	})
	if err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}

	return c.rootCmd.newPrinter(formatTable).PrintTask(*task)
}
