package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktrack/internal/app/list"
	"github.com/slok/tasktrack/internal/conventions"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/printer"
	"github.com/slok/tasktrack/internal/watch"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter   string
	priorityFilter string
	groupFilter    string
	query          string
	sortBy         string
	desc           bool
	format         string
	watch          bool
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	sortFields := make([]string, 0, len(list.SortFields))
	for _, f := range list.SortFields {
		sortFields = append(sortFields, string(f))
	}
	groups := []string{
		string(model.WaitingGroupToDo),
		string(model.WaitingGroupWaiting),
		string(model.WaitingGroupOnHold),
		string(model.WaitingGroupDone),
	}

	c.Cmd = app.Command("list", "List tasks.")
	c.Cmd.Flag("status", "Filter by status.").EnumVar(&c.statusFilter, statusValues()...)
	c.Cmd.Flag("priority", "Filter by priority.").EnumVar(&c.priorityFilter, priorityValues()...)
	c.Cmd.Flag("group", "Filter by waiting group.").EnumVar(&c.groupFilter, groups...)
	c.Cmd.Flag("query", "Filter by text on title or description.").Short('q').StringVar(&c.query)
	c.Cmd.Flag("sort", "Sort by field.").EnumVar(&c.sortBy, sortFields...)
	c.Cmd.Flag("desc", "Sort descending.").BoolVar(&c.desc)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)
	c.Cmd.Flag("watch", "Print again every time the store file changes.").Short('w').BoolVar(&c.watch)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	if c.watch && c.rootCmd.Store == conventions.StoreSQLite {
		return fmt.Errorf("watch is only supported on file stores")
	}

	req := list.Request{
		Query:      c.query,
		SortBy:     list.SortBy(c.sortBy),
		Descending: c.desc,
	}
	if c.statusFilter != "" {
		s := model.Status(c.statusFilter)
		req.StatusFilter = &s
	}
	if c.priorityFilter != "" {
		p := model.Priority(c.priorityFilter)
		req.PriorityFilter = &p
	}
	if c.groupFilter != "" {
		g := model.WaitingGroup(c.groupFilter)
		req.GroupFilter = &g
	}

	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	// Create list service.
	svc, err := list.NewService(list.ServiceConfig{
		Tasks:  eng,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := c.print(ctx, svc, req, p); err != nil {
		return err
	}

	if !c.watch {
		return nil
	}

	path, err := c.rootCmd.storePath()
	if err != nil {
		return err
	}

	w, err := watch.NewFileWatcher(watch.FileWatcherConfig{
		Path:   path,
		Logger: logger,
		OnChange: func(ctx context.Context) error {
			if err := eng.Load(ctx); err != nil {
				// Keep watching, the file may be in the middle of being replaced.
				logger.Warningf("Could not reload tasks: %s", err)
				return nil
			}
			if c.format == formatTable {
				fmt.Fprintln(c.rootCmd.Stdout)
			}
			return c.print(ctx, svc, req, p)
		},
	})
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}

	return w.Run(ctx)
}

func (c ListCommand) print(ctx context.Context, svc *list.Service, req list.Request, p printer.Printer) error {
	tasks, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	if err := p.PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
