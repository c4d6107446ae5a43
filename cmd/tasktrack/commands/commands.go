package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasktrack/internal/conventions"
	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/printer"
	"github.com/slok/tasktrack/internal/storage"
	storageio "github.com/slok/tasktrack/internal/storage/io"
	"github.com/slok/tasktrack/internal/storage/sqlite"
	"github.com/slok/tasktrack/internal/tracker"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
	formatHTML  = "html"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	Store      string
	StorePath  string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("store", "Task store kind.").Default(conventions.StoreJSON).EnumVar(&c.Store, conventions.StoreKinds...)
	app.Flag("store-path", "Path to the task store file, defaults to the store kind file in ~/"+conventions.DefaultDataDir+".").Envar("TASKTRACK_STORE_PATH").StringVar(&c.StorePath)

	return c
}

// storePath returns the configured store path or the default one for the store kind.
func (r RootCommand) storePath() (string, error) {
	if r.StorePath != "" {
		return r.StorePath, nil
	}
	return conventions.StorePath(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir), r.Store)
}

// newRepository returns the repository of the configured store.
func (r RootCommand) newRepository(ctx context.Context) (storage.Repository, error) {
	path, err := r.storePath()
	if err != nil {
		return nil, err
	}

	switch r.Store {
	case conventions.StoreSQLite:
		return sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: path,
			Logger: r.Logger,
		})
	case conventions.StoreYAML:
		return storageio.NewFileRepository(storageio.RepositoryConfig{
			Path:   path,
			Format: storageio.FormatYAML,
			Logger: r.Logger,
		})
	default:
		return storageio.NewFileRepository(storageio.RepositoryConfig{
			Path:   path,
			Format: storageio.FormatJSON,
			Logger: r.Logger,
		})
	}
}

// newEngine returns a loaded task engine, it must be closed by the caller.
func (r RootCommand) newEngine(ctx context.Context) (*tracker.Engine, error) {
	repo, err := r.newRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	eng, err := tracker.NewEngine(tracker.EngineConfig{
		Repository: repo,
		Logger:     r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create engine: %w", err)
	}

	if err := eng.Load(ctx); err != nil {
		_ = eng.Close()
		return nil, err
	}

	return eng, nil
}

// newPrinter returns the printer for an output format.
func (r RootCommand) newPrinter(format string) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(r.Stdout)
	}
	return printer.NewTablePrinter(r.Stdout)
}

func statusValues() []string {
	values := make([]string, 0, len(model.StatusOrder))
	for _, s := range model.StatusOrder {
		values = append(values, string(s))
	}
	return values
}

func priorityValues() []string {
	values := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		values = append(values, string(p))
	}
	return values
}

// optionalFloat is a float flag or arg that knows if it was set.
type optionalFloat struct {
	value float64
	set   bool
}

func (o *optionalFloat) ptr() *float64 {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optionalString is a string flag that knows if it was set.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}
