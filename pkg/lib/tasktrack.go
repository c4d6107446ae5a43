package lib

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasktrack/internal/app/list"
	"github.com/slok/tasktrack/internal/conventions"
	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/storage"
	storageio "github.com/slok/tasktrack/internal/storage/io"
	"github.com/slok/tasktrack/internal/storage/sqlite"
	"github.com/slok/tasktrack/internal/tracker"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses the JSON store at
// ~/.tasktrack/tasks.json, the same one the CLI uses by default.
type Config struct {
	// Store is the store kind.
	// Default: [StoreJSON].
	Store StoreKind

	// StorePath is the path of the store file.
	// Default: ~/.tasktrack/ plus the store kind file name.
	StorePath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Store == "" {
		c.Store = StoreJSON
	}

	if c.StorePath == "" {
		home := homedir.HomeDir()
		if home == "" {
			return fmt.Errorf("could not get user home dir")
		}
		p, err := conventions.StorePath(filepath.Join(home, conventions.DefaultDataDir), string(c.Store))
		if err != nil {
			return err
		}
		c.StorePath = p
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing tasks programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	mu     sync.Mutex
	engine *tracker.Engine
	lister *list.Service
	logger log.Logger
}

// New creates a new SDK client and loads the task store.
//
// A missing store is an empty collection, an unreadable one is an error
// wrapping [ErrStorageRead]. The caller must call [Client.Close] when done:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	eng, err := tracker.NewEngine(tracker.EngineConfig{
		Repository: repo,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create engine: %w", err)
	}

	lister, err := list.NewService(list.ServiceConfig{
		Tasks:  eng,
		Logger: cfg.Logger,
	})
	if err != nil {
		_ = eng.Close()
		return nil, fmt.Errorf("could not create list service: %w", err)
	}

	if err := eng.Load(ctx); err != nil {
		_ = eng.Close()
		return nil, err
	}

	return &Client{
		engine: eng,
		lister: lister,
		logger: cfg.Logger,
	}, nil
}

func newRepository(ctx context.Context, cfg Config) (storage.Repository, error) {
	switch cfg.Store {
	case StoreJSON:
		return storageio.NewFileRepository(storageio.RepositoryConfig{
			Path:   cfg.StorePath,
			Format: storageio.FormatJSON,
			Logger: cfg.Logger,
		})
	case StoreYAML:
		return storageio.NewFileRepository(storageio.RepositoryConfig{
			Path:   cfg.StorePath,
			Format: storageio.FormatYAML,
			Logger: cfg.Logger,
		})
	case StoreSQLite:
		return sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.StorePath,
			Logger: cfg.Logger,
		})
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.Close()
}

// Reload replaces the client state with the store content. If the store can't
// be read, changes are refused with [ErrNotLoaded] until a reload succeeds.
func (c *Client) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.Load(ctx)
}
