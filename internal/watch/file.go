// Package watch notifies about changes on files.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/slok/tasktrack/internal/log"
)

const defaultDebounce = 100 * time.Millisecond

// FileWatcherConfig is the configuration for the file watcher.
type FileWatcherConfig struct {
	// Path is the file to watch, it doesn't need to exist.
	Path string
	// OnChange is called after the file changes, once per burst of events.
	OnChange func(ctx context.Context) error
	// Debounce is the quiet time required after an event to call OnChange.
	Debounce time.Duration
	Logger   log.Logger
}

func (c *FileWatcherConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}

	if c.OnChange == nil {
		return fmt.Errorf("on change func is required")
	}

	if c.Debounce <= 0 {
		c.Debounce = defaultDebounce
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "watch.FileWatcher"})

	return nil
}

// FileWatcher calls a function every time a file is written, created, removed
// or renamed. The parent directory is watched so atomic replaces are detected.
type FileWatcher struct {
	path     string
	onChange func(ctx context.Context) error
	debounce time.Duration
	logger   log.Logger
}

// NewFileWatcher returns a new file watcher.
func NewFileWatcher(cfg FileWatcherConfig) (*FileWatcher, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &FileWatcher{
		path:     filepath.Clean(cfg.Path),
		onChange: cfg.OnChange,
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
	}, nil
}

// Run watches the file until the context is cancelled. Errors returned by the
// change callback end the watch.
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %q: %w", dir, err)
	}
	w.logger.Debugf("Watching %s", w.path)

	// Stopped timer, armed on each relevant event.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debugf("File event: %s", event.Op)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("fsnotify error: %s", err)

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				return fmt.Errorf("change handler failed: %w", err)
			}
		}
	}
}
