package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktrack/internal/watch"
)

func TestNewFileWatcher(t *testing.T) {
	onChange := func(context.Context) error { return nil }

	tests := map[string]struct {
		config watch.FileWatcherConfig
		expErr bool
	}{
		"valid config should create the watcher": {
			config: watch.FileWatcherConfig{Path: "/tmp/tasks.json", OnChange: onChange},
		},
		"missing path should fail": {
			config: watch.FileWatcherConfig{OnChange: onChange},
			expErr: true,
		},
		"missing callback should fail": {
			config: watch.FileWatcherConfig{Path: "/tmp/tasks.json"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := watch.NewFileWatcher(test.config)
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileWatcherRun(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	var calls atomic.Int32
	changed := make(chan struct{}, 10)
	w, err := watch.NewFileWatcher(watch.FileWatcherConfig{
		Path:     path,
		Debounce: 50 * time.Millisecond,
		OnChange: func(context.Context) error {
			calls.Add(1)
			changed <- struct{}{}
			return nil
		},
	})
	require.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Other files in the directory are ignored, the watched one triggers
	// the callback. Retry until the watcher is registered.
	require.Eventually(func() bool {
		if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644); err != nil {
			return false
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return false
		}
		select {
		case <-changed:
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	require.GreaterOrEqual(calls.Load(), int32(1))
}
