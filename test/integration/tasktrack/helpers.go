package tasktrack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/tasktrack/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "tasktrack"
	}

	// go test changes the CWD to the test package directory, relative paths would break.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("TASKTRACK_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("tasktrack binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "TASKTRACK_INTEGRATION"
		envBinary     = "TASKTRACK_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Store is an isolated task store used by a test.
type Store struct {
	Kind string
	Path string
}

func (s Store) env() []string {
	return []string{
		"TASKTRACK_STORE=" + s.Kind,
		"TASKTRACK_STORE_PATH=" + s.Path,
	}
}

// Run runs a tasktrack command against the store.
func Run(ctx context.Context, config Config, store Store, args ...string) (stdout, stderr []byte, err error) {
	return testutils.RunTaskTrackArgs(ctx, store.env(), config.Binary, args, true)
}

// RunList runs the list command with JSON output.
func RunList(ctx context.Context, config Config, store Store, args ...string) (stdout, stderr []byte, err error) {
	return Run(ctx, config, store, append([]string{"list", "--format", "json"}, args...)...)
}
