// Package migrations owns the SQLite schema of the task store, the tasks and
// subtasks tables, as embedded golang-migrate SQL files.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/slok/tasktrack/internal/log"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// SchemaConfig is the configuration for the task store schema.
type SchemaConfig struct {
	DB     *sql.DB
	Logger log.Logger
}

func (c *SchemaConfig) defaults() error {
	if c.DB == nil {
		return fmt.Errorf("db is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "migrations.Schema"})

	return nil
}

// Schema applies and reverts the tasks and subtasks tables.
type Schema struct {
	db     *sql.DB
	logger log.Logger
}

// NewSchema returns the task store schema manager for a database.
func NewSchema(cfg SchemaConfig) (*Schema, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Schema{
		db:     cfg.DB,
		logger: cfg.Logger,
	}, nil
}

// Apply brings the tasks and subtasks tables to the latest schema version.
// Applying an up to date schema is a no-op.
func (s *Schema) Apply(ctx context.Context) error {
	m, done, err := s.migrate()
	defer done()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply task store schema: %w", err)
	}

	v, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("could not get task store schema version: %w", err)
	}
	s.logger.Debugf("Task store schema at version %d", v)

	return nil
}

// Revert drops every task store table, all the stored tasks are lost.
func (s *Schema) Revert(ctx context.Context) error {
	m, done, err := s.migrate()
	defer done()
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not revert task store schema: %w", err)
	}

	s.logger.Debugf("Task store schema reverted")
	return nil
}

// Version returns the applied schema version, 0 when nothing is applied.
func (s *Schema) Version(ctx context.Context) (uint, error) {
	m, done, err := s.migrate()
	defer done()
	if err != nil {
		return 0, err
	}

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not get task store schema version: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("task store schema version %d is dirty", v)
	}

	return v, nil
}

// migrate returns a golang-migrate instance over the embedded schema files,
// done must always be called to release the source.
func (s *Schema) migrate() (m *migrate.Migrate, done func(), err error) {
	done = func() {}

	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return nil, done, fmt.Errorf("could not create schema driver: %w", err)
	}

	src, err := iofs.New(schemaFiles, "sql")
	if err != nil {
		return nil, done, fmt.Errorf("could not read schema files: %w", err)
	}
	done = func() {
		if err := src.Close(); err != nil {
			s.logger.Errorf("could not close schema files: %s", err)
		}
	}

	m, err = migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, done, fmt.Errorf("could not prepare task store schema: %w", err)
	}

	return m, done, nil
}
