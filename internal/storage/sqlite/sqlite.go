package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	schema, err := migrations.NewSchema(migrations.SchemaConfig{DB: db, Logger: cfg.Logger})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	if err := schema.Apply(ctx); err != nil {
		db.Close()
		return nil, err
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// LoadTasks returns all the tasks with their subtasks in stored order.
func (r *Repository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := r.loadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStorageRead, err)
	}

	r.logger.Debugf("Loaded %d tasks from repository", len(tasks))
	return tasks, nil
}

func (r *Repository) loadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, priority, status, finished_at
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	index := map[string]int{}
	for rows.Next() {
		var t model.Task
		var finishedAt sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &finishedAt); err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}
		t.FinishedAt = timeFromNullString(finishedAt)
		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	subRows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, description, status, finished_at, estimated_hours, actual_hours
		FROM subtasks
		ORDER BY task_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query subtasks: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var s model.Subtask
		var taskID string
		var finishedAt sql.NullString
		var actualHours sql.NullFloat64
		err := subRows.Scan(&s.ID, &taskID, &s.Title, &s.Description, &s.Status, &finishedAt, &s.EstimatedHours, &actualHours)
		if err != nil {
			return nil, fmt.Errorf("could not scan subtask: %w", err)
		}
		s.FinishedAt = timeFromNullString(finishedAt)
		if actualHours.Valid {
			h := actualHours.Float64
			s.ActualHours = &h
		}

		i, ok := index[taskID]
		if !ok {
			return nil, fmt.Errorf("subtask %s references missing task %s", s.ID, taskID)
		}
		tasks[i].Subtasks = append(tasks[i].Subtasks, s)
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subtask rows: %w", err)
	}

	return tasks, nil
}

// SaveTasks replaces all the stored tasks in a single transaction.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if err := r.saveTasks(ctx, tasks); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStorageWrite, err)
	}

	r.logger.Debugf("Saved %d tasks in repository", len(tasks))
	return nil
}

func (r *Repository) saveTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks`); err != nil {
		return fmt.Errorf("could not clear subtasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}

	taskStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, title, description, priority, status, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare task insert: %w", err)
	}
	defer taskStmt.Close()

	subStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO subtasks (id, task_id, position, title, description, status, finished_at, estimated_hours, actual_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare subtask insert: %w", err)
	}
	defer subStmt.Close()

	for i, t := range tasks {
		_, err := taskStmt.ExecContext(ctx, t.ID, i, t.Title, t.Description, string(t.Priority), string(t.Status), nullStringFromTime(t.FinishedAt))
		if err != nil {
			return fmt.Errorf("could not insert task %s: %w", t.ID, err)
		}

		for j, s := range t.Subtasks {
			var actualHours sql.NullFloat64
			if s.ActualHours != nil {
				actualHours = sql.NullFloat64{Float64: *s.ActualHours, Valid: true}
			}

			_, err := subStmt.ExecContext(ctx, s.ID, t.ID, j, s.Title, s.Description, string(s.Status), nullStringFromTime(s.FinishedAt), s.EstimatedHours, actualHours)
			if err != nil {
				return fmt.Errorf("could not insert subtask %s: %w", s.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

func timeFromNullString(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, ok := model.ParseTimestamp(s.String)
	if !ok {
		return nil
	}
	return &t
}

func nullStringFromTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: model.FormatTimestamp(*t), Valid: true}
}
