// Package tracker is the task engine. It owns the live task collection and
// every mutation goes through normalization and a save then reload cycle, so
// the in-memory state always matches what the store would produce.
//
// An Engine is not safe for concurrent use and assumes it is the only writer
// of its store, saves overwrite the whole store.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/normalize"
	"github.com/slok/tasktrack/internal/storage"
)

// ErrNotLoaded is returned when mutating or saving before a successful load.
var ErrNotLoaded = errors.New("tasks not loaded")

// EngineConfig is the configuration for the engine.
type EngineConfig struct {
	Repository storage.Repository
	// Normalizer is optional, a default one is created when missing.
	Normalizer *normalize.Normalizer
	Logger     log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Normalizer == nil {
		n, err := normalize.NewNormalizer(normalize.NormalizerConfig{Logger: c.Logger})
		if err != nil {
			return fmt.Errorf("could not create normalizer: %w", err)
		}
		c.Normalizer = n
	}

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tracker.Engine"})
	return nil
}

// Engine manages a task collection backed by a repository.
type Engine struct {
	repo   storage.Repository
	norm   *normalize.Normalizer
	logger log.Logger

	tasks  []model.Task
	loaded bool
}

// NewEngine creates a new engine, Load must be called before using it.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		repo:   cfg.Repository,
		norm:   cfg.Normalizer,
		logger: cfg.Logger,
		tasks:  []model.Task{},
	}, nil
}

// Load replaces the live collection with the normalized stored one. On read
// errors the collection is left empty, never partially loaded, and mutations
// are refused until a load succeeds.
func (e *Engine) Load(ctx context.Context) error {
	tasks, err := e.repo.LoadTasks(ctx)
	if err != nil {
		e.tasks = []model.Task{}
		e.loaded = false
		return fmt.Errorf("could not load tasks: %w", err)
	}

	normalized := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		normalized = append(normalized, e.norm.Task(t))
	}
	e.tasks = e.uniqueIDs(normalized)
	e.loaded = true

	e.logger.Debugf("Loaded %d tasks", len(e.tasks))
	return nil
}

// Save normalizes and persists the whole live collection. On failure the live
// collection is kept, so it may be ahead of the store and saving can be retried.
func (e *Engine) Save(ctx context.Context) error {
	if !e.loaded {
		return ErrNotLoaded
	}

	normalized := make([]model.Task, 0, len(e.tasks))
	for _, t := range e.tasks {
		normalized = append(normalized, e.norm.Task(t))
	}
	e.tasks = normalized

	if err := e.repo.SaveTasks(ctx, e.tasks); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}

	e.logger.Debugf("Saved %d tasks", len(e.tasks))
	return nil
}

// Close releases the repository resources if it has any.
func (e *Engine) Close() error {
	if c, ok := e.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Tasks returns a copy of the live collection in insertion order.
func (e *Engine) Tasks() []model.Task {
	tasks := make([]model.Task, 0, len(e.tasks))
	for _, t := range e.tasks {
		tasks = append(tasks, t.Copy())
	}
	return tasks
}

// Task returns a copy of a task.
func (e *Engine) Task(id string) (*model.Task, error) {
	i, err := e.taskIndex(id)
	if err != nil {
		return nil, err
	}
	t := e.tasks[i].Copy()
	return &t, nil
}

// commit makes tasks the live collection and runs the save then reload cycle.
func (e *Engine) commit(ctx context.Context, tasks []model.Task) error {
	e.tasks = tasks

	if err := e.Save(ctx); err != nil {
		return err
	}

	if err := e.Load(ctx); err != nil {
		return fmt.Errorf("could not reload tasks after save: %w", err)
	}

	return nil
}

// mutable returns a copy of the live collection ready to be mutated.
func (e *Engine) mutable() ([]model.Task, error) {
	if !e.loaded {
		return nil, ErrNotLoaded
	}
	return e.Tasks(), nil
}

func (e *Engine) taskIndex(id string) (int, error) {
	for i, t := range e.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
}

func (e *Engine) subtaskIndex(taskID, subtaskID string) (int, int, error) {
	ti, err := e.taskIndex(taskID)
	if err != nil {
		return -1, -1, err
	}

	si := e.tasks[ti].SubtaskIndex(subtaskID)
	if si < 0 {
		return -1, -1, fmt.Errorf("subtask %s of task %s: %w", subtaskID, taskID, model.ErrNotFound)
	}

	return ti, si, nil
}

// uniqueIDs reassigns the IDs that are used more than once across tasks and subtasks.
func (e *Engine) uniqueIDs(tasks []model.Task) []model.Task {
	seen := map[string]bool{}
	unique := func(kind, id string) string {
		if !seen[id] {
			seen[id] = true
			return id
		}
		newID := e.norm.NewID()
		for seen[newID] {
			newID = e.norm.NewID()
		}
		seen[newID] = true
		e.logger.Warningf("Duplicated %s ID %s, reassigned to %s", kind, id, newID)
		return newID
	}

	for i := range tasks {
		tasks[i].ID = unique("task", tasks[i].ID)
		for j := range tasks[i].Subtasks {
			tasks[i].Subtasks[j].ID = unique("subtask", tasks[i].Subtasks[j].ID)
		}
	}

	return tasks
}
