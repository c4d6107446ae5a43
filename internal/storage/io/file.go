package io

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/slok/tasktrack/internal/log"
	"github.com/slok/tasktrack/internal/model"
)

// Format is the file encoding of the task collection.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// RepositoryConfig is the configuration for the file repository.
type RepositoryConfig struct {
	Path string
	// Format defaults to JSON.
	Format Format
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}

	switch c.Format {
	case "":
		c.Format = FormatJSON
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.File", "format": c.Format})
	return nil
}

// FileRepository stores the whole task collection in a single JSON or YAML file.
type FileRepository struct {
	path   string
	format Format
	logger log.Logger
}

// NewFileRepository creates a new file repository.
func NewFileRepository(cfg RepositoryConfig) (*FileRepository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &FileRepository{
		path:   cfg.Path,
		format: cfg.Format,
		logger: cfg.Logger,
	}, nil
}

// Path returns the file the repository reads and writes.
func (r *FileRepository) Path() string { return r.path }

// LoadTasks reads the task collection from the file.
func (r *FileRepository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugf("Store %s does not exist, no tasks", r.path)
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("could not read %s: %w: %w", r.path, model.ErrStorageRead, err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var records []TaskRecord
	if err := r.unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w: %w", r.path, model.ErrStorageRead, err)
	}

	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, rec.ToModel())
	}

	r.logger.Debugf("Loaded %d tasks from %s", len(tasks), r.path)
	return tasks, nil
}

// SaveTasks overwrites the file with the task collection using
// write-temp-fsync-rename so readers never see a partial file.
func (r *FileRepository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	records := make([]TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, NewTaskRecord(t))
	}

	data, err := r.marshal(records)
	if err != nil {
		return fmt.Errorf("could not encode tasks: %w: %w", model.ErrStorageWrite, err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("could not write %s: %w: %w", r.path, model.ErrStorageWrite, err)
	}

	r.logger.Debugf("Saved %d tasks to %s", len(tasks), r.path)
	return nil
}

func (r *FileRepository) marshal(records []TaskRecord) ([]byte, error) {
	switch r.format {
	case FormatYAML:
		var b bytes.Buffer
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	default:
		var b bytes.Buffer
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	}
}

func (r *FileRepository) unmarshal(data []byte, records *[]TaskRecord) error {
	switch r.format {
	case FormatYAML:
		return yaml.Unmarshal(data, records)
	default:
		return json.Unmarshal(data, records)
	}
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	tmpF, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmpF.Write(data); err != nil {
		tmpF.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpF.Sync(); err != nil {
		tmpF.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := tmpF.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
