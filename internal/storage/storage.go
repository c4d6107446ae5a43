package storage

import (
	"context"

	"github.com/slok/tasktrack/internal/model"
)

// Repository is the interface for task collection persistence. The collection
// is always read and written as a whole.
type Repository interface {
	// LoadTasks returns the stored tasks in their stored order. A missing store
	// is an empty collection. Failures wrap model.ErrStorageRead.
	LoadTasks(ctx context.Context) ([]model.Task, error)
	// SaveTasks replaces the stored collection atomically. Failures wrap
	// model.ErrStorageWrite.
	SaveTasks(ctx context.Context, tasks []model.Task) error
}
