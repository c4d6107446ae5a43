// Package storagemock has testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/storage"
)

var _ storage.Repository = &MockRepository{}

// MockRepository is a mock of storage.Repository.
type MockRepository struct {
	mock.Mock
}

// LoadTasks mocks storage.Repository.LoadTasks.
func (m *MockRepository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

// SaveTasks mocks storage.Repository.SaveTasks.
func (m *MockRepository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}
