package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/storage/memory"
)

func TestRepository(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository)
	}{
		"An empty repository should load no tasks.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				tasks, err := repo.LoadTasks(ctx)
				require.NoError(t, err)
				assert.Empty(t, tasks)
				assert.NotNil(t, tasks)
			},
		},

		"Saved tasks should be loaded in order.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				err := repo.SaveTasks(ctx, []model.Task{{ID: "b"}, {ID: "a"}})
				require.NoError(t, err)

				tasks, err := repo.LoadTasks(ctx)
				require.NoError(t, err)
				assert.Equal(t, []model.Task{{ID: "b"}, {ID: "a"}}, tasks)
				assert.Equal(t, 1, repo.Saves())
			},
		},

		"Mutating loaded or saved tasks should not change the stored ones.": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				saved := []model.Task{{ID: "a", Subtasks: []model.Subtask{{ID: "s"}}}}
				require.NoError(t, repo.SaveTasks(ctx, saved))
				saved[0].Subtasks[0].Title = "changed"

				loaded, err := repo.LoadTasks(ctx)
				require.NoError(t, err)
				loaded[0].Title = "changed"

				again, err := repo.LoadTasks(ctx)
				require.NoError(t, err)
				assert.Equal(t, "", again[0].Title)
				assert.Equal(t, "", again[0].Subtasks[0].Title)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(t, err)

			test.actions(context.Background(), t, repo)
		})
	}
}
