package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/slok/tasktrack/internal/storage/sqlite/migrations"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestNewSchema(t *testing.T) {
	_, err := migrations.NewSchema(migrations.SchemaConfig{})
	assert.Error(t, err)
}

func TestSchemaLifecycle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.TODO()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(err)
	defer db.Close()

	schema, err := migrations.NewSchema(migrations.SchemaConfig{DB: db})
	require.NoError(err)

	v, err := schema.Version(ctx)
	require.NoError(err)
	assert.Equal(uint(0), v)

	require.NoError(schema.Apply(ctx))
	assert.True(tableExists(t, db, "tasks"))
	assert.True(tableExists(t, db, "subtasks"))

	v, err = schema.Version(ctx)
	require.NoError(err)
	assert.Equal(uint(1), v)

	// Applying an up to date schema changes nothing.
	require.NoError(schema.Apply(ctx))
	v, err = schema.Version(ctx)
	require.NoError(err)
	assert.Equal(uint(1), v)

	require.NoError(schema.Revert(ctx))
	assert.False(tableExists(t, db, "tasks"))
	assert.False(tableExists(t, db, "subtasks"))
}
