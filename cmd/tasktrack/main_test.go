package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Subtasks []struct {
		ID          string   `json:"id"`
		Status      string   `json:"status"`
		ActualHours *float64 `json:"actual_hours"`
	} `json:"subtasks"`
}

func runCLI(t *testing.T, store, path string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"tasktrack", "--no-log", "--store", store, "--store-path", path}, args...)
	err := Run(context.Background(), full, strings.NewReader(""), &stdout, &stderr)
	return stdout.String(), err
}

func listTasks(t *testing.T, store, path string, args ...string) []cliTask {
	t.Helper()

	out, err := runCLI(t, store, path, append([]string{"list", "--format", "json"}, args...)...)
	require.NoError(t, err)

	var tasks []cliTask
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	return tasks
}

func TestCLILifecycle(t *testing.T) {
	tests := map[string]struct {
		store string
		file  string
	}{
		"JSON store":   {store: "json", file: "tasks.json"},
		"YAML store":   {store: "yaml", file: "tasks.yaml"},
		"SQLite store": {store: "sqlite", file: "tasks.db"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			path := filepath.Join(t.TempDir(), "data", test.file)

			// Init seeds the example only once.
			out, err := runCLI(t, test.store, path, "init")
			require.NoError(err)
			assert.Contains(out, "initialized")
			out, err = runCLI(t, test.store, path, "init")
			require.NoError(err)
			assert.Contains(out, "nothing to do")

			tasks := listTasks(t, test.store, path)
			require.Len(tasks, 1)
			assert.Equal("WaitingForReply", tasks[0].Status)

			// Add a leaf task and mark it as done.
			_, err = runCLI(t, test.store, path, "add", "Pay the bills", "-p", "High")
			require.NoError(err)
			tasks = listTasks(t, test.store, path, "--priority", "High")
			require.Len(tasks, 1)
			leafID := tasks[0].ID

			_, err = runCLI(t, test.store, path, "status", leafID, "Done")
			require.NoError(err)
			tasks = listTasks(t, test.store, path, "--status", "Done")
			require.Len(tasks, 1)
			assert.Equal(leafID, tasks[0].ID)

			// The example task status is derived from its subtasks.
			tasks = listTasks(t, test.store, path, "--query", "example")
			require.Len(tasks, 1)
			example := tasks[0]
			_, err = runCLI(t, test.store, path, "status", example.ID, "Done")
			assert.Error(err)

			// Subtasks can't be done without actual hours.
			_, err = runCLI(t, test.store, path, "subtask", "status", example.ID, example.Subtasks[0].ID, "Done")
			assert.Error(err)

			_, err = runCLI(t, test.store, path, "done", example.ID, "--actual", "2.5")
			require.NoError(err)
			tasks = listTasks(t, test.store, path, "--query", "example")
			require.Len(tasks, 1)
			assert.Equal("Done", tasks[0].Status)
			for _, s := range tasks[0].Subtasks {
				assert.Equal("Done", s.Status)
				require.NotNil(s.ActualHours)
				assert.Equal(2.5, *s.ActualHours)
			}

			// Removing.
			_, err = runCLI(t, test.store, path, "rm", leafID)
			require.NoError(err)
			assert.Len(listTasks(t, test.store, path), 1)

			_, err = os.Stat(path)
			assert.NoError(err)
		})
	}
}

func TestCLISubtasks(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "tasks.json")

	_, err := runCLI(t, "json", path, "add", "Move house")
	require.NoError(err)
	task := listTasks(t, "json", path)[0]

	_, err = runCLI(t, "json", path, "subtask", "add", task.ID, "Call movers", "-e", "1", "-s", "WaitingForReply")
	require.NoError(err)
	_, err = runCLI(t, "json", path, "subtask", "add", task.ID, "Pack", "-e", "4")
	require.NoError(err)

	task = listTasks(t, "json", path)[0]
	require.Len(task.Subtasks, 2)
	assert.Equal("WaitingForReply", task.Status)

	out, err := runCLI(t, "json", path, "list", "--group", "waiting")
	require.NoError(err)
	assert.Contains(out, "Move house")

	_, err = runCLI(t, "json", path, "subtask", "edit", task.ID, task.Subtasks[0].ID, "-s", "ToDo")
	require.NoError(err)
	task = listTasks(t, "json", path)[0]
	assert.Equal("ToDo", task.Status)

	_, err = runCLI(t, "json", path, "subtask", "rm", task.ID, task.Subtasks[1].ID)
	require.NoError(err)
	task = listTasks(t, "json", path)[0]
	assert.Len(task.Subtasks, 1)

	out, err = runCLI(t, "json", path, "stats")
	require.NoError(err)
	assert.Contains(out, "STATUS")
}

func TestCLIExport(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	tasks := `[
  {"id": "t1", "title": "Report <Q1>", "description": "", "priority": "Hoch", "status": "Done", "finished_date": "2025-03-10T09:00:00", "subtasks": []}
]`
	require.NoError(os.WriteFile(path, []byte(tasks), 0o644))

	out := filepath.Join(dir, "report.html")
	_, err := runCLI(t, "json", path, "export", "--year", "2025", "--month", "3", "--out", out)
	require.NoError(err)

	html, err := os.ReadFile(out)
	require.NoError(err)
	assert.Contains(string(html), "Report &lt;Q1&gt;")
	assert.Contains(string(html), "Priority: High")

	stdout, err := runCLI(t, "json", path, "export", "--year", "2025", "--month", "3", "--format", "json")
	require.NoError(err)
	assert.Contains(stdout, `"task_id": "t1"`)

	_, err = runCLI(t, "json", path, "export", "--year", "2025", "--month", "4", "--format", "table")
	assert.Error(err)
}

func TestCLIMalformedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := runCLI(t, "json", path, "add", "new")
	assert.Error(t, err)

	// The broken store is never overwritten.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}
