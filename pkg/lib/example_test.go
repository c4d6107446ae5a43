package lib_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/tasktrack/pkg/lib"
)

// This example shows how the status of a task is derived from its subtasks.
func Example_derivedStatus() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "tasktrack-example-derived-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{StorePath: filepath.Join(dir, "tasks.json")})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	task, err := client.AddTask(ctx, lib.AddTaskOpts{Title: "Renew passport", Priority: lib.PriorityHigh})
	if err != nil {
		panic(err)
	}

	book, err := client.AddSubtask(ctx, task.ID, lib.AddSubtaskOpts{Title: "Book appointment", EstimatedHours: 0.5})
	if err != nil {
		panic(err)
	}
	photos, err := client.AddSubtask(ctx, task.ID, lib.AddSubtaskOpts{Title: "Get photos", Status: lib.StatusWaitingForReply})
	if err != nil {
		panic(err)
	}

	printStatus := func() {
		t, err := client.GetTask(ctx, task.ID)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s: %s\n", t.Title, t.Status)
	}

	printStatus()

	if _, err := client.SetSubtaskStatus(ctx, task.ID, book.ID, lib.StatusDone, lib.Hours(1)); err != nil {
		panic(err)
	}
	printStatus()

	if _, err := client.SetSubtaskStatus(ctx, task.ID, photos.ID, lib.StatusDone, lib.Hours(0.5)); err != nil {
		panic(err)
	}
	printStatus()

	// Output:
	// Renew passport: WaitingForReply
	// Renew passport: WaitingForReply
	// Renew passport: Done
}

// This example shows how to handle SDK errors.
func Example_errorHandling() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "tasktrack-example-errors-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		Store:     lib.StoreYAML,
		StorePath: filepath.Join(dir, "tasks.yaml"),
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	_, err = client.GetTask(ctx, "nonexistent")
	fmt.Printf("not found: %v\n", errors.Is(err, lib.ErrNotFound))

	_, err = client.AddTask(ctx, lib.AddTaskOpts{})
	fmt.Printf("not valid: %v\n", errors.Is(err, lib.ErrNotValid))

	task, err := client.AddTask(ctx, lib.AddTaskOpts{Title: "Parent"})
	if err != nil {
		panic(err)
	}
	sub, err := client.AddSubtask(ctx, task.ID, lib.AddSubtaskOpts{Title: "Child"})
	if err != nil {
		panic(err)
	}
	_, err = client.SetSubtaskStatus(ctx, task.ID, sub.ID, lib.StatusDone, nil)
	fmt.Printf("rejected: %v\n", errors.Is(err, lib.ErrTransitionRejected))

	_, err = client.ExportMonth(ctx, 1999, 1)
	fmt.Printf("no results: %v\n", errors.Is(err, lib.ErrNoResults))

	// Output:
	// not found: true
	// not valid: true
	// rejected: true
	// no results: true
}

// This example shows how to list tasks sorted by priority.
func ExampleClient_ListTasks() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "tasktrack-example-list-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		Store:     lib.StoreSQLite,
		StorePath: filepath.Join(dir, "tasks.db"),
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	for _, opts := range []lib.AddTaskOpts{
		{Title: "Water plants", Priority: lib.PriorityLow},
		{Title: "Fix the heating", Priority: lib.PriorityCritical},
		{Title: "Call the landlord"},
	} {
		if _, err := client.AddTask(ctx, opts); err != nil {
			panic(err)
		}
	}

	tasks, err := client.ListTasks(ctx, &lib.ListTasksOpts{SortBy: "priority", Descending: true})
	if err != nil {
		panic(err)
	}
	for _, t := range tasks {
		fmt.Printf("%-8s %s\n", t.Priority, t.Title)
	}

	// Output:
	// Critical Fix the heating
	// Medium   Call the landlord
	// Low      Water plants
}
