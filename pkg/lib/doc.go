// Package lib provides a Go SDK for managing tasktrack tasks programmatically.
//
// This package allows applications to read and change a task store without
// shelling out to the tasktrack CLI binary. Every change is validated,
// saved and reloaded before returning, so the client always shows what the
// store holds.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	task, err := client.AddTask(ctx, lib.AddTaskOpts{Title: "Renew passport", Priority: lib.PriorityHigh})
//	sub, err := client.AddSubtask(ctx, task.ID, lib.AddSubtaskOpts{Title: "Book appointment", EstimatedHours: 0.5})
//	_, err = client.SetSubtaskStatus(ctx, task.ID, sub.ID, lib.StatusDone, lib.Hours(1))
//
// # Derived status
//
// The status of a task with subtasks is derived from them: all done is done,
// only todo and done work is todo, otherwise the most blocking status wins.
// Setting it directly returns [ErrTransitionRejected]. Marking a subtask as
// done requires its actual hours.
//
// # Stores
//
// The store is a JSON file by default, [StoreYAML] and [StoreSQLite] are also
// supported. Files written by older versions, with German labels and without
// IDs, are read and upgraded on the next change.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Task or subtask does not exist.
//   - [ErrNotValid]: Invalid input, nothing was changed.
//   - [ErrTransitionRejected]: Status change not allowed, nothing was changed.
//   - [ErrStorageRead], [ErrStorageWrite]: The store could not be read or written.
//   - [ErrNoResults]: A report has nothing to report.
//   - [ErrNotLoaded]: The last [Client.Reload] failed, changes are refused.
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines, operations
// are serialized. It assumes it is the only writer of its store.
package lib
