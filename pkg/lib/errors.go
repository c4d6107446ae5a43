package lib

import (
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/tracker"
)

// Sentinel errors returned by the SDK, check them with [errors.Is].
var (
	// ErrNotFound is returned when a task or subtask does not exist.
	ErrNotFound = model.ErrNotFound
	// ErrNotValid is returned when the input is not valid.
	ErrNotValid = model.ErrNotValid
	// ErrTransitionRejected is returned when a status change is not allowed.
	ErrTransitionRejected = model.ErrTransitionRejected
	// ErrStorageRead is returned when the store can't be read or parsed.
	ErrStorageRead = model.ErrStorageRead
	// ErrStorageWrite is returned when the store can't be written.
	ErrStorageWrite = model.ErrStorageWrite
	// ErrNoResults is returned when a report has nothing to report.
	ErrNoResults = model.ErrNoResults
	// ErrNotLoaded is returned on changes after a failed [Client.Reload].
	ErrNotLoaded = tracker.ErrNotLoaded
)
