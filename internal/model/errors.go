package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrTransitionRejected is returned when a status change is not allowed.
	ErrTransitionRejected = errors.New("status transition rejected")
	// ErrStorageRead is returned when the persisted tasks can't be read or parsed.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite is returned when the tasks can't be persisted.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrNoResults is returned when a report has nothing to report.
	ErrNoResults = errors.New("no results")
)

// ValidationError is returned when an input field is not valid, no state is
// changed when returned.
type ValidationError struct {
	Field  string
	Reason string
	// Cause is the sentinel this error wraps, ErrNotValid when not set.
	Cause error
}

// NewValidationError returns a validation error for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NewRejectedTransitionError returns a validation error for a rejected status change.
func NewRejectedTransitionError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Cause: ErrTransitionRejected}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes every validation error match ErrNotValid, besides its cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrNotValid
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
