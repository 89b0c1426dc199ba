package service

import "errors"

var (
	// ErrNotFound signals an operation against a missing task.
	ErrNotFound = errors.New("service: task not found")
	// ErrAlreadyCompleted signals a second completion of a task within one
	// calendar day.
	ErrAlreadyCompleted = errors.New("service: task already completed today")
	// ErrNotReady signals that storage stayed unreachable through the
	// readiness retry window.
	ErrNotReady = errors.New("service: storage not ready")
	// ErrNoInstances signals that recurring generation produced nothing.
	ErrNoInstances = errors.New("service: no recurring instances created")
)
