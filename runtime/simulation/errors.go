package simulation

import "errors"

var (
	// ErrSuspended is returned when stepping while an input request is pending.
	ErrSuspended = errors.New("simulation: awaiting input")
	// ErrNotSuspended is returned when supplying input without a pending request.
	ErrNotSuspended = errors.New("simulation: no pending input request")
	// ErrInvalidInput is returned for text violating the variable naming convention.
	ErrInvalidInput = errors.New("simulation: invalid input")
	// ErrDeadlock is returned when no process can ever run again.
	ErrDeadlock = errors.New("simulation: deadlock")
	// ErrTickLimit is returned when a run exceeds the configured tick limit.
	ErrTickLimit = errors.New("simulation: tick limit reached")
	// ErrInvalidQuantum is returned for a quantum below 1.
	ErrInvalidQuantum = errors.New("simulation: invalid quantum")
	// ErrInconsistent is returned by Validate.
	ErrInconsistent = errors.New("simulation: inconsistent state")
)
