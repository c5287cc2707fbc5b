package dao

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates a negative or otherwise unusable key.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
