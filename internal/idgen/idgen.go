package idgen

import "github.com/google/uuid"

// NewFunc produces identifiers; override in tests.
var NewFunc = func() string { return uuid.New().String() }

// New returns a random UUID string.
func New() string { return NewFunc() }
