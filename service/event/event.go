package event

import (
	"time"

	"github.com/viant/schedsim/internal/clock"
)

// Event types published by the simulation.
const (
	TypeArrived    = "arrived"
	TypeDeferred   = "deferred"
	TypeDispatched = "dispatched"
	TypeBlocked    = "blocked"
	TypeWoken      = "woken"
	TypePreempted  = "preempted"
	TypeTerminated = "terminated"
	TypeSuspended  = "suspended"
	TypeResumed    = "resumed"
	TypeOutput     = "output"
	TypeError      = "error"
	TypeReset      = "reset"
)

type Context struct {
	RunID     string `json:"runID,omitempty"`
	Tick      int    `json:"tick"`
	ProcessID int    `json:"processID,omitempty"`
	EventType string `json:"eventType"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
