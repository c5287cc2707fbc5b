package process

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidMove is returned for a location transition that would leave a
// PCB in two structures at once or in none.
var ErrInvalidMove = errors.New("process: invalid location transition")

// Place identifies which structure holds a PCB.
type Place int

const (
	// Nowhere is the place of a PCB that has not been admitted or was released.
	Nowhere Place = iota
	// InReady is a ready queue, Level selects the MLFQ level.
	InReady
	// InBlocked is a mutex blocked list named by Resource.
	InBlocked
	// OnCPU is the running slot.
	OnCPU
)

// Location is the single membership slot of a PCB.
type Location struct {
	Place    Place  `json:"place"`
	Level    int    `json:"level,omitempty"`
	Resource string `json:"resource,omitempty"`
}

// Ready returns a ready-queue location at level.
func Ready(level int) Location { return Location{Place: InReady, Level: level} }

// BlockedOn returns a location in the blocked list of resource.
func BlockedOn(resource string) Location { return Location{Place: InBlocked, Resource: resource} }

// Running returns the CPU location.
func Running() Location { return Location{Place: OnCPU} }

// None returns the detached location.
func None() Location { return Location{} }

func (l Location) String() string {
	switch l.Place {
	case InReady:
		return "ready(" + strconv.Itoa(l.Level) + ")"
	case InBlocked:
		return "blocked(" + l.Resource + ")"
	case OnCPU:
		return "running"
	}
	return "none"
}

// allowed lists legal transitions between places.
var allowed = map[Place][]Place{
	Nowhere:   {InReady},
	InReady:   {OnCPU},
	OnCPU:     {InReady, InBlocked, Nowhere},
	InBlocked: {InReady},
}

// MoveTo relocates the PCB and sets the matching state. Moving to Nowhere
// keeps the current state, callers set NEW or TERMINATED explicitly.
func (p *PCB) MoveTo(to Location) error {
	from := p.Location.Place
	legal := false
	for _, candidate := range allowed[from] {
		if candidate == to.Place {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: pid %d %v -> %v", ErrInvalidMove, p.ID, p.Location, to)
	}
	p.Location = to
	switch to.Place {
	case InReady:
		p.State = StateReady
	case InBlocked:
		p.State = StateBlocked
	case OnCPU:
		p.State = StateRunning
	}
	return nil
}
