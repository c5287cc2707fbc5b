package mutex

import (
	"errors"
	"fmt"

	"github.com/viant/schedsim/model/process"
)

// Resource names.
const (
	File       = "file"
	UserInput  = "userInput"
	UserOutput = "userOutput"
)

// Resources lists every lockable resource.
var Resources = []string{File, UserInput, UserOutput}

var (
	// ErrNotOwner is returned when a non-owner signals a mutex.
	ErrNotOwner = errors.New("mutex: signal by non-owner")
	// ErrUnknownResource is returned for a resource outside Resources.
	ErrUnknownResource = errors.New("mutex: unknown resource")
)

// Mutex is a binary lock with a blocked list ordered by descending priority,
// first blocked first served on ties.
type Mutex struct {
	Name    string
	owner   *process.PCB
	blocked []*process.PCB
}

func (m *Mutex) Locked() bool { return m.owner != nil }

// Owner returns the holding PCB or nil.
func (m *Mutex) Owner() *process.PCB { return m.owner }

// Blocked returns waiting PCBs in wake order.
func (m *Mutex) Blocked() []*process.PCB {
	ret := make([]*process.PCB, len(m.blocked))
	copy(ret, m.blocked)
	return ret
}

// Wait acquires the mutex for pcb or parks it in the blocked list. It
// returns true when the lock was acquired.
func (m *Mutex) Wait(pcb *process.PCB) (bool, error) {
	if m.owner == nil {
		m.owner = pcb
		return true, nil
	}
	if err := pcb.MoveTo(process.BlockedOn(m.Name)); err != nil {
		return false, err
	}
	pos := len(m.blocked)
	for i, waiting := range m.blocked {
		if pcb.Priority > waiting.Priority {
			pos = i
			break
		}
	}
	m.blocked = append(m.blocked, nil)
	copy(m.blocked[pos+1:], m.blocked[pos:])
	m.blocked[pos] = pcb
	return false, nil
}

// Signal releases the mutex held by pcb. When waiters exist ownership passes
// directly to the highest priority one, which is returned still located in
// the blocked list for the caller to re-admit.
func (m *Mutex) Signal(pcb *process.PCB) (*process.PCB, error) {
	if m.owner != pcb || pcb == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, m.Name)
	}
	if len(m.blocked) == 0 {
		m.owner = nil
		return nil, nil
	}
	next := m.blocked[0]
	m.blocked[0] = nil
	m.blocked = m.blocked[1:]
	m.owner = next
	return next, nil
}

// Reset frees the lock and drops waiters.
func (m *Mutex) Reset() {
	m.owner = nil
	m.blocked = nil
}

// New creates a free mutex for resource.
func New(resource string) *Mutex {
	return &Mutex{Name: resource}
}
