package mutex

import (
	"fmt"

	"github.com/viant/schedsim/model/process"
)

// Status is a read-only view of one mutex.
type Status struct {
	Name    string `json:"name"`
	Locked  bool   `json:"locked"`
	Owner   int    `json:"owner,omitempty"`
	Blocked []int  `json:"blocked,omitempty"`
}

// Set holds one mutex per resource.
type Set struct {
	mutexes map[string]*Mutex
}

// Get returns the mutex guarding resource.
func (s *Set) Get(resource string) (*Mutex, error) {
	m, ok := s.mutexes[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return m, nil
}

// ReleaseAll signals every mutex owned by pcb and returns woken waiters.
func (s *Set) ReleaseAll(pcb *process.PCB) []*process.PCB {
	var woken []*process.PCB
	for _, name := range Resources {
		m := s.mutexes[name]
		if m.owner != pcb {
			continue
		}
		if next, _ := m.Signal(pcb); next != nil {
			woken = append(woken, next)
		}
	}
	return woken
}

// WaitingOn returns the resource whose blocked list holds pcb.
func (s *Set) WaitingOn(pcb *process.PCB) (string, bool) {
	for _, name := range Resources {
		for _, waiting := range s.mutexes[name].blocked {
			if waiting == pcb {
				return name, true
			}
		}
	}
	return "", false
}

// Status returns mutex views in resource order.
func (s *Set) Status() []Status {
	ret := make([]Status, 0, len(Resources))
	for _, name := range Resources {
		m := s.mutexes[name]
		status := Status{Name: name, Locked: m.Locked()}
		if m.owner != nil {
			status.Owner = m.owner.ID
		}
		for _, waiting := range m.blocked {
			status.Blocked = append(status.Blocked, waiting.ID)
		}
		ret = append(ret, status)
	}
	return ret
}

// Reset frees every mutex.
func (s *Set) Reset() {
	for _, m := range s.mutexes {
		m.Reset()
	}
}

// NewSet creates free mutexes for all resources.
func NewSet() *Set {
	ret := &Set{mutexes: make(map[string]*Mutex, len(Resources))}
	for _, name := range Resources {
		ret.mutexes[name] = New(name)
	}
	return ret
}
