package process

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultCapacity is the number of process table slots.
const DefaultCapacity = 10

// ErrTableFull is returned when registering beyond capacity.
var ErrTableFull = errors.New("process: table full")

// Table holds process entries in registration order. Process ids are 1-based.
type Table struct {
	entries  []*Entry
	capacity int
}

// Register appends a pending entry.
func (t *Table) Register(filename string, arrival, priority int) (*Entry, error) {
	if len(t.entries) >= t.capacity {
		return nil, fmt.Errorf("%w: capacity %d", ErrTableFull, t.capacity)
	}
	if arrival < 0 {
		return nil, fmt.Errorf("process: invalid arrival time %d", arrival)
	}
	entry := &Entry{
		ID:          len(t.entries) + 1,
		Filename:    filename,
		ArrivalTime: arrival,
		Priority:    priority,
	}
	t.entries = append(t.entries, entry)
	return entry, nil
}

// Entry returns the entry with id.
func (t *Table) Entry(id int) (*Entry, bool) {
	if id < 1 || id > len(t.entries) {
		return nil, false
	}
	return t.entries[id-1], true
}

// Entries returns entries in registration order.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// Pending returns entries whose arrival time has been reached but which are
// not admitted yet, highest priority first, registration order on ties.
func (t *Table) Pending(now int) []*Entry {
	var ret []*Entry
	for _, entry := range t.entries {
		if !entry.Arrived && !entry.Complete && entry.ArrivalTime <= now {
			ret = append(ret, entry)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Priority > ret[j].Priority
	})
	return ret
}

// Active reports whether any admitted process has not completed.
func (t *Table) Active() bool {
	for _, entry := range t.entries {
		if entry.Arrived && !entry.Complete {
			return true
		}
	}
	return false
}

// Completed returns the number of completed entries.
func (t *Table) Completed() int {
	count := 0
	for _, entry := range t.entries {
		if entry.Complete {
			count++
		}
	}
	return count
}

// AllComplete reports whether every registered process has terminated.
func (t *Table) AllComplete() bool {
	return t.Completed() == len(t.entries)
}

func (t *Table) Len() int { return len(t.entries) }

func (t *Table) Capacity() int { return t.capacity }

// Reset drops every entry.
func (t *Table) Reset() {
	t.entries = nil
}

// NewTable creates a table with capacity slots.
func NewTable(capacity int) (*Table, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("process: invalid table capacity %d", capacity)
	}
	return &Table{capacity: capacity}, nil
}
