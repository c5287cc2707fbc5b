package scheduler

import "github.com/viant/schedsim/model/process"

// mlfq demotes a process one level per expired quantum; the lowest level
// is round robin.
type mlfq struct {
	*ready
	quanta [Levels]int
}

func (s *mlfq) Kind() Kind { return MLFQ }

func (s *mlfq) Admit(entry *process.Entry) error {
	entry.QuantumRemaining = s.quanta[0]
	return s.enqueue(entry, 0)
}

// Next keeps the remaining quantum of a process resumed after blocking.
func (s *mlfq) Next() (*process.Entry, error) {
	entry, err := s.dequeue()
	if entry != nil && entry.QuantumRemaining <= 0 {
		entry.QuantumRemaining = s.quanta[entry.QueueLevel]
	}
	return entry, err
}

func (s *mlfq) Charge(entry *process.Entry) {
	entry.QuantumRemaining--
}

func (s *mlfq) Preempt(entry *process.Entry) (bool, error) {
	if entry.QuantumRemaining > 0 {
		return false, nil
	}
	level := entry.QueueLevel
	if level < Levels-1 {
		level++
	}
	entry.QuantumRemaining = s.quanta[level]
	return true, s.enqueue(entry, level)
}

// Resume re-enqueues at the recorded level, one level lower when the
// quantum ran out on the blocking instruction.
func (s *mlfq) Resume(entry *process.Entry) error {
	level := entry.QueueLevel
	if entry.QuantumRemaining <= 0 {
		if level < Levels-1 {
			level++
		}
		entry.QuantumRemaining = s.quanta[level]
	}
	return s.enqueue(entry, level)
}
