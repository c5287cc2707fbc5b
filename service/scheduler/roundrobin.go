package scheduler

import "github.com/viant/schedsim/model/process"

// roundRobin rotates processes through a single queue with a fixed quantum.
type roundRobin struct {
	*ready
	quantum int
}

func (s *roundRobin) Kind() Kind { return RoundRobin }

func (s *roundRobin) Admit(entry *process.Entry) error {
	entry.QuantumRemaining = s.quantum
	return s.enqueue(entry, 0)
}

func (s *roundRobin) Next() (*process.Entry, error) {
	entry, err := s.dequeue()
	if entry != nil {
		entry.QuantumRemaining = s.quantum
	}
	return entry, err
}

func (s *roundRobin) Charge(entry *process.Entry) {
	entry.QuantumRemaining--
}

func (s *roundRobin) Preempt(entry *process.Entry) (bool, error) {
	if entry.QuantumRemaining > 0 {
		return false, nil
	}
	return true, s.enqueue(entry, 0)
}

func (s *roundRobin) Resume(entry *process.Entry) error {
	return s.enqueue(entry, 0)
}
