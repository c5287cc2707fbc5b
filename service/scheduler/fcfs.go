package scheduler

import "github.com/viant/schedsim/model/process"

// fcfs runs each process until it terminates or blocks.
type fcfs struct {
	*ready
}

func (s *fcfs) Kind() Kind { return FCFS }

func (s *fcfs) Admit(entry *process.Entry) error {
	return s.enqueue(entry, 0)
}

func (s *fcfs) Next() (*process.Entry, error) {
	return s.dequeue()
}

func (s *fcfs) Charge(*process.Entry) {}

func (s *fcfs) Preempt(*process.Entry) (bool, error) {
	return false, nil
}

func (s *fcfs) Resume(entry *process.Entry) error {
	return s.enqueue(entry, 0)
}
