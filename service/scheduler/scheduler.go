package scheduler

import (
	"fmt"

	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/queue"
)

const (
	// Levels is the number of MLFQ levels.
	Levels = 4
	// DefaultQuantum is the round robin quantum and the MLFQ lowest level quantum.
	DefaultQuantum = 4
)

// DefaultLevelQuanta are MLFQ quanta of levels 0..2.
var DefaultLevelQuanta = [Levels - 1]int{1, 2, 4}

// Config holds discipline parameters.
type Config struct {
	Quantum     int
	LevelQuanta [Levels - 1]int
}

// DefaultConfig returns default quanta.
func DefaultConfig() Config {
	return Config{Quantum: DefaultQuantum, LevelQuanta: DefaultLevelQuanta}
}

// Validate checks quanta.
func (c Config) Validate() error {
	if c.Quantum < 1 {
		return fmt.Errorf("scheduler: quantum must be >= 1, got %d", c.Quantum)
	}
	for i, q := range c.LevelQuanta {
		if q < 1 {
			return fmt.Errorf("scheduler: level %d quantum must be >= 1, got %d", i, q)
		}
	}
	return nil
}

// Scheduler orders admitted processes for the CPU.
type Scheduler interface {
	Kind() Kind
	// Admit enqueues a newly arrived process.
	Admit(entry *process.Entry) error
	// Next dequeues the process to run, nil when nothing is ready.
	Next() (*process.Entry, error)
	// Charge accounts one executed instruction to the running process.
	Charge(entry *process.Entry)
	// Preempt applies the quantum rule to a running process that neither
	// blocked nor terminated; it reports whether the CPU was released.
	Preempt(entry *process.Entry) (bool, error)
	// Resume re-admits a process woken from a blocked list.
	Resume(entry *process.Entry) error
	// Queues returns ready process ids per level, head first.
	Queues() [][]int
	Len() int
}

// New creates a scheduler of kind.
func New(kind Kind, config Config) (Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case FCFS:
		return &fcfs{ready: newReady(1)}, nil
	case RoundRobin:
		return &roundRobin{ready: newReady(1), quantum: config.Quantum}, nil
	case MLFQ:
		ret := &mlfq{ready: newReady(Levels)}
		copy(ret.quanta[:], config.LevelQuanta[:])
		ret.quanta[Levels-1] = config.Quantum
		return ret, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, kind)
}

// ready is a set of FIFO levels, level 0 first.
type ready struct {
	levels []*queue.FIFO[*process.Entry]
}

func (r *ready) enqueue(entry *process.Entry, level int) error {
	if err := entry.PCB.MoveTo(process.Ready(level)); err != nil {
		return err
	}
	entry.QueueLevel = level
	r.levels[level].Enqueue(entry)
	return nil
}

func (r *ready) dequeue() (*process.Entry, error) {
	for _, level := range r.levels {
		entry, ok := level.Dequeue()
		if !ok {
			continue
		}
		if err := entry.PCB.MoveTo(process.Running()); err != nil {
			return nil, err
		}
		return entry, nil
	}
	return nil, nil
}

func (r *ready) Queues() [][]int {
	ret := make([][]int, len(r.levels))
	for i, level := range r.levels {
		ids := []int{}
		for _, entry := range level.Items() {
			ids = append(ids, entry.ID)
		}
		ret[i] = ids
	}
	return ret
}

func (r *ready) Len() int {
	count := 0
	for _, level := range r.levels {
		count += level.Len()
	}
	return count
}

func newReady(levels int) *ready {
	ret := &ready{levels: make([]*queue.FIFO[*process.Entry], levels)}
	for i := range ret.levels {
		ret.levels[i] = queue.New[*process.Entry]()
	}
	return ret
}
