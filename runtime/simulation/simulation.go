package simulation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/mutex"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/variable"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/fileio"
	"github.com/viant/schedsim/service/interpreter"
	"github.com/viant/schedsim/service/program"
	"github.com/viant/schedsim/service/scheduler"
)

// Files reads programs and serves readFile/writeFile.
type Files interface {
	interpreter.Files
	program.Downloader
}

// Status is the result of advancing the simulation.
type Status int

const (
	// StatusPending means more ticks are needed.
	StatusPending Status = iota
	// StatusComplete means every registered process terminated.
	StatusComplete
	// StatusSuspended means the current tick awaits SupplyInput.
	StatusSuspended
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusSuspended:
		return "suspended"
	}
	return "pending"
}

// Suspension describes a pending input request.
type Suspension struct {
	Variable  string `json:"variable"`
	ProcessID int    `json:"processID"`
	Numeric   bool   `json:"numeric"`

	outcome *interpreter.Outcome
}

// Slot records the instruction executed in one tick.
type Slot struct {
	Tick        int    `json:"tick"`
	ProcessID   int    `json:"processID"`
	Instruction string `json:"instruction,omitempty"`
}

// Simulation holds the complete state of one scheduler instance. It is not
// safe for concurrent use; callers serialise ticks.
type Simulation struct {
	config      Config
	arena       *memory.Arena
	table       *process.Table
	variables   *variable.Table
	locks       *mutex.Set
	scheduler   scheduler.Scheduler
	interpreter *interpreter.Service
	loader      *program.Loader
	files       Files
	logger      *slog.Logger
	publisher   *event.Publisher[string]
	observer    Observer

	time      int
	running   *process.Entry
	suspended *Suspension
	output    []string
	timeline  []Slot
}

// Config returns the active configuration.
func (s *Simulation) Config() Config { return s.config }

// Time returns the current tick.
func (s *Simulation) Time() int { return s.time }

// Register adds a process whose program at location arrives at tick arrival.
// The PCB and arena block are created once the arrival tick is reached and
// enough contiguous memory is free.
func (s *Simulation) Register(location string, arrival, priority int) (int, error) {
	entry, err := s.table.Register(location, arrival, priority)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("process registered", "pid", entry.ID, "location", location, "arrival", arrival, "priority", priority)
	return entry.ID, nil
}

// Entries returns the process table.
func (s *Simulation) Entries() []*process.Entry {
	return s.table.Entries()
}

// Suspension returns the pending input request.
func (s *Simulation) Suspension() (Suspension, bool) {
	if s.suspended == nil {
		return Suspension{}, false
	}
	return *s.suspended, true
}

// Output returns the ordered output log.
func (s *Simulation) Output() []string {
	return append([]string(nil), s.output...)
}

// Timeline returns the executed instruction record.
func (s *Simulation) Timeline() []Slot {
	return append([]Slot(nil), s.timeline...)
}

// Reset releases every PCB, table entry, variable, lock and arena word.
func (s *Simulation) Reset() {
	s.arena.Reset()
	s.table.Reset()
	s.variables.Reset()
	s.locks.Reset()
	s.scheduler, _ = scheduler.New(s.config.Algorithm, s.config.Scheduler)
	s.time = 0
	s.running = nil
	s.suspended = nil
	s.output = nil
	s.timeline = nil
	s.logger.Info("simulation reset", "algorithm", s.config.Algorithm.String())
	s.publish(context.Background(), event.TypeReset, 0, s.config.Algorithm.String())
}

// SetAlgorithm switches the discipline. Switching while any process is
// admitted resets the simulation.
func (s *Simulation) SetAlgorithm(kind scheduler.Kind) error {
	config := s.config
	config.Algorithm = kind
	return s.reconfigure(config)
}

// SetQuantum changes the round robin and lowest MLFQ level quantum.
// Changing it while any process is admitted resets the simulation.
func (s *Simulation) SetQuantum(quantum int) error {
	if quantum < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantum, quantum)
	}
	config := s.config
	config.Scheduler.Quantum = quantum
	return s.reconfigure(config)
}

func (s *Simulation) reconfigure(config Config) error {
	sched, err := scheduler.New(config.Algorithm, config.Scheduler)
	if err != nil {
		return err
	}
	active := s.Active()
	s.config = config
	if active {
		s.Reset()
		return nil
	}
	s.scheduler = sched
	return nil
}

// Active reports whether any process was admitted and has not finished, or a
// tick is in progress.
func (s *Simulation) Active() bool {
	return s.running != nil || s.suspended != nil || s.table.Active()
}

// New creates a simulation. It fails only when core structures cannot be built.
func New(config Config, options ...Option) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ret := &Simulation{config: config}
	var err error
	if ret.arena, err = memory.New(config.MemorySize); err != nil {
		return nil, err
	}
	if ret.table, err = process.NewTable(config.MaxProcesses); err != nil {
		return nil, err
	}
	if ret.variables, err = variable.NewTable(config.MaxVariables); err != nil {
		return nil, err
	}
	if ret.scheduler, err = scheduler.New(config.Algorithm, config.Scheduler); err != nil {
		return nil, err
	}
	ret.locks = mutex.NewSet()
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.files == nil {
		ret.files = fileio.New(nil, "")
	}
	ret.loader = program.NewLoader(ret.files)
	ret.interpreter = interpreter.New(ret.variables, ret.arena, ret.locks, ret.files)
	return ret, nil
}
