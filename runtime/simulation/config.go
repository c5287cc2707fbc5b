package simulation

import (
	"fmt"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/variable"
	"github.com/viant/schedsim/service/scheduler"
)

// DefaultMaxTicks bounds Run.
const DefaultMaxTicks = 10000

// Config defines simulation capacities and the scheduling discipline.
type Config struct {
	Algorithm    scheduler.Kind
	Scheduler    scheduler.Config
	MemorySize   int
	MaxProcesses int
	MaxVariables int
	MaxTicks     int
}

// DefaultConfig returns FCFS over a 60 word arena with 10 process slots.
func DefaultConfig() Config {
	return Config{
		Algorithm:    scheduler.FCFS,
		Scheduler:    scheduler.DefaultConfig(),
		MemorySize:   memory.DefaultSize,
		MaxProcesses: process.DefaultCapacity,
		MaxVariables: variable.DefaultCapacity,
		MaxTicks:     DefaultMaxTicks,
	}
}

// Validate returns an error describing the first invalid setting.
func (c Config) Validate() error {
	if c.MemorySize <= memory.Reserved {
		return fmt.Errorf("memorySize must be > %d", memory.Reserved)
	}
	if c.MaxProcesses <= 0 {
		return fmt.Errorf("maxProcesses must be > 0")
	}
	if c.MaxVariables <= 0 {
		return fmt.Errorf("maxVariables must be > 0")
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("maxTicks must be > 0")
	}
	return c.Scheduler.Validate()
}
