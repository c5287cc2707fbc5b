package schedsim

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/variable"
	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/scheduler"
	"gopkg.in/yaml.v3"
)

// Config is the serialisable engine configuration, usually loaded from YAML.
// Fields left out of a document keep their DefaultConfig values.
type Config struct {
	Algorithm    string         `json:"algorithm" yaml:"algorithm"`
	Quantum      int            `json:"quantum" yaml:"quantum"`
	LevelQuanta  []int          `json:"levelQuanta,omitempty" yaml:"levelQuanta,omitempty"`
	MemorySize   int            `json:"memorySize" yaml:"memorySize"`
	MaxProcesses int            `json:"maxProcesses" yaml:"maxProcesses"`
	MaxVariables int            `json:"maxVariables" yaml:"maxVariables"`
	MaxTicks     int            `json:"maxTicks" yaml:"maxTicks"`
	BaseURL      string         `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	LogLevel     string         `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	Trace        TraceConfig    `json:"trace" yaml:"trace"`
	Processes    []*ProcessSpec `json:"processes,omitempty" yaml:"processes,omitempty"`
}

// TraceConfig enables OpenTelemetry spans per tick.
type TraceConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
}

// ProcessSpec registers one program of the workload.
type ProcessSpec struct {
	Location string `json:"location" yaml:"location"`
	Arrival  int    `json:"arrival" yaml:"arrival"`
	Priority int    `json:"priority" yaml:"priority"`
}

// DefaultConfig returns FCFS with quantum 4 over a 60 word arena.
func DefaultConfig() *Config {
	quanta := scheduler.DefaultLevelQuanta
	return &Config{
		Algorithm:    scheduler.FCFS.String(),
		Quantum:      scheduler.DefaultQuantum,
		LevelQuanta:  quanta[:],
		MemorySize:   memory.DefaultSize,
		MaxProcesses: process.DefaultCapacity,
		MaxVariables: variable.DefaultCapacity,
		MaxTicks:     simulation.DefaultMaxTicks,
		LogLevel:     "info",
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if _, err := c.Simulation(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Processes) > c.MaxProcesses {
		errs = append(errs, fmt.Errorf("processes: %d exceed maxProcesses %d", len(c.Processes), c.MaxProcesses))
	}
	for i, spec := range c.Processes {
		switch {
		case spec == nil || spec.Location == "":
			errs = append(errs, fmt.Errorf("processes[%d].location is required", i))
		case spec.Arrival < 0:
			errs = append(errs, fmt.Errorf("processes[%d].arrival must be >= 0", i))
		}
	}
	return errors.Join(errs...)
}

// Simulation converts the document into the engine configuration.
func (c *Config) Simulation() (simulation.Config, error) {
	kind, err := scheduler.ParseKind(c.Algorithm)
	if err != nil {
		return simulation.Config{}, err
	}
	ret := simulation.Config{
		Algorithm:    kind,
		Scheduler:    scheduler.Config{Quantum: c.Quantum},
		MemorySize:   c.MemorySize,
		MaxProcesses: c.MaxProcesses,
		MaxVariables: c.MaxVariables,
		MaxTicks:     c.MaxTicks,
	}
	switch len(c.LevelQuanta) {
	case 0:
		ret.Scheduler.LevelQuanta = scheduler.DefaultLevelQuanta
	case len(ret.Scheduler.LevelQuanta):
		copy(ret.Scheduler.LevelQuanta[:], c.LevelQuanta)
	default:
		return simulation.Config{}, fmt.Errorf("levelQuanta: expected %d values, got %d", len(ret.Scheduler.LevelQuanta), len(c.LevelQuanta))
	}
	if err = ret.Validate(); err != nil {
		return simulation.Config{}, err
	}
	return ret, nil
}

// LoadConfig reads a YAML (or JSON) document from URL over DefaultConfig.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
