package schedsim

import (
	"context"
	"log/slog"
	"os"

	"github.com/viant/afs"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
	hmemory "github.com/viant/schedsim/service/dao/snapshot/memory"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/fileio"
	"github.com/viant/schedsim/service/messaging"
	mmemory "github.com/viant/schedsim/service/messaging/memory"
	"github.com/viant/schedsim/tracing"
)

// Version is reported as the tracing service version.
const Version = "0.1.0"

// Service wires a simulation with its collaborators.
type Service struct {
	config    *Config
	fs        afs.Service
	logger    *slog.Logger
	queue     messaging.Queue[event.Event[string]]
	history   dao.Service[int, simulation.Snapshot]
	publisher *event.Publisher[string]
	tracing   bool
	runtime   *Runtime
}

// Runtime returns the thread-safe simulation runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Events returns the lifecycle event publisher, for example to attach an
// event.Listener.
func (s *Service) Events() *event.Publisher[string] {
	return s.publisher
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.logger == nil {
		s.logger = logger.New(os.Stderr, s.config.LogLevel, "schedsim")
	}
	if s.queue == nil {
		s.queue = NewEventQueue()
	}
	if s.history == nil {
		s.history = hmemory.New()
	}
	if !s.tracing && s.config.Trace.Enabled {
		s.tracing = tracing.Init("schedsim", Version, s.config.Trace.Output) == nil
	}
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	if err := s.config.Validate(); err != nil {
		return err
	}
	config, err := s.config.Simulation()
	if err != nil {
		return err
	}
	runID := idgen.New()
	s.publisher = event.NewPublisher[string](s.queue, runID)
	s.runtime = &Runtime{
		runID:   runID,
		config:  s.config,
		logger:  s.logger,
		history: s.history,
		tracing: s.tracing,
	}
	s.runtime.sim, err = simulation.New(config,
		simulation.WithLogger(s.logger),
		simulation.WithFiles(fileio.New(s.fs, s.config.BaseURL)),
		simulation.WithPublisher(s.publisher),
		simulation.WithObserver(s.runtime.observe))
	if err != nil {
		return err
	}
	_, s.runtime.tracker = progress.WithNewTracker(context.Background(), runID, config.Algorithm.String(), nil)
	return nil
}

// EventCapacity bounds the default event queue; events published to a full
// queue are dropped.
const EventCapacity = 4096

// NewEventQueue returns the in-memory queue used when no event queue is set.
func NewEventQueue() *mmemory.Queue[event.Event[string]] {
	config := mmemory.DefaultConfig()
	config.Capacity = EventCapacity
	return mmemory.NewQueue[event.Event[string]](config)
}

// New creates a service; it fails when the configuration is invalid.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
