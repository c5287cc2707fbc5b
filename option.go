package schedsim

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/messaging"
	"github.com/viant/schedsim/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service
type Option func(s *Service)

// WithConfig sets the engine configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFileSystem sets the storage used for programs, data files and config
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEventQueue sets the queue receiving lifecycle events
func WithEventQueue(queue messaging.Queue[event.Event[string]]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithHistory sets the per tick snapshot store
func WithHistory(history dao.Service[int, simulation.Snapshot]) Option {
	return func(s *Service) {
		s.history = history
	}
}

// WithTracing records a span per tick using the stdout exporter, or
// outputFile when set. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracing = tracing.Init(serviceName, serviceVersion, outputFile) == nil
	}
}

// WithTracingExporter records spans with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracing = tracing.InitWithExporter(serviceName, serviceVersion, exporter) == nil
	}
}
