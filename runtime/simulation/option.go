package simulation

import (
	"context"
	"log/slog"

	"github.com/viant/schedsim/service/event"
)

// Option customises a Simulation
type Option func(s *Simulation)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithFiles sets the program and data file collaborator
func WithFiles(files Files) Option {
	return func(s *Simulation) {
		s.files = files
	}
}

// WithPublisher sets the lifecycle event publisher
func WithPublisher(publisher *event.Publisher[string]) Option {
	return func(s *Simulation) {
		s.publisher = publisher
	}
}

// Observer is notified once per closed tick with the slot it produced.
type Observer func(ctx context.Context, slot Slot)

// WithObserver registers a tick observer
func WithObserver(observer Observer) Option {
	return func(s *Simulation) {
		s.observer = observer
	}
}
