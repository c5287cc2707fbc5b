package event

import (
	"context"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/service/messaging"
)

type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
	runID string
}

// NewPublisher creates a publisher stamping events with runID.
func NewPublisher[T any](queue messaging.Queue[Event[T]], runID string) *Publisher[T] {
	return &Publisher[T]{queue: queue, runID: runID}
}

func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if p == nil {
		return nil
	}
	event.CreatedAt = clock.Now()
	if event.Context != nil && event.Context.RunID == "" {
		event.Context.RunID = p.runID
	}
	return p.queue.Publish(ctx, event)
}

// Consume returns the next event, acknowledged.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.Receive(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}

// Receive returns the next message; the caller acks or nacks it.
func (p *Publisher[T]) Receive(ctx context.Context) (messaging.Message[Event[T]], error) {
	return p.queue.Consume(ctx)
}
