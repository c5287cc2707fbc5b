package messaging

import (
	"context"
)

// Queue is a message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue without blocking
	Publish(ctx context.Context, t *T) error

	// Consume waits for a single message or context cancellation
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
