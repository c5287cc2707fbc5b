package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/service/messaging"
)

// ErrQueueFull is returned by Publish when Capacity is reached.
var ErrQueueFull = errors.New("memory queue: full")

// Config for memory queue implementation
type Config struct {
	MaxRetries int
	RetryDelay time.Duration
	DeadLetter bool
	// Capacity limits pending messages, 0 means unbounded.
	Capacity int
}

// DefaultConfig returns an unbounded queue configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: 100 * time.Millisecond,
		DeadLetter: true,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
	createdAt  time.Time
}

// ID returns the message id
func (m *Message[T]) ID() string {
	return m.id
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return nil
}

// Nack requeues the message after RetryDelay until MaxRetries is exceeded,
// then moves it to the dead letter list.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.retryCount++

	q := m.queue
	if m.retryCount <= q.config.MaxRetries {
		retry := &Message[T]{
			id:         m.id,
			payload:    m.payload,
			queue:      q,
			retryCount: m.retryCount,
			createdAt:  clock.Now(),
		}
		time.AfterFunc(q.config.RetryDelay, func() { q.push(retry) })
	} else if q.config.DeadLetter {
		q.mu.Lock()
		q.dlq = append(q.dlq, m)
		q.mu.Unlock()
	}
	return nil
}

// Queue implements an unbounded, non-blocking publish messaging.Queue
type Queue[T any] struct {
	messages []*Message[T]
	dlq      []*Message[T]
	notify   chan struct{}
	config   Config
	mu       sync.Mutex
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	if q.config.Capacity > 0 && len(q.messages) >= q.config.Capacity {
		q.mu.Unlock()
		return ErrQueueFull
	}
	q.mu.Unlock()
	q.push(&Message[T]{
		id:        idgen.New(),
		payload:   *t,
		queue:     q,
		createdAt: clock.Now(),
	})
	return nil
}

func (q *Queue[T]) push(msg *Message[T]) {
	q.mu.Lock()
	q.messages = append(q.messages, msg)
	q.mu.Unlock()
	q.signal()
}

func (q *Queue[T]) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	for {
		q.mu.Lock()
		if len(q.messages) > 0 {
			msg := q.messages[0]
			q.messages[0] = nil
			q.messages = q.messages[1:]
			more := len(q.messages) > 0
			q.mu.Unlock()
			if more {
				q.signal()
			}
			return msg, nil
		}
		q.mu.Unlock()
		select {
		case <-q.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// DLQSize returns the number of messages in the dead letter queue
func (q *Queue[T]) DLQSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.dlq)
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	return &Queue[T]{
		notify: make(chan struct{}, 1),
		config: config,
	}
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
