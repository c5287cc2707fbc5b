package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/viant/schedsim/service/messaging"
)

// Handler processes one event; an error nacks the message so the queue can
// redeliver it.
type Handler[T any] func(*Event[T]) error

// Listener delivers consumed events to a handler on a background goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   Handler[T]
	logger    *slog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

func NewListener[T any](publisher *Publisher[T], handler Handler[T], logger *slog.Logger) *Listener[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Stop cancels consumption and waits for the goroutine to exit.
func (l *Listener[T]) Stop() {
	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
}

func (l *Listener[T]) Start(ctx context.Context) {
	l.once.Do(func() {
		ctx, l.cancel = context.WithCancel(ctx)
		go func() {
			defer close(l.done)
			for {
				msg, err := l.publisher.Receive(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return
					}
					l.logger.Warn("event consume failed", "error", err)
					continue
				}
				if msg == nil {
					continue
				}
				l.deliver(msg)
			}
		}()
	})
}

func (l *Listener[T]) deliver(msg messaging.Message[Event[T]]) {
	if err := l.handler(msg.T()); err != nil {
		l.logger.Warn("event handler failed", "error", err)
		if err = msg.Nack(err); err != nil {
			l.logger.Warn("event nack failed", "error", err)
		}
		return
	}
	if err := msg.Ack(); err != nil {
		l.logger.Warn("event ack failed", "error", err)
	}
}
