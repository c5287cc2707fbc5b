package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/service/messaging/memory"
)

func TestListener(t *testing.T) {
	queue := memory.NewQueue[Event[string]](memory.DefaultConfig())
	publisher := NewPublisher[string](queue, "run-1")

	var mu sync.Mutex
	var received []*Event[string]
	got := make(chan struct{}, 3)
	listener := NewListener[string](publisher, func(e *Event[string]) error {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		got <- struct{}{}
		return nil
	}, nil)
	listener.Start(context.Background())

	ctx := context.Background()
	for i, kind := range []string{TypeArrived, TypeDispatched, TypeTerminated} {
		assert.NoError(t, publisher.Publish(ctx, NewEvent(&Context{Tick: i, ProcessID: 1, EventType: kind}, kind)))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-got:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	listener.Stop()

	mu.Lock()
	defer mu.Unlock()
	if assert.Len(t, received, 3) {
		assert.Equal(t, TypeTerminated, received[2].Data)
		assert.Equal(t, 2, received[2].Context.Tick)
		assert.Equal(t, "run-1", received[0].Context.RunID)
	}
}

func TestListener_Redelivers(t *testing.T) {
	config := memory.DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := memory.NewQueue[Event[string]](config)
	publisher := NewPublisher[string](queue, "run-1")

	var mu sync.Mutex
	attempts := map[string]int{}
	delivered := make(chan string, 10)
	listener := NewListener[string](publisher, func(e *Event[string]) error {
		mu.Lock()
		attempts[e.Data]++
		count := attempts[e.Data]
		mu.Unlock()
		switch {
		case e.Data == "poison":
			return errors.New("cannot handle")
		case e.Data == "flaky" && count == 1:
			return errors.New("try again")
		}
		delivered <- e.Data
		return nil
	}, logger.Discard())
	listener.Start(context.Background())
	defer listener.Stop()

	ctx := context.Background()
	for _, data := range []string{"poison", "flaky", "fine"} {
		assert.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: TypeOutput}, data)))
	}
	var handled []string
	for len(handled) < 2 {
		select {
		case data := <-delivered:
			handled = append(handled, data)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	assert.ElementsMatch(t, []string{"flaky", "fine"}, handled)

	deadline := time.Now().Add(2 * time.Second)
	for queue.DLQSize() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 1, queue.DLQSize())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, attempts["poison"])
	assert.Equal(t, 2, attempts["flaky"])
	assert.Equal(t, 1, attempts["fine"])
}

func TestPublisher_Nil(t *testing.T) {
	var publisher *Publisher[string]
	assert.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, "x")))
}
