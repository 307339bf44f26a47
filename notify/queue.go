package notify

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"

	events "github.com/docker/go-events"

	"github.com/rsbellis/kvfs/internal/kvlog"
)

// ErrQueueClosed is returned by eventQueue.Write once Close has been
// called.
var ErrQueueClosed = errors.New("notify: event queue closed")

// eventQueue accepts events into an unbounded, thread-safe queue for
// asynchronous delivery to sink. Adapted from notifications/sinks.go's
// eventQueue, trimmed of its ingress/egress listener hooks (no metrics
// wiring needed at this layer — storemw.WithMetrics covers the driver
// itself).
type eventQueue struct {
	sink   events.Sink
	events *list.List
	cond   *sync.Cond
	mu     sync.Mutex
	closed bool
}

func newEventQueue(sink events.Sink) *eventQueue {
	eq := &eventQueue{
		sink:   sink,
		events: list.New(),
	}
	eq.cond = sync.NewCond(&eq.mu)
	go eq.run()
	return eq
}

// Write enqueues event for delivery, failing only if the queue has already
// been closed.
func (eq *eventQueue) Write(event events.Event) error {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.closed {
		return ErrQueueClosed
	}

	eq.events.PushBack(event)
	eq.cond.Signal()
	return nil
}

// Close shuts down the queue once all currently buffered events have been
// flushed to the sink, then closes the sink itself.
func (eq *eventQueue) Close() error {
	eq.mu.Lock()
	if eq.closed {
		eq.mu.Unlock()
		return fmt.Errorf("notify: event queue already closed")
	}
	eq.closed = true
	eq.cond.Signal()
	eq.cond.Wait() // woken by run() once it observes closed with an empty queue
	eq.mu.Unlock()

	return eq.sink.Close()
}

func (eq *eventQueue) run() {
	for {
		event := eq.next()
		if event == nil {
			return
		}
		if err := eq.sink.Write(event); err != nil {
			kvlog.GetLogger(context.Background()).Warnf("notify: dropping event, sink write failed: %v", err)
		}
	}
}

func (eq *eventQueue) next() events.Event {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	for eq.events.Len() < 1 {
		if eq.closed {
			eq.cond.Broadcast()
			return nil
		}
		eq.cond.Wait()
	}

	front := eq.events.Front()
	event := front.Value.(events.Event)
	eq.events.Remove(front)
	return event
}
