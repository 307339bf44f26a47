// Package notify lets a store.Driver be wrapped so every successful Put
// emits an event onto an asynchronous github.com/docker/go-events sink,
// grounded on notifications/sinks.go's eventQueue: an unbounded queue
// decouples the Put call from however slow or unreliable the configured
// sink turns out to be.
//
// This supplements a feature only implicitly present in
// original_source/demo/*.c (the upload/download demo tools print progress
// via fprintf); here it is a structured, pluggable analogue rather than ad
// hoc stdout writes.
package notify

import (
	"context"
	"time"

	events "github.com/docker/go-events"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// PutEvent describes one successful Put, delivered to the configured sink.
type PutEvent struct {
	Key       chunk.Key
	Depth     uint8
	Length    int
	Driver    string
	Timestamp time.Time
}

// NotifyingDriver wraps a store.Driver so every successful Put also emits
// a PutEvent. Callers holding one should Close it on shutdown to flush
// the underlying event queue.
type NotifyingDriver struct {
	store.Driver
	queue *eventQueue
}

// WithNotify wraps driver so every successful Put also writes a PutEvent
// to sink, asynchronously. Put itself never blocks on, or fails because
// of, the sink.
func WithNotify(driver store.Driver, sink events.Sink) *NotifyingDriver {
	return &NotifyingDriver{Driver: driver, queue: newEventQueue(sink)}
}

func (n *NotifyingDriver) Put(ctx context.Context, c *chunk.Chunk) error {
	if err := n.Driver.Put(ctx, c); err != nil {
		return err
	}

	// Write errors (queue closed) are swallowed: a notification sink is a
	// side channel, never a reason to fail the Put it describes.
	_ = n.queue.Write(PutEvent{
		Key:       c.Key(),
		Depth:     c.Depth(),
		Length:    c.Length(),
		Driver:    n.Driver.Name(),
		Timestamp: time.Now(),
	})
	return nil
}

// Close shuts down the underlying event queue, flushing any buffered
// events to the sink and closing it. Callers that wrap a Driver with
// WithNotify for the lifetime of a process should call Close on shutdown.
func (n *NotifyingDriver) Close() error {
	return n.queue.Close()
}
