package notify

import (
	"context"

	events "github.com/docker/go-events"

	"github.com/rsbellis/kvfs/internal/kvlog"
)

// LoggingSink is an events.Sink that logs each PutEvent at info level via
// internal/kvlog and never fails, so it is always safe to pass to
// WithNotify when no other sink (HTTP webhook, message broker) is
// configured. WithNotify has no default sink; the caller supplies one.
type LoggingSink struct{}

// Write implements events.Sink.
func (LoggingSink) Write(event events.Event) error {
	pe, ok := event.(PutEvent)
	if !ok {
		return nil
	}
	kvlog.GetLogger(context.Background()).WithFields(map[string]interface{}{
		"key":    pe.Key.String(),
		"depth":  pe.Depth,
		"length": pe.Length,
		"driver": pe.Driver,
	}).Info("notify: put")
	return nil
}

// Close implements events.Sink.
func (LoggingSink) Close() error { return nil }
