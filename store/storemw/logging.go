// Package storemw provides Driver decorators that add cross-cutting
// behavior — logging, metrics, bounded concurrency — around any
// store.Driver without changing its semantics.
//
// Grounded on registry/storage/driver/base/base.go's wrapping pattern
// (each method defers a duration log around the wrapped call) and
// metrics/prometheus.go's namespace setup.
package storemw

import (
	"context"
	"time"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/internal/kvlog"
	"github.com/rsbellis/kvfs/store"
)

type logging struct {
	store.Driver
}

// WithLogging wraps driver so every Get/Put is logged at debug level with
// its duration, mirroring base.Base's durationDebugLog.
func WithLogging(driver store.Driver) store.Driver {
	return &logging{Driver: driver}
}

func (l *logging) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	defer durationDebugLog(ctx, l.Name(), "Get", time.Now())
	return l.Driver.Get(ctx, key)
}

func (l *logging) Put(ctx context.Context, c *chunk.Chunk) error {
	defer durationDebugLog(ctx, l.Name(), "Put", time.Now())
	return l.Driver.Put(ctx, c)
}

func durationDebugLog(ctx context.Context, driver, method string, startedAt time.Time) {
	kvlog.GetLogger(ctx).WithFields(map[string]interface{}{
		"driver":   driver,
		"duration": time.Since(startedAt),
	}).Debugf("store.Driver.%s", method)
}
