package storemw

import (
	"context"
	"time"

	metrics "github.com/docker/go-metrics"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// storageNamespace mirrors metrics/prometheus.go's StorageNamespace, scoped
// under "kvfs_storage" instead of the teacher's "registry_storage".
var storageNamespace = metrics.NewNamespace("kvfs", "storage", nil)

func init() {
	metrics.Register(storageNamespace)
}

type instrumented struct {
	store.Driver

	puts metrics.LabeledTimer
	gets metrics.LabeledTimer
}

// WithMetrics wraps driver so every Get/Put records a count and latency
// histogram under the kvfs_storage Prometheus namespace, labeled by driver
// name, grounded on metrics/prometheus.go's NamespaceStorage timers.
func WithMetrics(driver store.Driver) store.Driver {
	return &instrumented{
		Driver: driver,
		puts:   storageNamespace.NewLabeledTimer("put_duration_seconds", "duration of Put calls", "driver"),
		gets:   storageNamespace.NewLabeledTimer("get_duration_seconds", "duration of Get calls", "driver"),
	}
}

func (i *instrumented) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	start := time.Now()
	c, err := i.Driver.Get(ctx, key)
	i.gets.WithValues(i.Name()).UpdateSince(start)
	return c, err
}

func (i *instrumented) Put(ctx context.Context, c *chunk.Chunk) error {
	start := time.Now()
	err := i.Driver.Put(ctx, c)
	i.puts.WithValues(i.Name()).UpdateSince(start)
	return err
}
