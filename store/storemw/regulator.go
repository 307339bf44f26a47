package storemw

import (
	"context"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// regulator bounds the number of in-flight Get/Put calls passed through to
// the wrapped driver, grounded on registry/storage/driver/base.regulator:
// a buffered channel of permits takes the place of base's sync.Cond, which
// is equivalent but idiomatic Go.
type regulator struct {
	store.Driver
	permits chan struct{}
}

// WithRegulator wraps driver so at most limit Get/Put calls run
// concurrently; further calls block until a permit frees up. Useful for
// drivers (e.g. filesystem) that would otherwise spawn an unbounded number
// of OS threads under heavy concurrent load.
func WithRegulator(driver store.Driver, limit uint) store.Driver {
	r := &regulator{Driver: driver, permits: make(chan struct{}, limit)}
	for i := uint(0); i < limit; i++ {
		r.permits <- struct{}{}
	}
	return r
}

func (r *regulator) enter(ctx context.Context) error {
	select {
	case <-r.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *regulator) exit() {
	r.permits <- struct{}{}
}

func (r *regulator) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	if err := r.enter(ctx); err != nil {
		return nil, err
	}
	defer r.exit()
	return r.Driver.Get(ctx, key)
}

func (r *regulator) Put(ctx context.Context, c *chunk.Chunk) error {
	if err := r.enter(ctx); err != nil {
		return err
	}
	defer r.exit()
	return r.Driver.Put(ctx, c)
}
