// Package memory provides an in-process, bounded LRU cache decorator for
// any store.Driver, grounded on registry/storage/cache's in-memory tier
// (registry/storage/cache/memory/memory.go) but considerably simpler:
// kvfs chunks are immutable and content-keyed, so there is no Clear/
// invalidation path to implement — a cached entry is correct forever.
package memory

import (
	"context"

	lru "github.com/hashicorp/golang-lru"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// DefaultSize is the cache size used when New is given size <= 0.
const DefaultSize = 10000

// Driver wraps another store.Driver with a bounded, in-process cache of
// recently-read or recently-written chunks.
type Driver struct {
	store.Driver
	cache *lru.Cache
}

// New wraps driver with an LRU cache holding up to size chunks. size <= 0
// uses DefaultSize.
func New(driver store.Driver, size int) (*Driver, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Driver{Driver: driver, cache: c}, nil
}

// Get returns the cached chunk for key if present, otherwise delegates to
// the wrapped driver and caches the result.
func (d *Driver) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	if v, ok := d.cache.Get(key); ok {
		return v.(*chunk.Chunk), nil
	}

	c, err := d.Driver.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	d.cache.Add(key, c)
	return c, nil
}

// Put writes through to the wrapped driver, then caches c so a subsequent
// Get doesn't need to round-trip to the backend.
func (d *Driver) Put(ctx context.Context, c *chunk.Chunk) error {
	if err := d.Driver.Put(ctx, c); err != nil {
		return err
	}
	d.cache.Add(c.Key(), c)
	return nil
}
