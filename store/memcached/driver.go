// Package memcached implements a store.Driver backed by a memcached
// cluster, keyed by the chunk's hex key.
//
// Grounded on original_source/drivers/memcache.c
// (kvfs_create_memcache / kvfs_memcache_get / kvfs_memcache_put), adapted
// from libmemcached to the pure-Go client
// github.com/bradfitz/gomemcache/memcache named by the driver contract in
// spec.md §6.
package memcached

import (
	"context"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/factory"
)

const driverName = "memcached"

func init() {
	factory.Register(driverName, &driverFactory{})
}

type driverFactory struct{}

func (driverFactory) Create(parameters map[string]interface{}) (store.Driver, error) {
	raw, ok := parameters["servers"]
	if !ok {
		return nil, store.InvalidError{Reason: "memcached driver requires a servers parameter"}
	}

	var servers []string
	switch v := raw.(type) {
	case []string:
		servers = v
	case string:
		servers = []string{v}
	default:
		return nil, store.InvalidError{Reason: "memcached driver servers parameter must be a string or []string"}
	}

	return New(servers...), nil
}

// Driver stores chunks in a memcached cluster. Unlike a memcached cache,
// entries are never expired here: the store's content is immutable and
// addressed by its own hash, so there is no staleness to guard against —
// callers that need eviction should put this driver behind
// store/storecache instead of relying on memcached's own TTL/LRU.
type Driver struct {
	client *memcache.Client
}

// New constructs a Driver against the given memcached server addresses.
func New(servers ...string) *Driver {
	return &Driver{client: memcache.New(servers...)}
}

func (d *Driver) Name() string { return driverName }

func (d *Driver) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	item, err := d.client.Get(key.String())
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, store.NotFoundError{Key: key, Driver: d.Name()}
		}
		return nil, store.DriverError{Driver: d.Name(), Err: err}
	}

	c, err := chunk.New(item.Value, key.Depth(), &key)
	if err != nil {
		return nil, store.DriverError{Driver: d.Name(), Detail: "stored chunk failed validation", Err: err}
	}
	return c, nil
}

func (d *Driver) Put(ctx context.Context, c *chunk.Chunk) error {
	err := d.client.Set(&memcache.Item{
		Key:   c.Key().String(),
		Value: c.Data(),
	})
	if err != nil {
		return store.DriverError{Driver: d.Name(), Err: err}
	}
	return nil
}
