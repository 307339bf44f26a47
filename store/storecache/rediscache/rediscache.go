// Package rediscache provides a redis-backed cache decorator for any
// store.Driver, grounded on registry/storage/cache's redis tier
// (registry/storage/cache/redis/redis.go), using
// github.com/redis/go-redis/v9 in place of the teacher's redigo-based
// predecessor (the example pack's current registry/storage/cache/redis
// package has already migrated to go-redis/v9).
//
// Like storecache/memory, there is no invalidation path: a kvfs chunk
// never changes once written, so a cached (key -> data) mapping is never
// stale.
package rediscache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// keyPrefix namespaces cache entries so a redis instance can be shared
// with other applications without key collisions.
const keyPrefix = "kvfs:chunk:"

// Driver wraps another store.Driver with a redis-backed read-through
// cache.
type Driver struct {
	store.Driver
	client *redis.Client
}

// New wraps driver with a cache backed by the redis server at addr.
func New(driver store.Driver, addr string) *Driver {
	return &Driver{
		Driver: driver,
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// NewWithClient wraps driver using an already-constructed redis client,
// e.g. one configured with TLS or sentinel options the Options struct
// doesn't expose directly.
func NewWithClient(driver store.Driver, client *redis.Client) *Driver {
	return &Driver{Driver: driver, client: client}
}

func cacheKey(key chunk.Key) string {
	return keyPrefix + key.String()
}

// Get returns the cached chunk for key if present in redis, otherwise
// delegates to the wrapped driver and populates the cache.
func (d *Driver) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	data, err := d.client.Get(ctx, cacheKey(key)).Bytes()
	if err == nil {
		c, verr := chunk.New(data, key.Depth(), &key)
		if verr == nil {
			return c, nil
		}
		// A corrupted cache entry is not trusted; fall through to the
		// backend and let the Set below correct the cache.
	} else if err != redis.Nil {
		return nil, store.DriverError{Driver: d.Name(), Detail: "redis cache get", Err: err}
	}

	c, err := d.Driver.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := d.client.Set(ctx, cacheKey(c.Key()), c.Data(), 0).Err(); err != nil {
		return nil, store.DriverError{Driver: d.Name(), Detail: "redis cache set", Err: err}
	}
	return c, nil
}

// Put writes through to the wrapped driver, then populates the cache.
func (d *Driver) Put(ctx context.Context, c *chunk.Chunk) error {
	if err := d.Driver.Put(ctx, c); err != nil {
		return err
	}
	if err := d.client.Set(ctx, cacheKey(c.Key()), c.Data(), 0).Err(); err != nil {
		return fmt.Errorf("rediscache: populate cache after put: %w", err)
	}
	return nil
}

// Close releases the underlying redis client's connections.
func (d *Driver) Close() error {
	return d.client.Close()
}
