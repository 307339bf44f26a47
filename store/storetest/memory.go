// Package storetest provides an in-memory store.Driver for use in tests,
// standing in for any real backend so chunk/store/stream tests don't need
// a filesystem, network, or external service.
package storetest

import (
	"context"
	"sync"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// MemoryDriver is a store.Driver backed by a map, safe for concurrent use.
type MemoryDriver struct {
	mu   sync.RWMutex
	data map[chunk.Key]*chunk.Chunk
}

// NewMemoryDriver returns an empty MemoryDriver.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{data: make(map[chunk.Key]*chunk.Chunk)}
}

func (d *MemoryDriver) Name() string { return "memory" }

func (d *MemoryDriver) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.data[key]
	if !ok {
		return nil, store.NotFoundError{Key: key, Driver: d.Name()}
	}
	return c, nil
}

func (d *MemoryDriver) Put(ctx context.Context, c *chunk.Chunk) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data[c.Key()] = c
	return nil
}

// Len reports how many chunks are currently stored.
func (d *MemoryDriver) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.data)
}
