// Package store defines the narrow driver contract that backs a kvfs
// object store, plus the Store type that wraps a Driver with the
// "last key written" side channel and a record of the most recent failure.
// Read-time key validation is part of the Driver contract (see Driver.Get);
// Store.Get returns what the driver returns without checking it again.
package store

import (
	"context"
	"sync"

	"github.com/rsbellis/kvfs/chunk"
)

// Driver is the contract a storage backend must satisfy. It is
// deliberately narrow: get, put, and a name for diagnostics. Unlike the
// teacher's StorageDriver, there is no Stat/List/Move/Delete — the spec
// forbids deletion and mutation, and the key already is the address, so
// there is nothing to list or move.
type Driver interface {
	// Name identifies the driver, e.g. for logging and metrics labels.
	Name() string

	// Get fetches the chunk stored at key. Implementations must pass key
	// through to chunk.New so the returned chunk is validated against it;
	// a driver that skips this check has already failed its contract.
	// A missing key must be reported as a NotFoundError.
	Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error)

	// Put stores c, keyed by c.Key(). Writing the same chunk twice is a
	// no-op from the caller's point of view (the store is immutable by
	// construction, so either the data already matches or the key could
	// not have collided).
	Put(ctx context.Context, c *chunk.Chunk) error
}

// Store wraps a Driver with the "most recent successful put" side channel
// and a human-readable record of the most recent driver-level failure,
// mirroring kvfs.c's kvfs_put/kvfs_last/kvfs_error.
type Store struct {
	driver Driver

	mu       sync.RWMutex
	last     chunk.Key
	haveLast bool
	lastErr  error
}

// New wraps driver in a Store.
func New(driver Driver) *Store {
	return &Store{driver: driver}
}

// Driver returns the underlying driver, e.g. for passing to health checks
// or middleware construction.
func (s *Store) Driver() Driver { return s.driver }

// Put stores c. On success, c.Key() becomes the value Last returns.
func (s *Store) Put(ctx context.Context, c *chunk.Chunk) error {
	err := s.driver.Put(ctx, c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	s.last = c.Key()
	s.haveLast = true
	return nil
}

// Get fetches the chunk stored at key.
func (s *Store) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	c, err := s.driver.Get(ctx, key)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}
	return c, nil
}

// Last returns the key of the most recent successful Put. The second
// return value is false if no put has yet succeeded in this Store's
// lifetime.
func (s *Store) Last() (chunk.Key, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.haveLast
}

// Error returns a human-readable description of the most recent failure
// from Put or Get, or "" if none has occurred.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr == nil {
		return ""
	}
	return s.lastErr.Error()
}
