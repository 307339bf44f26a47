package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/storetest"
)

func TestPutThenGet(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())

	c, err := chunk.New([]byte("hello"), 0, nil)
	if err != nil {
		t.Fatalf("chunk.New: %v", err)
	}

	if err := s.Put(ctx, c); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, c.Key())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key() != c.Key() {
		t.Fatalf("Get returned key %s, want %s", got.Key(), c.Key())
	}

	last, ok := s.Last()
	if !ok {
		t.Fatal("Last(): ok = false after a successful Put")
	}
	if last != c.Key() {
		t.Fatalf("Last() = %s, want %s", last, c.Key())
	}
}

// TestS5MissingKey reproduces the spec's S5 fixture: getting an all-zero
// key from a freshly seeded store yields NotFound.
func TestS5MissingKey(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())

	var zero chunk.Key
	_, err := s.Get(ctx, zero)
	if err == nil {
		t.Fatal("Get(zero key) on empty store: want error, got nil")
	}
	var nf store.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get(zero key) error = %v, want NotFoundError", err)
	}
}

func TestLastUnsetBeforeAnyPut(t *testing.T) {
	s := store.New(storetest.NewMemoryDriver())
	if _, ok := s.Last(); ok {
		t.Fatal("Last(): ok = true before any Put")
	}
}

func TestErrorRecordsMostRecentFailure(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())

	if s.Error() != "" {
		t.Fatalf("Error() = %q before any failure, want empty", s.Error())
	}

	var missing chunk.Key
	if _, err := s.Get(ctx, missing); err == nil {
		t.Fatal("Get(missing): want error")
	}
	if s.Error() == "" {
		t.Fatal("Error() empty after a failed Get")
	}
}
