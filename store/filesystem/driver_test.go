package filesystem_test

import (
	"context"
	"testing"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/filesystem"
)

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	d, err := filesystem.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c, err := chunk.New([]byte("on disk"), 0, nil)
	if err != nil {
		t.Fatalf("chunk.New: %v", err)
	}
	if err := d.Put(ctx, c); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := d.Get(ctx, c.Key())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key() != c.Key() {
		t.Fatalf("Get returned key %s, want %s", got.Key(), c.Key())
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	d, err := filesystem.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var missing chunk.Key
	_, err = d.Get(ctx, missing)
	if _, ok := err.(store.NotFoundError); !ok {
		t.Fatalf("Get(missing) error = %v (%T), want store.NotFoundError", err, err)
	}
}

func TestPutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	d, err := filesystem.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c, err := chunk.New([]byte("repeat me"), 0, nil)
	if err != nil {
		t.Fatalf("chunk.New: %v", err)
	}
	if err := d.Put(ctx, c); err != nil {
		t.Fatalf("Put (first): %v", err)
	}
	if err := d.Put(ctx, c); err != nil {
		t.Fatalf("Put (second, should be a no-op): %v", err)
	}
}
