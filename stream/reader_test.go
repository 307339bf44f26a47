package stream_test

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/storetest"
	"github.com/rsbellis/kvfs/stream"
)

func TestNewReaderMissingRootErrors(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())

	var missing chunk.Key
	if _, err := stream.NewReader(ctx, s, missing); err == nil {
		t.Fatal("NewReader(missing root): want error, got nil")
	}
}

func TestReadInSmallPieces(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())
	w := stream.NewWriter(ctx, s)

	data := make([]byte, 5000)
	rng := rand.New(rand.NewSource(1))
	rng.Read(data)

	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	root, err := w.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := stream.NewReader(ctx, s, root)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	var got bytes.Buffer
	tmp := make([]byte, 7) // deliberately not chunk-aligned
	for {
		n, err := r.Read(tmp)
		got.Write(tmp[:n])
		if err != nil {
			break
		}
		if n == 0 {
			break
		}
	}

	if !bytes.Equal(got.Bytes(), data) {
		t.Fatal("round-tripped bytes do not match original input when read in small pieces")
	}
}

func TestFuzzRoundTripVariousSizes(t *testing.T) {
	sizes := []int{0 + 1, 1023, 1024, 1025, 3000, 100000, 300000}
	rng := rand.New(rand.NewSource(42))

	for _, size := range sizes {
		data := make([]byte, size)
		rng.Read(data)

		ctx := context.Background()
		s := store.New(storetest.NewMemoryDriver())
		w := stream.NewWriter(ctx, s)
		if _, err := w.Write(data); err != nil {
			t.Fatalf("size %d: Write: %v", size, err)
		}
		root, err := w.Close()
		if err != nil {
			t.Fatalf("size %d: Close: %v", size, err)
		}

		r, err := stream.NewReader(ctx, s, root)
		if err != nil {
			t.Fatalf("size %d: NewReader: %v", size, err)
		}
		got, err := readAll(r)
		if err != nil {
			t.Fatalf("size %d: readAll: %v", size, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("size %d: round trip mismatch", size)
		}
	}
}
