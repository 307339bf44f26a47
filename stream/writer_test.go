package stream_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/storetest"
	"github.com/rsbellis/kvfs/stream"
)

func TestWriteCloseEmptyStreamErrors(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())
	w := stream.NewWriter(ctx, s)

	if _, err := w.Close(); err != stream.ErrEmptyStream {
		t.Fatalf("Close() on empty stream = %v, want ErrEmptyStream", err)
	}
	if _, ok := s.Last(); ok {
		t.Fatal("Last(): ok = true after closing an empty stream")
	}
}

func TestWriteSingleShortLeaf(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())
	w := stream.NewWriter(ctx, s)

	payload := []byte("a short leaf")
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	root, err := w.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if root.Depth() != 0 {
		t.Fatalf("root depth = %d, want 0 for a single short leaf", root.Depth())
	}
}

// TestS1ViaWriter writes exactly 1024 zero bytes (one full leaf, no
// branch wrapping needed) and checks it reproduces the spec's S1 key.
func TestS1ViaWriter(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())
	w := stream.NewWriter(ctx, s)

	if _, err := w.Write(make([]byte, 1024)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	root, err := w.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	const want = "0000bf18a086007016e948b04aed3b82103a36bea41755b6cddfaf10ace3c6ef"
	if got := root.String(); got != want {
		t.Fatalf("root = %s, want %s", got, want)
	}
}

// TestS3MixedPatternRoundTrip reproduces the spec's S3 fixture: 2048 bytes
// (0x55 repeated then 0xaa repeated) must produce the documented root key
// and read back identically.
func TestS3MixedPatternRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())
	w := stream.NewWriter(ctx, s)

	data := make([]byte, 2048)
	for i := 0; i < 1024; i++ {
		data[i] = 0x55
	}
	for i := 1024; i < 2048; i++ {
		data[i] = 0xaa
	}

	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	root, err := w.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	const want = "04407d4b8f1015bf9317428b69104a668a0a1b9823d4685061ca85c2bc133625"
	if got := root.String(); got != want {
		t.Fatalf("root = %s, want %s", got, want)
	}

	r, err := stream.NewReader(ctx, s, root)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := readAll(r)
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round-tripped bytes do not match original input")
	}
}

// TestS4LargeStreamRoundTrip reproduces the spec's S4 fixture: a 64 KiB
// stream deep enough to require a depth-2 tree.
func TestS4LargeStreamRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewMemoryDriver())
	w := stream.NewWriter(ctx, s)

	data := make([]byte, 65536)
	for i := range data {
		data[i] = byte(i & 0xff)
	}

	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	root, err := w.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	const want = "084042e38dc8ce5220eef3f306d5efca1d37ecf6a2fbbb186e933c0ec72eb637"
	if got := root.String(); got != want {
		t.Fatalf("root = %s, want %s", got, want)
	}
	if root.Depth() != 2 {
		t.Fatalf("root depth = %d, want 2", root.Depth())
	}

	r, err := stream.NewReader(ctx, s, root)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := readAll(r)
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round-tripped bytes do not match original input")
	}
}

func TestWriteInSmallPiecesMatchesWriteInOnePiece(t *testing.T) {
	ctx := context.Background()

	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i * 7)
	}

	s1 := store.New(storetest.NewMemoryDriver())
	w1 := stream.NewWriter(ctx, s1)
	if _, err := w1.Write(data); err != nil {
		t.Fatalf("Write (whole): %v", err)
	}
	root1, err := w1.Close()
	if err != nil {
		t.Fatalf("Close (whole): %v", err)
	}

	s2 := store.New(storetest.NewMemoryDriver())
	w2 := stream.NewWriter(ctx, s2)
	for off := 0; off < len(data); {
		n := 13
		if off+n > len(data) {
			n = len(data) - off
		}
		if _, err := w2.Write(data[off : off+n]); err != nil {
			t.Fatalf("Write (piecewise): %v", err)
		}
		off += n
	}
	root2, err := w2.Close()
	if err != nil {
		t.Fatalf("Close (piecewise): %v", err)
	}

	if root1 != root2 {
		t.Fatalf("root from whole write %s != root from piecewise write %s", root1, root2)
	}
}

func readAll(r *stream.Reader) ([]byte, error) {
	var buf bytes.Buffer
	tmp := make([]byte, 4096)
	for {
		n, err := r.Read(tmp)
		if n > 0 {
			buf.Write(tmp[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf.Bytes(), nil
			}
			return nil, err
		}
		if n == 0 {
			return buf.Bytes(), nil
		}
	}
}
