// Package stream implements the write and read paths that sit on top of a
// store.Store: Writer splits an arbitrary byte stream into fixed-size
// leaves and folds their keys into a balanced tree of branch chunks;
// Reader walks that tree back into the original byte stream.
//
// Grounded on original_source/kvfs_stdio.c (kvfs_stdio_writer_* /
// kvfs_stdio_reader_*), reimplemented as Go io.Writer/io.Reader rather
// than glibc's fopencookie FILE* trick.
package stream

import (
	"context"
	"errors"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// ErrEmptyStream is returned by Writer.Close when no bytes were ever
// written. The chunk format rejects zero-length chunks, so an empty
// stream has no root key; this resolves spec.md's "empty stream" open
// question explicitly rather than leaving it as undefined behavior.
var ErrEmptyStream = errors.New("stream: empty stream has no root key")

// Writer is a tree-building sink: an io.Writer plus a Close that returns
// the stream's root key. It is not safe for concurrent use.
type Writer struct {
	root *levelWriter
}

// NewWriter returns a Writer that emits chunks into s as bytes are
// written.
func NewWriter(ctx context.Context, s *store.Store) *Writer {
	return &Writer{root: newLevelWriter(ctx, s, 0)}
}

// Write implements io.Writer. It never returns a short write without an
// error: internally it loops until all of p has been consumed, since some
// host I/O layers (and the original C FILE* cookie) cannot tolerate a
// partial write from a sink callback.
func (w *Writer) Write(p []byte) (int, error) {
	return w.root.writeAll(p)
}

// Close finalizes the stream and returns its root key. Calling Close on a
// Writer that never received any bytes returns ErrEmptyStream.
func (w *Writer) Close() (chunk.Key, error) {
	return w.root.close()
}

// levelWriter builds one level of the tree: it fills a MaxLength-capacity
// data buffer (user bytes at depth 0, child keys at depth > 0), emitting a
// chunk each time it fills, and accumulates the keys of everything it has
// emitted in a growing key buffer.
type levelWriter struct {
	ctx   context.Context
	store *store.Store
	depth uint8

	buf    [chunk.MaxLength]byte
	offset int

	keybuf []byte
}

func newLevelWriter(ctx context.Context, s *store.Store, depth uint8) *levelWriter {
	return &levelWriter{ctx: ctx, store: s, depth: depth}
}

// writeAll loops write until p is fully consumed or an error occurs.
func (lw *levelWriter) writeAll(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := lw.write(p[written:])
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// write accepts as much of p as fits in the remainder of the current
// chunk, emitting a chunk if that fills the buffer. It returns the number
// of bytes of p it consumed, which may be less than len(p).
func (lw *levelWriter) write(p []byte) (int, error) {
	avail := chunk.MaxLength - lw.offset
	amount := avail
	if len(p) < amount {
		amount = len(p)
	}

	if lw.offset == 0 && amount == chunk.MaxLength {
		// Whole-chunk fast path: emit directly from the caller's slice
		// without first copying it into our own buffer.
		if err := lw.emit(p[:chunk.MaxLength]); err != nil {
			return 0, err
		}
		return chunk.MaxLength, nil
	}

	copy(lw.buf[lw.offset:], p[:amount])
	lw.offset += amount

	if lw.offset == chunk.MaxLength {
		if err := lw.emit(lw.buf[:chunk.MaxLength]); err != nil {
			return 0, err
		}
	}

	return amount, nil
}

// emit constructs a chunk from data at this level's depth, puts it in the
// store, appends its key to the key buffer, and resets the data buffer.
func (lw *levelWriter) emit(data []byte) error {
	c, err := chunk.NewCopy(data, lw.depth, nil)
	if err != nil {
		return err
	}
	if err := lw.store.Put(lw.ctx, c); err != nil {
		return err
	}
	key := c.Key()
	lw.keybuf = append(lw.keybuf, key[:]...)
	lw.offset = 0
	return nil
}

// close finalizes this level: it flushes any partial tail chunk, then
// either returns the single accumulated key as the root, or (if more than
// one key was accumulated) recurses into a new level one depth higher to
// fold those keys into a branch, and returns that level's root instead.
func (lw *levelWriter) close() (chunk.Key, error) {
	if lw.offset > 0 {
		if err := lw.emit(lw.buf[:lw.offset]); err != nil {
			return chunk.Key{}, err
		}
	}

	switch {
	case len(lw.keybuf) > chunk.KeyLen:
		next := newLevelWriter(lw.ctx, lw.store, lw.depth+1)
		if _, err := next.writeAll(lw.keybuf); err != nil {
			return chunk.Key{}, err
		}
		return next.close()
	case len(lw.keybuf) == chunk.KeyLen:
		var k chunk.Key
		copy(k[:], lw.keybuf)
		return k, nil
	default:
		return chunk.Key{}, ErrEmptyStream
	}
}
