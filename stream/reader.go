package stream

import (
	"context"
	"io"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// maxDepth bounds cursor recursion. The key format's 6-bit depth field
// already caps this at 63; in practice a tree built from MaxLength-sized
// chunks cannot pass depth 6 before exceeding any realistic object size, so
// this is a sanity backstop against a corrupt or adversarial tree rather
// than a normal limit.
const maxDepth = 63

// Reader is a tree-walking source: it implements io.Reader over the byte
// stream addressed by a root key, fetching chunks from the store lazily
// and never seeking backward.
type Reader struct {
	root *cursor
}

// NewReader opens the object addressed by root for reading. It fetches the
// root chunk immediately, so a missing or invalid root is reported here
// rather than on the first Read.
func NewReader(ctx context.Context, s *store.Store, root chunk.Key) (*Reader, error) {
	c, err := newCursor(ctx, s, root, 0)
	if err != nil {
		return nil, err
	}
	return &Reader{root: c}, nil
}

// Read implements io.Reader. Like the wrapper around the original C
// cookie's read callback, it loops the underlying cursor until p is full
// or the stream is exhausted, then reports io.EOF once no further bytes
// remain.
func (r *Reader) Read(p []byte) (int, error) {
	read := 0
	for read < len(p) {
		n, err := r.root.read(p[read:])
		if err != nil {
			return read, err
		}
		if n == 0 {
			break
		}
		read += n
	}
	if read == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return read, nil
}

// cursor walks a single chunk: Fresh/Reading/Exhausted are represented
// implicitly by offset (0 == Fresh) and the nil-ness of child (Reading a
// branch has a live child; Exhausted is offset == chunk.Length() with no
// child).
type cursor struct {
	ctx   context.Context
	store *store.Store
	depth uint8

	chunk  *chunk.Chunk
	offset int

	child *cursor
}

func newCursor(ctx context.Context, s *store.Store, key chunk.Key, depth uint8) (*cursor, error) {
	if depth > maxDepth {
		return nil, store.InvalidError{Reason: "tree depth exceeds maxDepth"}
	}
	c, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &cursor{ctx: ctx, store: s, depth: depth, chunk: c}, nil
}

func (cur *cursor) read(p []byte) (int, error) {
	if cur.chunk.IsLeaf() {
		return cur.readLeaf(p)
	}
	return cur.readBranch(p)
}

func (cur *cursor) readLeaf(p []byte) (int, error) {
	length := cur.chunk.Length()
	if cur.offset >= length {
		return 0, nil // Exhausted
	}
	n := copy(p, cur.chunk.Data()[cur.offset:length])
	cur.offset += n
	return n, nil
}

func (cur *cursor) readBranch(p []byte) (int, error) {
	for {
		if cur.child == nil {
			if cur.offset >= cur.chunk.NumChildren()*chunk.KeyLen {
				return 0, nil // Exhausted
			}
			childKey := cur.chunk.ChildAt(cur.offset / chunk.KeyLen)
			child, err := newCursor(cur.ctx, cur.store, childKey, cur.depth+1)
			if err != nil {
				return 0, err
			}
			cur.child = child
			cur.offset += chunk.KeyLen
		}

		n, err := cur.child.read(p)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			cur.child = nil
			continue
		}
		return n, nil
	}
}
