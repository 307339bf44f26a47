package chunk

import "crypto/sha256"

// Chunk is an immutable (data, depth, key) triple. When depth is 0 the
// chunk is a leaf and data is opaque user bytes; when depth > 0 it is a
// branch and data is a concatenation of child Keys, each KeyLen bytes.
//
// A Chunk is only ever produced through New, which enforces every
// invariant in spec.md §3/§4.2 before a Chunk value exists, so every
// accessor below is total once a Chunk has been constructed.
type Chunk struct {
	data  []byte
	depth uint8
	key   Key
}

// New validates data against depth and, if expected is non-nil, checks the
// computed key against *expected, returning an error without allocating if
// anything fails.
//
// The data slice is kept by reference, not copied; callers that mutate
// their buffer after calling New invalidate the Chunk they hold. Use
// NewCopy to take an owned copy instead.
func New(data []byte, depth uint8, expected *Key) (*Chunk, error) {
	if err := validate(data, depth); err != nil {
		return nil, err
	}

	sha := sha256.Sum256(data)
	key := Encode(depth, len(data), sha)

	if expected != nil && key != *expected {
		return nil, KeyNotValidError{Expected: *expected, Computed: key}
	}

	return &Chunk{data: data, depth: depth, key: key}, nil
}

// NewCopy behaves like New but takes its own copy of data first, so the
// caller's buffer may be reused or mutated afterward.
func NewCopy(data []byte, depth uint8, expected *Key) (*Chunk, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return New(cp, depth, expected)
}

func validate(data []byte, depth uint8) error {
	length := len(data)
	if length == 0 || length > MaxLength {
		return BadDataLengthError{Length: length, Depth: depth}
	}

	if depth == 0 {
		return nil
	}

	if length%KeyLen != 0 {
		return BadDataLengthError{Length: length, Depth: depth}
	}

	childDepth := depth - 1
	n := length / KeyLen
	for i := 0; i < n; i++ {
		offset := i * KeyLen
		var child Key
		copy(child[:], data[offset:offset+KeyLen])

		if child.Depth() != childDepth {
			return BadIndirectDepthError{Offset: offset, Want: childDepth, Got: child.Depth(), ChildKey: child}
		}

		if i < n-1 && child.Length() != MaxLength {
			return BadIndirectLengthError{Offset: offset, Got: child.Length(), ChildKey: child}
		}
	}

	return nil
}

// Data returns the chunk's payload. For a branch, this is a concatenation
// of child keys; callers should use NumChildren and ChildAt instead of
// slicing manually.
func (c *Chunk) Data() []byte { return c.data }

// Key returns the chunk's content address.
func (c *Chunk) Key() Key { return c.key }

// Depth returns the chunk's tree depth (0 = leaf).
func (c *Chunk) Depth() uint8 { return c.key.Depth() }

// Length returns the length of the chunk's data, as encoded in its key.
func (c *Chunk) Length() int { return c.key.Length() }

// IsLeaf reports whether this chunk is a depth-0 leaf.
func (c *Chunk) IsLeaf() bool { return c.Depth() == 0 }

// NumChildren returns the number of child keys embedded in a branch chunk's
// data. It is 0 for a leaf.
func (c *Chunk) NumChildren() int {
	if c.IsLeaf() {
		return 0
	}
	return len(c.data) / KeyLen
}

// ChildAt returns the i'th child key of a branch chunk.
func (c *Chunk) ChildAt(i int) Key {
	var k Key
	copy(k[:], c.data[i*KeyLen:(i+1)*KeyLen])
	return k
}
