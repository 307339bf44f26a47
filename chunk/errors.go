package chunk

import "fmt"

// BadDataLengthError is returned when a chunk's data length is zero,
// exceeds MaxLength, or (for a branch) is not a positive multiple of
// KeyLen.
type BadDataLengthError struct {
	Length int
	Depth  uint8
}

func (e BadDataLengthError) Error() string {
	return fmt.Sprintf("chunk: bad data length %d at depth %d", e.Length, e.Depth)
}

// BadIndirectDepthError is returned when a branch's embedded child key
// encodes a depth other than the parent's depth minus one.
type BadIndirectDepthError struct {
	Offset   int
	Want     uint8
	Got      uint8
	ChildKey Key
}

func (e BadIndirectDepthError) Error() string {
	return fmt.Sprintf("chunk: bad indirect depth at offset %d: want %d, got %d (child key %s)", e.Offset, e.Want, e.Got, e.ChildKey)
}

// BadIndirectLengthError is returned when a non-last child key in a branch
// encodes a length other than MaxLength.
type BadIndirectLengthError struct {
	Offset   int
	Got      int
	ChildKey Key
}

func (e BadIndirectLengthError) Error() string {
	return fmt.Sprintf("chunk: bad indirect length at offset %d: want %d, got %d (child key %s)", e.Offset, MaxLength, e.Got, e.ChildKey)
}

// KeyNotValidError is returned when a chunk's computed key does not match
// an expected key supplied by the caller (typically: data returned from a
// driver does not hash to the key it was requested under).
type KeyNotValidError struct {
	Expected Key
	Computed Key
}

func (e KeyNotValidError) Error() string {
	return fmt.Sprintf("chunk: key mismatch: expected %s, computed %s", e.Expected, e.Computed)
}
