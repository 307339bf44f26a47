package store

import (
	"fmt"

	"github.com/rsbellis/kvfs/chunk"
)

// NotFoundError is returned by a Driver.Get when no chunk exists for the
// requested key.
type NotFoundError struct {
	Key    chunk.Key
	Driver string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("store: key %s not found in %s", e.Key, e.Driver)
}

// DriverError wraps an opaque backend failure (a transport error, a
// protocol error) with the driver name and, where available, a
// driver-specific detail message, mirroring KVFS_DRIVER_ERROR plus
// kvfs_error's fallback to the driver's own error() callback.
type DriverError struct {
	Driver string
	Detail string
	Err    error
}

func (e DriverError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("store: %s driver error: %s", e.Driver, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("store: %s driver error: %v", e.Driver, e.Err)
	}
	return fmt.Sprintf("store: %s driver error", e.Driver)
}

func (e DriverError) Unwrap() error { return e.Err }

// InvalidError is returned when a caller supplies a nil or otherwise
// invalid argument, mirroring KVFS_ERRNO_BASE's EINVAL cases.
type InvalidError struct {
	Reason string
}

func (e InvalidError) Error() string {
	return fmt.Sprintf("store: invalid argument: %s", e.Reason)
}
