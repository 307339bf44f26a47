// Package filesystem implements a store.Driver backed by a local
// directory, one file per chunk, named by the chunk's hex key.
//
// Grounded on original_source/drivers/file.c (kvfs_create_file /
// kvfs_file_get / kvfs_file_put) for the one-file-per-key layout, and on
// registry/storage/driver/filesystem/driver.go for the atomic
// write-to-temp-then-rename idiom.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/factory"
)

const driverName = "filesystem"

func init() {
	factory.Register(driverName, &driverFactory{})
}

type driverFactory struct{}

func (driverFactory) Create(parameters map[string]interface{}) (store.Driver, error) {
	root, _ := parameters["rootdirectory"].(string)
	if root == "" {
		return nil, store.InvalidError{Reason: "filesystem driver requires a rootdirectory parameter"}
	}
	return New(root)
}

// Driver stores each chunk as rootDirectory/<hex key>.kvfs.
type Driver struct {
	rootDirectory string
}

// New constructs a Driver rooted at rootDirectory, creating it if
// necessary.
func New(rootDirectory string) (*Driver, error) {
	if err := os.MkdirAll(rootDirectory, 0o777); err != nil {
		return nil, fmt.Errorf("filesystem: create root directory: %w", err)
	}
	return &Driver{rootDirectory: rootDirectory}, nil
}

func (d *Driver) Name() string { return driverName }

func (d *Driver) path(key chunk.Key) string {
	return filepath.Join(d.rootDirectory, key.String()+".kvfs")
}

// Get reads the chunk stored at key, validating it against key on the way
// out (a driver is required to pass key through to chunk.New; a corrupt or
// tampered file on disk is reported as an error rather than silently
// served).
func (d *Driver) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.NotFoundError{Key: key, Driver: d.Name()}
		}
		return nil, store.DriverError{Driver: d.Name(), Err: err}
	}

	c, err := chunk.New(data, key.Depth(), &key)
	if err != nil {
		return nil, store.DriverError{Driver: d.Name(), Detail: "stored chunk failed validation", Err: err}
	}
	return c, nil
}

// Put writes c's data to a temporary file in the same directory, then
// renames it into place. Since the content is immutable and addressed by
// its own hash, a concurrent writer racing to create the same path writes
// byte-identical content, so the rename's last-writer-wins semantics are
// harmless.
func (d *Driver) Put(ctx context.Context, c *chunk.Chunk) error {
	target := d.path(c.Key())
	if _, err := os.Stat(target); err == nil {
		return nil // already present; content is immutable, so this is a no-op
	}

	tmp := filepath.Join(d.rootDirectory, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, c.Data(), 0o644); err != nil {
		return store.DriverError{Driver: d.Name(), Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return store.DriverError{Driver: d.Name(), Err: err}
	}
	return nil
}
