// Package ipfsblock implements a store.Driver on top of an IPFS
// blockstore, addressing each chunk by a CIDv1 built from its own kvfs
// key rather than re-hashing the chunk's bytes.
//
// Grounded on registry/storage/driver/ipfs/driver.go, but wires only the
// blockstore half of that driver's stack
// (github.com/ipfs/go-ipfs-blockstore, go-datastore, go-cid,
// go-block-format, multiformats/go-multihash). The teacher's ipfs driver
// additionally pulls in go-merkledag/go-unixfs/go-ipfs-chunker/
// go-blockservice to build its own content-defined-chunking DAG and
// libp2p/pubsub/crdt to replicate it across peers; none of that is wired
// here; see DESIGN.md for why.
//
// Since a kvfs.Key already is a content address (with its own depth and
// length header baked in, not a plain digest of the chunk bytes), each
// Get/Put wraps the 32-byte key as the digest of an "identity" multihash
// (multicodec 0x00) rather than asking go-multihash to hash the data a
// second time under sha2-256.
package ipfsblock

import (
	"context"

	blocks "github.com/ipfs/go-block-format"
	blockstore "github.com/ipfs/go-ipfs-blockstore"
	cid "github.com/ipfs/go-cid"
	datastore "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	multihash "github.com/multiformats/go-multihash"

	kvchunk "github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/factory"
)

const driverName = "ipfsblock"

func init() {
	factory.Register(driverName, &driverFactory{})
}

type driverFactory struct{}

func (driverFactory) Create(parameters map[string]interface{}) (store.Driver, error) {
	return New(blockstore.NewBlockstore(dssync.MutexWrap(datastore.NewMapDatastore()))), nil
}

// Driver adapts a blockstore.Blockstore to store.Driver.
type Driver struct {
	bs blockstore.Blockstore
}

// New wraps an existing blockstore. Callers that want persistence should
// construct bs over a disk-backed datastore.Batching implementation
// themselves; the default factory uses an in-memory one.
func New(bs blockstore.Blockstore) *Driver {
	return &Driver{bs: bs}
}

func (d *Driver) Name() string { return driverName }

func keyToCid(key kvchunk.Key) (cid.Cid, error) {
	mh, err := multihash.Sum(key[:], multihash.IDENTITY, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

func (d *Driver) Get(ctx context.Context, key kvchunk.Key) (*kvchunk.Chunk, error) {
	c, err := keyToCid(key)
	if err != nil {
		return nil, store.DriverError{Driver: d.Name(), Err: err}
	}

	blk, err := d.bs.Get(ctx, c)
	if err != nil {
		if err == blockstore.ErrNotFound {
			return nil, store.NotFoundError{Key: key, Driver: d.Name()}
		}
		return nil, store.DriverError{Driver: d.Name(), Err: err}
	}

	chunk, err := kvchunk.New(blk.RawData(), key.Depth(), &key)
	if err != nil {
		return nil, store.DriverError{Driver: d.Name(), Detail: "stored chunk failed validation", Err: err}
	}
	return chunk, nil
}

func (d *Driver) Put(ctx context.Context, c *kvchunk.Chunk) error {
	id, err := keyToCid(c.Key())
	if err != nil {
		return store.DriverError{Driver: d.Name(), Err: err}
	}

	blk, err := blocks.NewBlockWithCid(c.Data(), id)
	if err != nil {
		return store.DriverError{Driver: d.Name(), Err: err}
	}

	if err := d.bs.Put(ctx, blk); err != nil {
		return store.DriverError{Driver: d.Name(), Err: err}
	}
	return nil
}
