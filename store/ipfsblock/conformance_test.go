package ipfsblock_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	blockstore "github.com/ipfs/go-ipfs-blockstore"
	datastore "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"

	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/conformance"
	"github.com/rsbellis/kvfs/store/ipfsblock"
)

func TestIPFSBlockDriverConformance(t *testing.T) {
	s := conformance.NewDriverSuite(func() (store.Driver, error) {
		bs := blockstore.NewBlockstore(dssync.MutexWrap(datastore.NewMapDatastore()))
		return ipfsblock.New(bs), nil
	})
	suite.Run(t, s)
}
