// Package conformance provides a reusable store.Driver test battery, run
// against every concrete driver package (filesystem, memcached, dns, s3,
// ipfsblock) with its own *_test.go that supplies a constructor.
//
// Grounded on the pattern in registry/storage/driver/testsuites +
// registry/storage/driver/inmemory/driver_test.go: a DriverConstructor
// function, a testify suite.Suite embedding one, and driver packages that
// each add one `suite.Run(t, conformance.NewDriverSuite(ctor))` test.
package conformance

import (
	"context"
	"math/rand"

	"github.com/stretchr/testify/suite"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// DriverConstructor builds a fresh store.Driver instance for one test run.
// A driver that requires a live backend (memcached, dns, s3, ipfsblock
// against a remote node) should have its test call t.Skip before building
// the suite when the backend isn't configured in the environment, rather
// than failing.
type DriverConstructor func() (store.Driver, error)

// DriverSuite runs the shared conformance battery against whatever
// store.Driver DriverConstructor builds.
type DriverSuite struct {
	suite.Suite
	Constructor DriverConstructor
	driver      store.Driver
	ctx         context.Context
}

// NewDriverSuite returns a DriverSuite backed by ctor.
func NewDriverSuite(ctor DriverConstructor) *DriverSuite {
	return &DriverSuite{Constructor: ctor}
}

func (s *DriverSuite) SetupTest() {
	d, err := s.Constructor()
	s.Require().NoError(err)
	s.driver = d
	s.ctx = context.Background()
}

// TestNameNonEmpty checks that every driver reports a non-empty name for
// diagnostics and metrics labeling.
func (s *DriverSuite) TestNameNonEmpty() {
	s.NotEmpty(s.driver.Name())
}

// TestPutThenGetRoundTrips puts a small leaf chunk and reads it back.
func (s *DriverSuite) TestPutThenGetRoundTrips() {
	c, err := chunk.New(randomBytes(100), 0, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.driver.Put(s.ctx, c))

	got, err := s.driver.Get(s.ctx, c.Key())
	s.Require().NoError(err)
	s.Equal(c.Key(), got.Key())
	s.Equal(c.Data(), got.Data())
}

// TestPutMaxLengthLeaf exercises the boundary chunk.MaxLength-byte leaf.
func (s *DriverSuite) TestPutMaxLengthLeaf() {
	c, err := chunk.New(randomBytes(chunk.MaxLength), 0, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.driver.Put(s.ctx, c))

	got, err := s.driver.Get(s.ctx, c.Key())
	s.Require().NoError(err)
	s.Equal(c.Data(), got.Data())
}

// TestGetMissingReturnsNotFound checks that an unpopulated store reports
// NotFound rather than a zero value or a generic error.
func (s *DriverSuite) TestGetMissingReturnsNotFound() {
	var missing chunk.Key
	_, err := s.driver.Get(s.ctx, missing)
	s.Require().Error(err)
	var nf store.NotFoundError
	s.Require().ErrorAs(err, &nf)
}

// TestPutIsIdempotent checks that writing the same chunk twice succeeds
// and does not corrupt the stored value, since the format is
// content-addressed and therefore immutable by construction.
func (s *DriverSuite) TestPutIsIdempotent() {
	c, err := chunk.New(randomBytes(50), 0, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.driver.Put(s.ctx, c))
	s.Require().NoError(s.driver.Put(s.ctx, c))

	got, err := s.driver.Get(s.ctx, c.Key())
	s.Require().NoError(err)
	s.Equal(c.Data(), got.Data())
}

// TestPutBranchChunk exercises storing and retrieving a depth-1 branch
// chunk, not just leaves.
func (s *DriverSuite) TestPutBranchChunk() {
	leaf, err := chunk.New(randomBytes(chunk.MaxLength), 0, nil)
	s.Require().NoError(err)
	leafKey := leaf.Key()

	var data []byte
	data = append(data, leafKey[:]...)
	branch, err := chunk.New(data, 1, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.driver.Put(s.ctx, branch))

	got, err := s.driver.Get(s.ctx, branch.Key())
	s.Require().NoError(err)
	s.Equal(1, got.NumChildren())
	s.Equal(leafKey, got.ChildAt(0))
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(int64(n))).Read(b)
	return b
}
