package s3driver_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/conformance"
	"github.com/rsbellis/kvfs/store/s3driver"
)

// TestS3DriverConformance runs the shared conformance battery against a
// live S3 bucket. Skipped unless AWS_REGION and S3_BUCKET are set, mirroring
// the teacher's s3-aws driver tests.
func TestS3DriverConformance(t *testing.T) {
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("S3_BUCKET")
	if region == "" || bucket == "" {
		t.Skip("Must set AWS_REGION and S3_BUCKET to run S3 driver tests")
	}

	s := conformance.NewDriverSuite(func() (store.Driver, error) {
		return s3driver.New(bucket, region, "kvfs-conformance")
	})
	suite.Run(t, s)
}
