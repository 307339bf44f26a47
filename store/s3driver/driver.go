// Package s3driver implements a store.Driver backed by an S3-compatible
// object store, one object per chunk, keyed by the chunk's hex key.
//
// Grounded on registry/storage/driver/s3-aws/s3.go, trimmed down
// drastically: that driver manages multipart uploads, storage classes,
// ACLs, and directory-style listing for arbitrarily large blobs. A chunk
// is at most chunk.MaxLength bytes, so none of that applies here — every
// Put is a single PutObject call.
package s3driver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/factory"
)

const driverName = "s3"

func init() {
	factory.Register(driverName, &driverFactory{})
}

type driverFactory struct{}

func (driverFactory) Create(parameters map[string]interface{}) (store.Driver, error) {
	bucket, _ := parameters["bucket"].(string)
	region, _ := parameters["region"].(string)
	if bucket == "" || region == "" {
		return nil, store.InvalidError{Reason: "s3 driver requires bucket and region parameters"}
	}
	prefix, _ := parameters["rootdirectory"].(string)
	return New(bucket, region, prefix)
}

// Driver stores chunks as objects under bucket, optionally namespaced by
// a key prefix.
type Driver struct {
	client *s3.S3
	bucket string
	prefix string
}

// New constructs a Driver against bucket in region, using the default AWS
// credential chain (environment, shared config, instance role).
func New(bucket, region, prefix string) (*Driver, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("s3driver: create session: %w", err)
	}
	return &Driver{client: s3.New(sess), bucket: bucket, prefix: prefix}, nil
}

func (d *Driver) Name() string { return driverName }

func (d *Driver) objectKey(key chunk.Key) string {
	if d.prefix == "" {
		return key.String()
	}
	return d.prefix + "/" + key.String()
}

func (d *Driver) Get(ctx context.Context, key chunk.Key) (*chunk.Chunk, error) {
	out, err := d.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.objectKey(key)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			return nil, store.NotFoundError{Key: key, Driver: d.Name()}
		}
		return nil, store.DriverError{Driver: d.Name(), Err: err}
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return nil, store.DriverError{Driver: d.Name(), Err: err}
	}

	c, err := chunk.New(buf.Bytes(), key.Depth(), &key)
	if err != nil {
		return nil, store.DriverError{Driver: d.Name(), Detail: "stored chunk failed validation", Err: err}
	}
	return c, nil
}

func (d *Driver) Put(ctx context.Context, c *chunk.Chunk) error {
	_, err := d.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.objectKey(c.Key())),
		Body:   bytes.NewReader(c.Data()),
	})
	if err != nil {
		return store.DriverError{Driver: d.Name(), Err: err}
	}
	return nil
}
