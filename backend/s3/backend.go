// Package s3 serves static content from an S3-compatible object store.
// Objects map one-to-one to files; directories exist only as key prefixes.
package s3

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/staticfs"
)

type Backend struct {
	client *minio.Client
	bucket string
}

// New creates an S3-backed static content backend for one bucket.
func New(endpoint, bucket, accessKey, secretKey string, useSsl bool) (*Backend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &Backend{
		client: client,
		bucket: bucket,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*Backend) Name() string {
	return "s3"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *Backend) Open(ctx context.Context) error {
	exists, err := sb.client.BucketExists(ctx, sb.bucket)
	if err != nil {
		return err
	}

	if !exists {
		return staticfs.ErrBackendFailed
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *Backend) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (sb *Backend) Capabilities() *staticfs.Capabilities {
	return &staticfs.Capabilities{
		Capabilities: []staticfs.Capability{
			staticfs.CapabilityModTime,
			staticfs.CapabilityContentType,
			staticfs.CapabilityPopulate,
			staticfs.CapabilityVirtualDir,
		},
	}
}
