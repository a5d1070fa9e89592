package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket    string
	KeyPrefix string
}

// Service copies local files to remote object storage.
type Service interface {
	// Upload stores body under opts.KeyPrefix/name and returns its s3:// location.
	Upload(ctx context.Context, name string, body io.Reader, opts UploadOptions) (string, error)
}
