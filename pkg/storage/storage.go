// File: pkg/storage/storage.go
package storage

import (
	"context"
	"geobucket/pkg/common"
	"io"
)

// Options passed along with an upload
type PutOptions struct {
	// Size of the body in bytes, or -1 if unknown
	Size        int64
	ContentType string
}

// ObjectStore is the set of single-object operations a provider must support.
// A value is one session: it is opened for a call and closed when the call ends.
type ObjectStore interface {
	ProviderName() common.Provider

	// Metadata probe. Returns ErrObjectNotFound (wrapped) when the object is missing.
	HeadObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	// Overwrites any existing object
	PutObject(ctx context.Context, bucket, key string, body io.Reader, opts PutOptions) error
	// The caller closes the returned reader
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// Deleting a missing object is not an error
	DeleteObject(ctx context.Context, bucket, key string) error

	Close() error
}
