// File: pkg/storage/gcp/objects.go
package gcp

import (
	"context"
	"errors"
	"fmt"
	"geobucket/pkg/storage"
	"io"

	gcpstorage "cloud.google.com/go/storage"
)

func (g *GCPStorage) HeadObject(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	g.logger.Debug("Starting GCP HeadObject operation", "bucket", bucket, "object", key)

	attrs, err := g.client.Bucket(bucket).Object(key).Attrs(ctx)
	if err != nil {
		return storage.ObjectInfo{}, mapError("head", bucket, key, err)
	}
	return mapObjectAttributes(attrs), nil
}

func (g *GCPStorage) PutObject(ctx context.Context, bucket, key string, body io.Reader, opts storage.PutOptions) error {
	g.logger.Debug("Starting GCP PutObject operation", "bucket", bucket, "object", key, "size", opts.Size)

	// Cancelling the context is the only way to abandon a writer without committing the object
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	// Single-request upload, no resumable session
	w.ChunkSize = 0
	if opts.ContentType != "" {
		w.ContentType = opts.ContentType
	}

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		_ = w.Close()
		return mapError("put", bucket, key, fmt.Errorf("error streaming object body: %w", err))
	}
	if err := w.Close(); err != nil {
		return mapError("put", bucket, key, err)
	}
	return nil
}

func (g *GCPStorage) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	g.logger.Debug("Starting GCP GetObject operation", "bucket", bucket, "object", key)

	r, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, mapError("get", bucket, key, err)
	}
	return r, nil
}

func (g *GCPStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	g.logger.Debug("Starting GCP DeleteObject operation", "bucket", bucket, "object", key)

	err := g.client.Bucket(bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcpstorage.ErrObjectNotExist) {
		g.logger.Debug("Object already absent", "bucket", bucket, "object", key)
		return nil
	}
	if err != nil {
		return mapError("delete", bucket, key, err)
	}
	return nil
}
