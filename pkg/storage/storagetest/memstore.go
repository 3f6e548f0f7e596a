// File: pkg/storage/storagetest/memstore.go

// Package storagetest provides an in-memory ObjectStore for tests.
package storagetest

import (
	"bytes"
	"context"
	"fmt"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"io"
	"sync"
	"time"
)

type object struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemStore keeps objects in a map. Buckets must be created before use.
// The Err fields, when set, are returned by the matching operation.
type MemStore struct {
	Provider common.Provider

	HeadErr   error
	PutErr    error
	GetErr    error
	DeleteErr error

	mu      sync.Mutex
	buckets map[string]map[string]object
	closed  int
	calls   []string
}

var _ storage.ObjectStore = (*MemStore)(nil)

func NewMemStore(provider common.Provider, buckets ...string) *MemStore {
	m := &MemStore{
		Provider: provider,
		buckets:  make(map[string]map[string]object),
	}
	for _, b := range buckets {
		m.buckets[b] = make(map[string]object)
	}
	return m
}

// Stores an object directly, bypassing PutErr
func (m *MemStore) Seed(bucket, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buckets[bucket] == nil {
		m.buckets[bucket] = make(map[string]object)
	}
	m.buckets[bucket][key] = object{data: append([]byte(nil), data...), modified: time.Now()}
}

// Returns a copy of an object's content and whether it exists
func (m *MemStore) Object(bucket, key string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.buckets[bucket][key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), obj.data...), obj.contentType, true
}

// Number of times Close was called
func (m *MemStore) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Operations performed so far, in order
func (m *MemStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MemStore) ProviderName() common.Provider {
	return m.Provider
}

func (m *MemStore) HeadObject(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "head")

	if m.HeadErr != nil {
		return storage.ObjectInfo{}, m.HeadErr
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return storage.ObjectInfo{}, storage.NewObjectError("head", bucket, key, storage.ErrBucketNotFound)
	}
	obj, ok := objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.NewObjectError("head", bucket, key, storage.ErrObjectNotFound)
	}
	return storage.ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Provider:     m.Provider,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.modified,
	}, nil
}

func (m *MemStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, opts storage.PutOptions) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "put")

	if m.PutErr != nil {
		return m.PutErr
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return storage.NewObjectError("put", bucket, key, storage.ErrBucketNotFound)
	}
	if opts.Size >= 0 && int64(len(data)) != opts.Size {
		return fmt.Errorf("body length %d does not match declared size %d", len(data), opts.Size)
	}
	objects[key] = object{data: data, contentType: opts.ContentType, modified: time.Now()}
	return nil
}

func (m *MemStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "get")

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	obj, ok := m.buckets[bucket][key]
	if !ok {
		return nil, storage.NewObjectError("get", bucket, key, storage.ErrObjectNotFound)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *MemStore) DeleteObject(ctx context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete")

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return storage.NewObjectError("delete", bucket, key, storage.ErrBucketNotFound)
	}
	delete(objects, key)
	return nil
}

func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}
