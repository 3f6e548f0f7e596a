package aws

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"geobucket/pkg/common"
	"geobucket/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockS3Client lets each test override only the calls it cares about
type mockS3Client struct {
	HeadObjectFunc   func(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObjectFunc    func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObjectFunc    func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObjectFunc func(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

func (m *mockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.HeadObjectFunc != nil {
		return m.HeadObjectFunc(ctx, params, optFns...)
	}
	return &s3.HeadObjectOutput{}, nil
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.GetObjectFunc != nil {
		return m.GetObjectFunc(ctx, params, optFns...)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(""))}, nil
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, params, optFns...)
	}
	return &s3.DeleteObjectOutput{}, nil
}

func TestHeadObject(t *testing.T) {
	modified := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := &mockS3Client{
		HeadObjectFunc: func(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			assert.Equal(t, "imagery", awssdk.ToString(in.Bucket))
			assert.Equal(t, "tiles/a.tif", awssdk.ToString(in.Key))
			return &s3.HeadObjectOutput{
				ContentLength: awssdk.Int64(42),
				ContentType:   awssdk.String("image/tiff"),
				ETag:          awssdk.String(`"abc"`),
				LastModified:  &modified,
				StorageClass:  types.StorageClassStandardIa,
				Metadata:      map[string]string{"source": "drone"},
			}, nil
		},
	}

	store := NewAWSStorageWithClient(mock, "eu-west-1", nil)
	info, err := store.HeadObject(context.Background(), "imagery", "tiles/a.tif")
	require.NoError(t, err)

	assert.Equal(t, storage.ObjectInfo{
		Bucket:       "imagery",
		Key:          "tiles/a.tif",
		Provider:     common.AWS,
		Size:         42,
		ContentType:  "image/tiff",
		ETag:         `"abc"`,
		StorageClass: "STANDARD_IA",
		LastModified: modified,
		Metadata:     map[string]string{"source": "drone"},
	}, info)
}

func TestHeadObjectErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "typed not found", err: &types.NotFound{}, wantErr: storage.ErrObjectNotFound},
		{name: "no such key", err: &types.NoSuchKey{}, wantErr: storage.ErrObjectNotFound},
		{name: "generic 404", err: &smithy.GenericAPIError{Code: "NotFound"}, wantErr: storage.ErrObjectNotFound},
		{name: "no such bucket", err: &types.NoSuchBucket{}, wantErr: storage.ErrBucketNotFound},
		{name: "forbidden", err: &smithy.GenericAPIError{Code: "Forbidden"}, wantErr: storage.ErrAccessDenied},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, wantErr: storage.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockS3Client{
				HeadObjectFunc: func(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
					return nil, tt.err
				},
			}
			store := NewAWSStorageWithClient(mock, "eu-west-1", nil)

			_, err := store.HeadObject(context.Background(), "b", "k")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.err, "original SDK error must stay in the chain")

			var storageErr *storage.Error
			require.ErrorAs(t, err, &storageErr)
			assert.Equal(t, "head", storageErr.Op)
			assert.Equal(t, "b", storageErr.Bucket)
			assert.Equal(t, "k", storageErr.Key)
		})
	}
}

func TestUnclassifiedErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &mockS3Client{
		DeleteObjectFunc: func(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
			return nil, boom
		},
	}
	store := NewAWSStorageWithClient(mock, "eu-west-1", nil)

	err := store.DeleteObject(context.Background(), "b", "k")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, storage.ErrObjectNotFound)
	assert.NotErrorIs(t, err, storage.ErrAccessDenied)
}

func TestPutObject(t *testing.T) {
	var gotBody []byte
	mock := &mockS3Client{
		PutObjectFunc: func(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "imagery", awssdk.ToString(in.Bucket))
			assert.Equal(t, "a/b.tif", awssdk.ToString(in.Key))
			assert.Equal(t, int64(5), awssdk.ToInt64(in.ContentLength))
			assert.Equal(t, "image/tiff", awssdk.ToString(in.ContentType))
			b, err := io.ReadAll(in.Body)
			require.NoError(t, err)
			gotBody = b
			return &s3.PutObjectOutput{}, nil
		},
	}
	store := NewAWSStorageWithClient(mock, "eu-west-1", nil)

	err := store.PutObject(context.Background(), "imagery", "a/b.tif", bytes.NewReader([]byte("hello")), storage.PutOptions{
		Size:        5,
		ContentType: "image/tiff",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(gotBody))
}

func TestPutObjectUnknownSize(t *testing.T) {
	mock := &mockS3Client{
		PutObjectFunc: func(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Nil(t, in.ContentLength)
			assert.Nil(t, in.ContentType)
			return nil, &smithy.GenericAPIError{Code: "AccessDenied"}
		},
	}
	store := NewAWSStorageWithClient(mock, "eu-west-1", nil)

	err := store.PutObject(context.Background(), "b", "k", strings.NewReader("x"), storage.PutOptions{Size: -1})
	assert.ErrorIs(t, err, storage.ErrAccessDenied)
}

func TestGetObject(t *testing.T) {
	mock := &mockS3Client{
		GetObjectFunc: func(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("raster bytes"))}, nil
		},
	}
	store := NewAWSStorageWithClient(mock, "eu-west-1", nil)

	rc, err := store.GetObject(context.Background(), "b", "k")
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "raster bytes", string(b))
}

func TestDeleteObjectMissingIsNotAnError(t *testing.T) {
	// S3 answers 204 for keys that do not exist
	store := NewAWSStorageWithClient(&mockS3Client{}, "eu-west-1", nil)
	assert.NoError(t, store.DeleteObject(context.Background(), "b", "missing"))
	assert.Equal(t, common.AWS, store.ProviderName())
	assert.NoError(t, store.Close())
}
