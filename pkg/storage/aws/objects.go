// File: pkg/storage/aws/objects.go
package aws

import (
	"context"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"io"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func (s *AWSStorage) HeadObject(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	s.logger.Debug("Starting AWS HeadObject operation", "bucket", bucket, "object", key)

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return storage.ObjectInfo{}, mapError("head", bucket, key, err)
	}

	return storage.ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Provider:     common.AWS,
		Size:         awssdk.ToInt64(out.ContentLength),
		ContentType:  awssdk.ToString(out.ContentType),
		ETag:         awssdk.ToString(out.ETag),
		StorageClass: string(out.StorageClass),
		LastModified: awssdk.ToTime(out.LastModified),
		Metadata:     out.Metadata,
	}, nil
}

func (s *AWSStorage) PutObject(ctx context.Context, bucket, key string, body io.Reader, opts storage.PutOptions) error {
	s.logger.Debug("Starting AWS PutObject operation", "bucket", bucket, "object", key, "size", opts.Size)

	input := &s3.PutObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(key),
		Body:   body,
	}
	if opts.Size >= 0 {
		input.ContentLength = awssdk.Int64(opts.Size)
	}
	if opts.ContentType != "" {
		input.ContentType = awssdk.String(opts.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return mapError("put", bucket, key, err)
	}
	return nil
}

func (s *AWSStorage) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	s.logger.Debug("Starting AWS GetObject operation", "bucket", bucket, "object", key)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return nil, mapError("get", bucket, key, err)
	}
	return out.Body, nil
}

func (s *AWSStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	s.logger.Debug("Starting AWS DeleteObject operation", "bucket", bucket, "object", key)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return mapError("delete", bucket, key, err)
	}
	return nil
}
