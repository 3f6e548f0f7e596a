// File: pkg/storage/aws/errors.go
package aws

import (
	"errors"
	"fmt"
	"geobucket/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Translates SDK errors into the storage sentinels while keeping the original in the chain
func mapError(op, bucket, key string, err error) error {
	if kind := classify(err); kind != nil {
		err = fmt.Errorf("%w: %w", kind, err)
	}
	return storage.NewObjectError(op, bucket, key, err)
}

func classify(err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket

	switch {
	case errors.As(err, &noSuchKey), errors.As(err, &notFound):
		return storage.ErrObjectNotFound
	case errors.As(err, &noSuchBucket):
		return storage.ErrBucketNotFound
	}

	// HEAD responses carry no body, so the SDK only has the status-derived code
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return storage.ErrObjectNotFound
		case "NoSuchBucket":
			return storage.ErrBucketNotFound
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch", "AllAccessDisabled":
			return storage.ErrAccessDenied
		}
	}
	return nil
}
