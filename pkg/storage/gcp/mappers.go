// File: pkg/storage/gcp/mappers.go
package gcp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"net/http"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// Maps GCP SDK object attributes to the domain model
func mapObjectAttributes(attrs *gcpstorage.ObjectAttrs) storage.ObjectInfo {
	if attrs == nil {
		return storage.ObjectInfo{}
	}

	return storage.ObjectInfo{
		Bucket:       attrs.Bucket,
		Key:          attrs.Name,
		Provider:     common.GCP,
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		ETag:         attrs.Etag,
		StorageClass: attrs.StorageClass,
		LastModified: attrs.Updated,
		MD5Hash:      formatMD5(attrs.MD5),
		CRC32C:       formatCRC32C(attrs.CRC32C),
		Metadata:     attrs.Metadata,
	}
}

// Translates SDK errors into the storage sentinels while keeping the original in the chain
func mapError(op, bucket, key string, err error) error {
	if kind := classify(op, err); kind != nil {
		err = fmt.Errorf("%w: %w", kind, err)
	}
	return storage.NewObjectError(op, bucket, key, err)
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, gcpstorage.ErrObjectNotExist):
		return storage.ErrObjectNotFound
	case errors.Is(err, gcpstorage.ErrBucketNotExist):
		return storage.ErrBucketNotFound
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return storage.ErrAccessDenied
		case http.StatusNotFound:
			// A write can only 404 on the bucket
			if op == "put" {
				return storage.ErrBucketNotFound
			}
			return storage.ErrObjectNotFound
		}
	}
	return nil
}

// Converts the binary MD5 hash provided by GCP SDK into a standard Base64 encoded string
func formatMD5(hash []byte) string {
	if len(hash) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(hash)
}

// Converts the uint32 CRC32C checksum provided by GCP SDK into a standard Base64 encoded string
func formatCRC32C(crc32c uint32) string {
	if crc32c == 0 {
		return ""
	}
	// Convert the uint32 to a 4-byte big-endian slice
	b := []byte{
		byte(crc32c >> 24),
		byte(crc32c >> 16),
		byte(crc32c >> 8),
		byte(crc32c),
	}
	return base64.StdEncoding.EncodeToString(b)
}
