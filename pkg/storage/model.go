// File: pkg/storage/model.go
package storage

import (
	"geobucket/pkg/common"
	"time"
)

// Describes a single object, remote or local
type ObjectInfo struct {
	// Empty for local files
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	// Object key, or the filesystem path for local files
	Key string `json:"key" yaml:"key"`
	// Empty for local files
	Provider     common.Provider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Size         int64           `json:"size" yaml:"size"`
	ContentType  string          `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	ETag         string          `json:"etag,omitempty" yaml:"etag,omitempty"`
	StorageClass string          `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
	LastModified time.Time       `json:"lastModified" yaml:"lastModified"`
	// Base64 checksums, when the provider reports them
	MD5Hash  string            `json:"md5Hash,omitempty" yaml:"md5Hash,omitempty"`
	CRC32C   string            `json:"crc32c,omitempty" yaml:"crc32c,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Reports whether the object lives in an object store rather than on local disk
func (o ObjectInfo) IsRemote() bool {
	return o.Provider != ""
}
