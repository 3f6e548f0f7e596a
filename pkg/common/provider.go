// File: pkg/common/provider.go
package common

import "strings"

type Provider string

const (
	GCP Provider = "GCP"
	AWS Provider = "AWS"
)

// Returns the locator prefix that marks a remote object for this provider
func (p Provider) Prefix() string {
	switch p {
	case AWS:
		return "s3://"
	case GCP:
		return "gs://"
	default:
		return ""
	}
}

// Resolves a provider name, or the scheme of its locator prefix ("s3", "gs"),
// to its Provider value
func ProviderFromName(name string) (Provider, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "aws", "s3":
		return AWS, true
	case "gcp", "gs", "gcs":
		return GCP, true
	default:
		return "", false
	}
}
