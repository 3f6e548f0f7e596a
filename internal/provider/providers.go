// File: internal/provider/providers.go
package provider

// This file explicitly imports all provider implementation packages.
// The blank identifier (_) ensures that the init() function of each package runs,
// allowing them to register themselves with the central provider registry.

import (
	_ "geobucket/pkg/storage/aws"
	_ "geobucket/pkg/storage/gcp"
)
