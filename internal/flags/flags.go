// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider flags override the provider inferred from locator prefixes (s3:// or gs://)
	Provider      = "provider"
	ProviderShort = "p"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Output flags select the rendering of results (table, json, yaml)
	Output      = "output"
	OutputShort = "o"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
