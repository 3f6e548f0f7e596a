// File: pkg/formatter/output.go
package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

func SupportedFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: %s)", s, strings.Join(SupportedFormats(), ", "))
	}
}

// Encodes v as JSON or YAML; table output is built by the caller
func encode(format OutputFormat, v any) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error encoding JSON: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("error encoding YAML: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("format %q cannot be encoded", format)
	}
}
