// File: pkg/formatter/bytes.go
package formatter

import "fmt"

// Formats a byte count using binary units, e.g. 1536 -> "1.50 KiB"
func FormatBytes(n int64) string {
	const unit = 1024
	if n < 0 {
		return "unknown"
	}
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
