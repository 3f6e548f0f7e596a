// File: pkg/formatter/object_formatter.go
package formatter

import (
	"geobucket/pkg/geo"
	"geobucket/pkg/storage"
	"sort"
	"strings"
	"time"
)

type ObjectFormatter struct {
	format OutputFormat
}

func NewObjectFormatter(format OutputFormat) *ObjectFormatter {
	if format == "" {
		format = FormatTable
	}
	return &ObjectFormatter{format: format}
}

func (f *ObjectFormatter) Format() OutputFormat {
	return f.format
}

func (f *ObjectFormatter) FormatObjectInfo(loc string, info storage.ObjectInfo) (string, error) {
	if f.format != FormatTable {
		return encode(f.format, info)
	}

	var sb strings.Builder
	sb.WriteString(FormatHeaderSection("Object: " + loc))
	sb.WriteString("\n\n")
	sb.WriteString(FormatSectionTitle("Overview"))
	sb.WriteString("\n")

	overview := NewTable([]string{"Parameter", "Value"})
	if info.IsRemote() {
		overview.AddRow("Provider", string(info.Provider))
		overview.AddRow("Bucket", info.Bucket)
		overview.AddRow("Key", info.Key)
	} else {
		overview.AddRow("Path", info.Key)
	}
	overview.AddRow("Size", FormatBytes(info.Size))
	if !info.LastModified.IsZero() {
		overview.AddRow("Last Modified", info.LastModified.Format(time.RFC1123))
	}

	optional := []struct {
		key   string
		value string
	}{
		{"Content Type", info.ContentType},
		{"Storage Class", info.StorageClass},
		{"ETag", info.ETag},
		{"MD5", info.MD5Hash},
		{"CRC32C", info.CRC32C},
	}
	for _, o := range optional {
		if o.value != "" {
			overview.AddRow(o.key, o.value)
		}
	}
	sb.WriteString(overview.String())

	if len(info.Metadata) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(FormatSectionTitle("Metadata"))
		sb.WriteString("\n")

		keys := make([]string, 0, len(info.Metadata))
		for k := range info.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		metadata := NewTable([]string{"Key", "Value"})
		for _, k := range keys {
			metadata.AddRow(k, info.Metadata[k])
		}
		sb.WriteString(metadata.String())
	}

	return sb.String(), nil
}

func (f *ObjectFormatter) FormatCRS(result geo.FileCRS) (string, error) {
	if f.format != FormatTable {
		return encode(f.format, result)
	}

	var sb strings.Builder
	sb.WriteString(FormatHeaderSection("CRS: " + result.Path))
	sb.WriteString("\n\n")
	sb.WriteString(crsTable(result.CRS).String())
	if result.CRS.WKT != "" {
		sb.WriteString("\n\n")
		sb.WriteString(FormatSectionTitle("WKT"))
		sb.WriteString("\n")
		sb.WriteString(result.CRS.WKT)
	}
	return sb.String(), nil
}

func (f *ObjectFormatter) FormatCRSComparison(cmp geo.Comparison) (string, error) {
	if f.format != FormatTable {
		return encode(f.format, cmp)
	}

	table := NewTable([]string{"Role", "Path", "CRS"})
	table.AddRow("raster", cmp.Raster.Path, cmp.Raster.CRS.String())
	table.AddRow("vector", cmp.Vector.Path, cmp.Vector.CRS.String())

	verdict := "CRS differ"
	if cmp.Equal {
		verdict = "CRS match"
	}
	return table.String() + "\n" + FormatSectionTitle(verdict), nil
}

func crsTable(crs geo.CRS) *Table {
	table := NewTable([]string{"Parameter", "Value"})
	table.AddRow("Name", valueOr(crs.Name, "unknown"))
	table.AddRow("Authority", valueOr(crs.Authority, "none"))
	table.AddRow("Code", valueOr(crs.Code, "none"))
	return table
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
