// File: pkg/geo/crs.go

// Package geo reads coordinate reference systems out of raster and vector files.
package geo

import (
	"errors"
	"strings"
)

// ErrUnreadableFile is returned when a file cannot be opened or carries no usable CRS
var ErrUnreadableFile = errors.New("unreadable geospatial file")

// CRS is a normalised coordinate reference system. It is a plain value and
// holds no reference to the dataset it was read from.
type CRS struct {
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`
	Code      string `json:"code,omitempty" yaml:"code,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	WKT       string `json:"wkt" yaml:"wkt"`
}

// FileCRS pairs a file with the CRS read from it
type FileCRS struct {
	Path string `json:"path" yaml:"path"`
	CRS  CRS    `json:"crs" yaml:"crs"`
}

// Comparison is the outcome of checking a raster and a vector file for a shared CRS
type Comparison struct {
	Raster FileCRS `json:"raster" yaml:"raster"`
	Vector FileCRS `json:"vector" yaml:"vector"`
	Equal  bool    `json:"equal" yaml:"equal"`
}

// Identifier returns "AUTHORITY:CODE", or "" when either part is unknown
func (c CRS) Identifier() string {
	if c.Authority == "" || c.Code == "" {
		return ""
	}
	return strings.ToUpper(c.Authority) + ":" + c.Code
}

func (c CRS) String() string {
	if id := c.Identifier(); id != "" {
		if c.Name != "" {
			return id + " (" + c.Name + ")"
		}
		return id
	}
	if c.Name != "" {
		return c.Name
	}
	return compactWKT(c.WKT)
}

// Equal is a textual match: authority codes when both sides have one, and the
// whitespace-normalised WKT otherwise. Descriptors that differ here may still
// describe the same system; SameCRS settles that.
func (c CRS) Equal(other CRS) bool {
	if c.Identifier() != "" && other.Identifier() != "" {
		return c.Identifier() == other.Identifier()
	}
	return compactWKT(c.WKT) == compactWKT(other.WKT)
}

func (c CRS) IsEmpty() bool {
	return c.Authority == "" && c.Code == "" && strings.TrimSpace(c.WKT) == ""
}

// NameFromWKT returns the first quoted string of a WKT definition, which is the
// name of the outermost CRS node.
func NameFromWKT(wkt string) string {
	_, rest, ok := strings.Cut(wkt, "[\"")
	if !ok {
		return ""
	}
	name, _, ok := strings.Cut(rest, "\"")
	if !ok {
		return ""
	}
	return name
}

// Drops all whitespace outside quoted names
func compactWKT(wkt string) string {
	var b strings.Builder
	b.Grow(len(wkt))
	quoted := false
	for _, r := range wkt {
		switch {
		case r == '"':
			quoted = !quoted
			b.WriteRune(r)
		case !quoted && (r == ' ' || r == '\n' || r == '\t' || r == '\r'):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
