// File: pkg/geo/reader.go
package geo

import (
	"fmt"
	"strings"
)

// Dataset is an open geospatial file
type Dataset interface {
	// Raw WKT of the dataset's spatial reference, "" if it has none
	SpatialRef() (string, error)
	Close() error
}

// FileReader opens files through a geospatial library
type FileReader interface {
	OpenRaster(path string) (Dataset, error)
	OpenVector(path string) (Dataset, error)
	Normalize(wkt string) (CRS, error)
	// Reports whether two descriptors define the same coordinate system
	Same(a, b CRS) (bool, error)
}

// SameCRS compares a and b through the reader. Matching authority codes or
// identical WKT settle it without a round trip through the library.
func SameCRS(r FileReader, a, b CRS) (bool, error) {
	if a.Equal(b) {
		return true, nil
	}
	same, err := r.Same(a, b)
	if err != nil {
		return false, fmt.Errorf("%w: error comparing %s and %s: %w", ErrUnreadableFile, a, b, err)
	}
	return same, nil
}

// RasterCRS reads the CRS embedded in a raster file
func RasterCRS(r FileReader, path string) (CRS, error) {
	return readCRS(r, r.OpenRaster, "raster", path)
}

// VectorCRS reads the CRS of the first layer of a vector file
func VectorCRS(r FileReader, path string) (CRS, error) {
	return readCRS(r, r.OpenVector, "vector", path)
}

func readCRS(r FileReader, open func(string) (Dataset, error), kind, path string) (crs CRS, err error) {
	ds, err := open(path)
	if err != nil {
		return CRS{}, fmt.Errorf("%w: error opening %s %s: %w", ErrUnreadableFile, kind, path, err)
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", path, cerr)
		}
	}()

	wkt, err := ds.SpatialRef()
	if err != nil {
		return CRS{}, fmt.Errorf("%w: error reading CRS of %s: %w", ErrUnreadableFile, path, err)
	}
	if strings.TrimSpace(wkt) == "" {
		return CRS{}, fmt.Errorf("%w: %s has no CRS", ErrUnreadableFile, path)
	}

	crs, err = r.Normalize(wkt)
	if err != nil {
		return CRS{}, fmt.Errorf("%w: unparseable CRS in %s: %w", ErrUnreadableFile, path, err)
	}
	return crs, nil
}
