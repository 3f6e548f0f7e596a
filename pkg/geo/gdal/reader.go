// File: pkg/geo/gdal/reader.go

// Package gdal implements geo.FileReader on top of the GDAL library.
package gdal

import (
	"errors"
	"fmt"
	"geobucket/pkg/geo"
	"log/slog"
	"sync"

	"github.com/airbusgeo/godal"
)

var registerOnce sync.Once

type Reader struct {
	logger *slog.Logger
}

var _ geo.FileReader = (*Reader)(nil)

// NewReader registers the GDAL drivers on first use
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	registerOnce.Do(godal.RegisterAll)
	return &Reader{logger: logger.With("reader", "gdal")}
}

func (r *Reader) OpenRaster(path string) (geo.Dataset, error) {
	r.logger.Debug("Opening raster", "path", path)
	ds, err := godal.Open(path, godal.RasterOnly())
	if err != nil {
		return nil, err
	}
	return rasterDataset{ds: ds}, nil
}

func (r *Reader) OpenVector(path string) (geo.Dataset, error) {
	r.logger.Debug("Opening vector", "path", path)
	ds, err := godal.Open(path, godal.VectorOnly())
	if err != nil {
		return nil, err
	}
	return vectorDataset{ds: ds}, nil
}

// Normalize re-parses wkt, attempts EPSG identification and re-exports it, so
// descriptors read through different drivers compare on the same terms.
func (r *Reader) Normalize(wkt string) (geo.CRS, error) {
	sr, err := godal.NewSpatialRefFromWKT(wkt)
	if err != nil {
		return geo.CRS{}, err
	}
	defer sr.Close()

	if sr.AuthorityCode("") == "" {
		if err := sr.AutoIdentifyEPSG(); err != nil {
			r.logger.Debug("No EPSG match for spatial reference", "error", err)
		}
	}

	out, err := sr.WKT()
	if err != nil {
		return geo.CRS{}, fmt.Errorf("error exporting WKT: %w", err)
	}

	return geo.CRS{
		Authority: sr.AuthorityName(""),
		Code:      sr.AuthorityCode(""),
		Name:      geo.NameFromWKT(out),
		WKT:       out,
	}, nil
}

// Same rebuilds both spatial references and compares them with GDAL's IsSame
func (r *Reader) Same(a, b geo.CRS) (bool, error) {
	srA, err := godal.NewSpatialRefFromWKT(a.WKT)
	if err != nil {
		return false, err
	}
	defer srA.Close()

	srB, err := godal.NewSpatialRefFromWKT(b.WKT)
	if err != nil {
		return false, err
	}
	defer srB.Close()

	return srA.IsSame(srB), nil
}

type rasterDataset struct {
	ds *godal.Dataset
}

func (d rasterDataset) SpatialRef() (string, error) {
	return d.ds.Projection(), nil
}

func (d rasterDataset) Close() error {
	return d.ds.Close()
}

type vectorDataset struct {
	ds *godal.Dataset
}

// Uses the first layer's spatial reference
func (d vectorDataset) SpatialRef() (string, error) {
	layers := d.ds.Layers()
	if len(layers) == 0 {
		return "", errors.New("dataset has no layers")
	}
	sr := layers[0].SpatialRef()
	if sr == nil {
		return "", nil
	}
	return sr.WKT()
}

func (d vectorDataset) Close() error {
	return d.ds.Close()
}
