// File: internal/service/geo_service.go
package service

import (
	"geobucket/pkg/geo"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

type GeoService struct {
	reader geo.FileReader
	logger *slog.Logger
}

func NewGeoService(reader geo.FileReader, logger *slog.Logger) *GeoService {
	return &GeoService{
		reader: reader,
		logger: logger.With("service", "GeoService"),
	}
}

func (s *GeoService) RasterCRS(path string) (geo.CRS, error) {
	s.logger.Debug("Starting RasterCRS operation", "path", path)

	crs, err := geo.RasterCRS(s.reader, path)
	if err != nil {
		s.logger.Error("Failed to read raster CRS", "path", path, "error", err)
		return geo.CRS{}, err
	}
	return crs, nil
}

func (s *GeoService) VectorCRS(path string) (geo.CRS, error) {
	s.logger.Debug("Starting VectorCRS operation", "path", path)

	crs, err := geo.VectorCRS(s.reader, path)
	if err != nil {
		s.logger.Error("Failed to read vector CRS", "path", path, "error", err)
		return geo.CRS{}, err
	}
	return crs, nil
}

// Reads both files concurrently; each open dataset is independent
func (s *GeoService) CompareCRS(rasterPath, vectorPath string) (geo.Comparison, error) {
	s.logger.Debug("Starting CompareCRS operation", "raster", rasterPath, "vector", vectorPath)

	result := geo.Comparison{
		Raster: geo.FileCRS{Path: rasterPath},
		Vector: geo.FileCRS{Path: vectorPath},
	}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		result.Raster.CRS, err = s.RasterCRS(rasterPath)
		return err
	})
	g.Go(func() error {
		var err error
		result.Vector.CRS, err = s.VectorCRS(vectorPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return geo.Comparison{}, err
	}

	same, err := geo.SameCRS(s.reader, result.Raster.CRS, result.Vector.CRS)
	if err != nil {
		s.logger.Error("Failed to compare CRS", "raster", rasterPath, "vector", vectorPath, "error", err)
		return geo.Comparison{}, err
	}
	result.Equal = same
	return result, nil
}
