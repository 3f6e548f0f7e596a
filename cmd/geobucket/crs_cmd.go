// File: cmd/geobucket/crs_cmd.go
package main

import (
	"errors"
	"fmt"
	"geobucket/internal/flags"
	"geobucket/pkg/formatter"
	"geobucket/pkg/geo"
	"strings"

	"github.com/spf13/cobra"
)

var errCRSMismatch = errors.New("files do not share a CRS")

func newCrsCmd(app *appContainer) *cobra.Command {
	var output string

	crsCmd := &cobra.Command{
		Use:   "crs",
		Short: "Read coordinate reference systems from geospatial files",
		Long:  `Reads the CRS of local raster (GeoTIFF, ...) and vector (GeoJSON, Shapefile, GeoPackage, ...) files through GDAL.`,
	}

	rasterCmd := &cobra.Command{
		Use:   "raster [path]",
		Short: "Show the CRS of a raster file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCRS(cmd, output, args[0], app.GeoService.RasterCRS)
		},
	}

	vectorCmd := &cobra.Command{
		Use:   "vector [path]",
		Short: "Show the CRS of the first layer of a vector file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCRS(cmd, output, args[0], app.GeoService.VectorCRS)
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [raster-path] [vector-path]",
		Short: "Check whether a raster and a vector file share a CRS",
		Long:  `Prints both descriptors and exits with an error when they differ.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatter.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			cmp, err := app.GeoService.CompareCRS(args[0], args[1])
			if err != nil {
				return err
			}

			out, err := formatter.NewObjectFormatter(format).FormatCRSComparison(cmp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if !cmp.Equal {
				return fmt.Errorf("%w: %s and %s", errCRSMismatch, cmp.Raster.CRS, cmp.Vector.CRS)
			}
			return nil
		},
	}

	crsCmd.PersistentFlags().StringVarP(&output, flags.Output, flags.OutputShort, string(formatter.FormatTable),
		fmt.Sprintf("Output format (%s)", strings.Join(formatter.SupportedFormats(), ", ")))
	crsCmd.AddCommand(rasterCmd, vectorCmd, compareCmd)
	return crsCmd
}

func printCRS(cmd *cobra.Command, output, path string, read func(string) (geo.CRS, error)) error {
	format, err := formatter.ParseOutputFormat(output)
	if err != nil {
		return err
	}

	crs, err := read(path)
	if err != nil {
		return err
	}

	out, err := formatter.NewObjectFormatter(format).FormatCRS(geo.FileCRS{Path: path, CRS: crs})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
