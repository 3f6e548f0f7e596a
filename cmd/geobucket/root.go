// File: cmd/geobucket/root.go
package main

import (
	"context"
	"fmt"
	"geobucket/internal/flags"
	"geobucket/internal/logger"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd(app *appContainer) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "geobucket",
		Short: "geobucket moves geospatial files between local disk and object storage.",
		Long: `Copy, download, inspect and delete files on local disk, Amazon S3 (s3://) and
Google Cloud Storage (gs://), and read the coordinate reference system of raster
and vector files.

Credentials come from the environment (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY,
AWS_DEFAULT_REGION, GOOGLE_APPLICATION_CREDENTIALS); endpoints and defaults can be
stored with 'geobucket config set'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(debug)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")

	rootCmd.AddCommand(
		newCpCmd(app),
		newDownloadCmd(app),
		newRmCmd(app),
		newStatCmd(app),
		newProvidersCmd(app),
		newCrsCmd(app),
		newConfigCmd(app),
	)
	return rootCmd
}

// Runs the CLI and returns the process exit code
func Execute(ctx context.Context, app *appContainer) int {
	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
