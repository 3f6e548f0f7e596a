// File: cmd/geobucket/transfer_cmd.go
package main

import (
	"fmt"
	"geobucket/internal/flags"
	"geobucket/internal/provider/registry"
	"geobucket/pkg/formatter"
	"strings"

	"github.com/spf13/cobra"
)

func newCpCmd(app *appContainer) *cobra.Command {
	var providerName string

	cmd := &cobra.Command{
		Use:   "cp [source] [destination]",
		Short: "Upload or copy a local file",
		Long: `Uploads a local file to an object store, or copies it to another local path.
The destination is overwritten if it exists. For example:

  geobucket cp ./dem.tif s3://imagery/tiles/dem.tif
  geobucket cp ./dem.tif ./backup/dem.tif`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if err := app.TransferService.CopyOrUpload(cmd.Context(), src, dst, providerName); err != nil {
				return fmt.Errorf("error copying '%s' to '%s': %w", src, dst, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied '%s' to '%s'.\n", src, dst)
			return nil
		},
	}
	addProviderFlag(cmd, &providerName)
	return cmd
}

func newDownloadCmd(app *appContainer) *cobra.Command {
	var providerName string

	cmd := &cobra.Command{
		Use:   "download [remote-source] [local-destination]",
		Short: "Download an object to a local file",
		Long: `Downloads an object to a local path, creating parent directories as needed.
Nothing is written locally if the object does not exist. For example:

  geobucket download gs://imagery/roads.gpkg ./cache/roads.gpkg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if err := app.TransferService.Download(cmd.Context(), src, dst, providerName); err != nil {
				return fmt.Errorf("error downloading '%s': %w", src, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded '%s' to '%s'.\n", src, dst)
			return nil
		},
	}
	addProviderFlag(cmd, &providerName)
	return cmd
}

func newRmCmd(app *appContainer) *cobra.Command {
	var providerName string
	var force bool

	cmd := &cobra.Command{
		Use:   "rm [locator]",
		Short: "Delete an object or local file if it exists",
		Long: `Deletes an object or a local file. A missing target is not an error.
Remote deletions ask you to type the locator back unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := args[0]

			if !force {
				confirmed, err := confirmDelete(app, loc)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
					return nil
				}
			}

			if err := app.TransferService.DeleteIfExists(cmd.Context(), loc, providerName); err != nil {
				return fmt.Errorf("error deleting '%s': %w", loc, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted '%s'.\n", loc)
			return nil
		},
	}
	addProviderFlag(cmd, &providerName)
	cmd.Flags().BoolVarP(&force, flags.Force, flags.ForceShort, false, "Delete without asking for confirmation")
	return cmd
}

func confirmDelete(app *appContainer, loc string) (bool, error) {
	if _, remote := registry.ProviderForLocator(loc); remote {
		return app.Prompter.Confirm(fmt.Sprintf("This permanently deletes the object '%s'.", loc), loc)
	}
	return app.Prompter.ConfirmYes(fmt.Sprintf("Delete local file '%s'?", loc))
}

func newStatCmd(app *appContainer) *cobra.Command {
	var providerName string
	var output string

	cmd := &cobra.Command{
		Use:   "stat [locator]",
		Short: "Show metadata for an object or local file",
		Long:  `Fails if the object or file does not exist, so it can also be used as an existence check.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatter.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			loc := args[0]
			info, err := app.TransferService.Stat(cmd.Context(), loc, providerName)
			if err != nil {
				return fmt.Errorf("error describing '%s': %w", loc, err)
			}

			out, err := formatter.NewObjectFormatter(format).FormatObjectInfo(loc, info)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addProviderFlag(cmd, &providerName)
	addOutputFlag(cmd, &output)
	return cmd
}

func newProvidersCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and whether they are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configured := make(map[string]bool)
			for _, name := range app.ProviderFactory.GetConfiguredProviders() {
				configured[name] = true
			}

			table := formatter.NewTable([]string{"PROVIDER", "PREFIX", "CONFIGURED"})
			for _, name := range registry.GetSupportedProviders() {
				registration, _ := registry.GetRegistration(name)
				status := "no"
				if configured[name] {
					status = "yes"
				}
				table.AddRow(name, registration.Provider.Prefix(), status)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}

func addProviderFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, flags.Provider, flags.ProviderShort, "",
		fmt.Sprintf("Provider to use (%s); inferred from the locator prefix when omitted", strings.Join(registry.GetSupportedProviders(), ", ")))
}

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, flags.Output, flags.OutputShort, string(formatter.FormatTable),
		fmt.Sprintf("Output format (%s)", strings.Join(formatter.SupportedFormats(), ", ")))
}
