// File: cmd/geobucket/config_cmd.go
package main

import (
	"fmt"
	"geobucket/internal/config"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *appContainer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: fmt.Sprintf(`Manage settings stored in the config file. Credentials are never stored here;
they are read from the environment. Supported keys: %s`, strings.Join(config.SupportedKeys(), ", ")),
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long:  `Sets a configuration value. For example: 'geobucket config set aws.endpoint http://localhost:9000'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.ConfigManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration set: %s = %s\n", key, value)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value by key",
		Long:  `Retrieves a configuration value for a given key. For example: 'geobucket config get gcp.project'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value, exists := app.ConfigManager.GetValue(key)

			if !exists || value == "" {
				return fmt.Errorf("configuration key '%s' not found or not set", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
			return nil
		},
	}

	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a configuration value by key",
		Long:  `Deletes a configuration value for a given key. For example: 'geobucket config delete aws.endpoint'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			deleted, err := app.ConfigManager.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}
			if !deleted {
				return fmt.Errorf("configuration key '%s' not found", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration key '%s' deleted\n", key)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all current configuration values",
		Long:  `Displays every key-value pair stored in the config file, and the file's location.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			settings := flattenConfigMap(app.ConfigManager.GetAllSettings())

			keys := make([]string, 0, len(settings))
			for k, v := range settings {
				if v == nil || v == "" {
					continue
				}
				keys = append(keys, k)
			}

			if len(keys) == 0 {
				fmt.Fprintln(out, "No configuration values set. Use 'geobucket config set <key> <value>'.")
				return nil
			}
			sort.Strings(keys)

			fmt.Fprintf(out, "Current configuration (%s):\n", app.ConfigManager.ConfigPath())
			for _, k := range keys {
				fmt.Fprintf(out, "  %s = %v\n", k, settings[k])
			}
			return nil
		},
	}

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd)
	return configCmd
}

// Flattens a nested settings map into dot-notation keys
func flattenConfigMap(nested map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})

	var flatten func(string, interface{})
	flatten = func(prefix string, value interface{}) {
		switch v := value.(type) {
		case map[string]interface{}:
			for k, val := range v {
				key := k
				if prefix != "" {
					key = prefix + "." + k
				}
				flatten(key, val)
			}
		default:
			if prefix != "" {
				flat[prefix] = value
			}
		}
	}

	flatten("", nested)
	return flat
}
