package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/format"
	"github.com/assetguy/assetguy/internal/params"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persistent configuration",
	Long: `Config reads and writes the user configuration file. Values set here
become the defaults for every command; environment variables prefixed
with ASSETGUY_ override them for a single run.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if jsonOutput {
			values := make(map[string]any, len(settings.Keys()))
			for _, key := range settings.Keys() {
				v, _ := settings.Get(key)
				values[key] = v
			}
			return format.JSON(os.Stdout, values)
		}
		renderConfig(os.Stdout, settings)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a single configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		value, ok := settings.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown configuration key %q", args[0])
		}
		if jsonOutput {
			return format.JSON(os.Stdout, map[string]any{args[0]: value})
		}
		fmt.Fprintf(os.Stdout, "%v\n", value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if err := settings.Set(args[0], args[1]); err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Fprintf(os.Stdout, "Set %s = %s\n", args[0], args[1])
		}
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all configuration values to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if !nonInteractive {
			terminal := params.NewTerminal(os.Stdin, os.Stderr)
			if !terminal.Confirm("Reset all configuration values to defaults?") {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return nil
			}
		}
		if err := settings.Reset(); err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Fprintln(os.Stdout, "Configuration reset to defaults.")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
