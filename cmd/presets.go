package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/config"
	"github.com/assetguy/assetguy/internal/format"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in optimization presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := config.ListPresets()
		if jsonOutput {
			return format.JSON(os.Stdout, presets)
		}
		renderPresets(os.Stdout, presets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
