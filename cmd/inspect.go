package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/format"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show detailed metadata for an asset",
	Long: `Inspect reports type-specific metadata for an image, GIF, or video:
dimensions, file size, and where applicable frame count, frame rate,
duration, color count, codec, and bitrate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := asset.Inspect(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return format.JSON(os.Stdout, info)
		}
		renderInspection(os.Stdout, info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
