package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/format"
	"github.com/assetguy/assetguy/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show which external tools are available",
	Long: `Tools probes for the external programs this CLI delegates to
(ImageMagick, FFmpeg, FFprobe) and reports their paths and versions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses := tools.Detect()
		if jsonOutput {
			return format.JSON(os.Stdout, statuses)
		}
		renderTools(os.Stdout, statuses)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
