package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/format"
	"github.com/assetguy/assetguy/internal/operation"
)

var compareCmd = &cobra.Command{
	Use:   "compare <file1> <file2>",
	Short: "Compare two assets of the same type",
	Long: `Compare inspects two assets and reports how their properties differ:
file size, dimensions, and type-specific properties such as frame count,
frame rate, duration, palette size, or bitrate.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		comparison, err := operation.Compare(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			return format.JSON(os.Stdout, comparison)
		}
		renderComparison(os.Stdout, comparison)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
