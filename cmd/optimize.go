package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/config"
	"github.com/assetguy/assetguy/internal/format"
	"github.com/assetguy/assetguy/internal/operation"
	"github.com/assetguy/assetguy/internal/params"
)

var optimizeFlags struct {
	preset    string
	width     int
	fps       float64
	colors    int
	quality   int
	output    string
	overwrite bool
	split     []float64
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize <file>",
	Short: "Reduce an asset's file size",
	Long: `Optimize re-encodes an asset to shrink it. GIFs are coalesced, resized,
retimed, and color-reduced with ImageMagick; static images are resized and
re-saved in process; videos are re-encoded with FFmpeg.

With --split, a GIF is cut at the given time points (in seconds) and each
segment is optimized separately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		preset, err := selectPreset(optimizeFlags.preset, settings)
		if err != nil {
			return err
		}

		assetType, err := asset.DetectType(path)
		if err != nil {
			return err
		}

		resolver := params.Resolver{
			Flags:    flagValues(cmd),
			Preset:   preset,
			Prompter: prompter(),
			Defaults: optimizeDefaults(assetType, settings),
		}
		set, err := resolver.Resolve(optimizeKeys(assetType)...)
		if err != nil {
			return err
		}

		onProgress, finishProgress := progressFunc("Optimizing")
		result, err := operation.Optimize(cmd.Context(), path, operation.OptimizeOptions{
			Params:      set,
			Output:      optimizeOutput(path, assetType, settings),
			Overwrite:   optimizeFlags.overwrite,
			SplitPoints: optimizeFlags.split,
			OnProgress:  onProgress,
		})
		finishProgress()
		if err != nil {
			return err
		}

		if jsonOutput {
			return format.JSON(os.Stdout, result)
		}
		renderResult(os.Stdout, result)
		return nil
	},
}

// optimizeOutput applies the configured output conventions when no explicit
// --output path was given: videos land in video_output_path when one is
// configured, and images honor image_default_format.
func optimizeOutput(input string, t asset.Type, settings *config.Settings) string {
	if optimizeFlags.output != "" {
		return optimizeFlags.output
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	switch t {
	case asset.TypeVideo:
		if dir := settings.String(config.KeyVideoOutputPath); dir != "" {
			return filepath.Join(config.ExpandPath(dir), stem+operation.OptimizedSuffix+".mp4")
		}
	case asset.TypeImage:
		if format := settings.String(config.KeyImageDefaultFormat); format != "" {
			return filepath.Join(filepath.Dir(input), stem+operation.OptimizedSuffix+"."+format)
		}
	}
	return ""
}

// flagValues collects only the parameter flags the user actually set.
func flagValues(cmd *cobra.Command) params.Values {
	var v params.Values
	if cmd.Flags().Changed("width") {
		v.Width = params.IntValue(optimizeFlags.width)
	}
	if cmd.Flags().Changed("fps") {
		v.FPS = params.FloatValue(optimizeFlags.fps)
	}
	if cmd.Flags().Changed("colors") {
		v.Colors = params.IntValue(optimizeFlags.colors)
	}
	if cmd.Flags().Changed("quality") {
		v.Quality = params.IntValue(optimizeFlags.quality)
	}
	return v
}

// optimizeKeys lists the parameters that apply to an asset type.
func optimizeKeys(t asset.Type) []params.Key {
	switch t {
	case asset.TypeGIF:
		return []params.Key{params.KeyWidth, params.KeyFPS, params.KeyColors}
	case asset.TypeImage:
		return []params.Key{params.KeyWidth, params.KeyQuality}
	case asset.TypeVideo:
		return []params.Key{params.KeyWidth, params.KeyFPS}
	default:
		return nil
	}
}

// optimizeDefaults builds the configuration-default parameter source for an
// asset type.
func optimizeDefaults(t asset.Type, settings *config.Settings) params.Values {
	switch t {
	case asset.TypeGIF:
		return params.Values{
			Width:  params.IntValue(settings.Int(config.KeyGifDefaultWidth)),
			FPS:    params.FloatValue(settings.Float(config.KeyGifDefaultFPS)),
			Colors: params.IntValue(settings.Int(config.KeyGifDefaultColors)),
		}
	case asset.TypeImage:
		return params.Values{
			Quality: params.IntValue(settings.Int(config.KeyImageDefaultQuality)),
		}
	default:
		return params.Values{}
	}
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVarP(&optimizeFlags.preset, "preset", "p", "", "Preset to apply (docs, web, marketing)")
	f.IntVarP(&optimizeFlags.width, "width", "w", 0, "Target width in pixels (0 keeps the original)")
	f.Float64VarP(&optimizeFlags.fps, "fps", "f", 0, "Target frames per second")
	f.IntVarP(&optimizeFlags.colors, "colors", "c", 0, "Maximum palette colors (GIF)")
	f.IntVarP(&optimizeFlags.quality, "quality", "q", 0, "Output quality 1-100 (images)")
	f.StringVarP(&optimizeFlags.output, "output", "o", "", "Output file path")
	f.BoolVar(&optimizeFlags.overwrite, "overwrite", false, "Replace the output file if it exists")
	f.Float64SliceVar(&optimizeFlags.split, "split", nil, "Split points in seconds (GIF only)")
	rootCmd.AddCommand(optimizeCmd)
}
