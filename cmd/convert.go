package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetguy/assetguy/internal/config"
	"github.com/assetguy/assetguy/internal/format"
	"github.com/assetguy/assetguy/internal/operation"
	"github.com/assetguy/assetguy/internal/params"
)

var convertFlags struct {
	target    string
	preset    string
	width     int
	fps       float64
	colors    int
	quality   int
	start     float64
	end       float64
	output    string
	overwrite bool
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a video into an animated GIF or WebP",
	Long: `Convert re-encodes a video with FFmpeg into an animated GIF or WebP.
Use --start and --end to clip a time range; ranges beyond the video's
duration are clamped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		preset, err := selectPreset(convertFlags.preset, settings)
		if err != nil {
			return err
		}

		var flags params.Values
		if cmd.Flags().Changed("width") {
			flags.Width = params.IntValue(convertFlags.width)
		}
		if cmd.Flags().Changed("fps") {
			flags.FPS = params.FloatValue(convertFlags.fps)
		}
		if cmd.Flags().Changed("colors") {
			flags.Colors = params.IntValue(convertFlags.colors)
		}
		if cmd.Flags().Changed("quality") {
			flags.Quality = params.IntValue(convertFlags.quality)
		}

		resolver := params.Resolver{
			Flags:    flags,
			Preset:   preset,
			Prompter: prompter(),
			Defaults: params.Values{
				Quality: params.IntValue(settings.Int(config.KeyConvertDefaultQuality)),
			},
		}
		keys := []params.Key{params.KeyWidth, params.KeyFPS, params.KeyColors}
		if convertFlags.target == operation.TargetWebP {
			keys = append(keys, params.KeyQuality)
		}
		set, err := resolver.Resolve(keys...)
		if err != nil {
			return err
		}

		onProgress, finishProgress := progressFunc("Converting")
		result, err := operation.Convert(cmd.Context(), args[0], operation.ConvertOptions{
			Target:     convertFlags.target,
			Params:     set,
			Start:      convertFlags.start,
			End:        convertFlags.end,
			Output:     convertFlags.output,
			Overwrite:  convertFlags.overwrite,
			OnProgress: onProgress,
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

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.target, "to", "t", operation.TargetGIF, "Target format (gif or webp)")
	f.StringVarP(&convertFlags.preset, "preset", "p", "", "Preset to apply (docs, web, marketing)")
	f.IntVarP(&convertFlags.width, "width", "w", 0, "Target width in pixels (0 keeps the original)")
	f.Float64VarP(&convertFlags.fps, "fps", "f", 0, "Target frames per second")
	f.IntVarP(&convertFlags.colors, "colors", "c", 0, "Maximum palette colors (GIF)")
	f.IntVarP(&convertFlags.quality, "quality", "q", 0, "WebP quality 1-100")
	f.Float64Var(&convertFlags.start, "start", 0, "Clip start time in seconds")
	f.Float64Var(&convertFlags.end, "end", 0, "Clip end time in seconds (0 means the full duration)")
	f.StringVarP(&convertFlags.output, "output", "o", "", "Output file path")
	f.BoolVar(&convertFlags.overwrite, "overwrite", false, "Replace the output file if it exists")
	rootCmd.AddCommand(convertCmd)
}
