package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/config"
	"github.com/assetguy/assetguy/internal/format"
	"github.com/assetguy/assetguy/internal/operation"
	"github.com/assetguy/assetguy/internal/tools"
)

func renderInspection(w io.Writer, info *asset.Info) {
	fmt.Fprintf(w, "File:       %s\n", info.Path)
	fmt.Fprintf(w, "Type:       %s\n", info.Type)
	fmt.Fprintf(w, "Size:       %s\n", info.SizeFormatted)
	fmt.Fprintf(w, "Dimensions: %dx%d\n", info.Width, info.Height)

	switch info.Type {
	case asset.TypeGIF:
		fmt.Fprintf(w, "Frames:     %d\n", info.Frames)
		fmt.Fprintf(w, "FPS:        %.2f\n", info.FPS)
		fmt.Fprintf(w, "Duration:   %.2fs\n", info.Duration)
		fmt.Fprintf(w, "Colors:     %d\n", info.Colors)
	case asset.TypeImage:
		fmt.Fprintf(w, "Format:     %s\n", info.Format)
		fmt.Fprintf(w, "Mode:       %s\n", info.Mode)
	case asset.TypeVideo:
		fmt.Fprintf(w, "Codec:      %s\n", info.Codec)
		fmt.Fprintf(w, "Duration:   %.2fs\n", info.Duration)
		fmt.Fprintf(w, "FPS:        %.2f\n", info.FPS)
		fmt.Fprintf(w, "Bitrate:    %.0f kbps\n", info.BitrateKbps)
		fmt.Fprintf(w, "Frames:     %d\n", info.FrameCount)
	}
}

func renderResult(w io.Writer, result *operation.Result) {
	if result.Message != "" {
		fmt.Fprintln(w, result.Message)
	}
	if len(result.OutputPaths) > 0 {
		for _, path := range result.OutputPaths {
			fmt.Fprintf(w, "  %s\n", path)
		}
	} else if result.OutputPath != "" {
		fmt.Fprintf(w, "Output: %s\n", result.OutputPath)
	}
	fmt.Fprintf(w, "Size:   %s -> %s", result.InputSizeFormatted, result.OutputSizeFormatted)
	if result.Reduction >= 0 {
		fmt.Fprintf(w, " (saved %s, %.1f%%)\n", result.ReductionFormatted, result.ReductionPercent)
	} else {
		fmt.Fprintf(w, " (grew %s)\n", result.ReductionFormatted)
	}
}

func renderComparison(w io.Writer, c *operation.Comparison) {
	fmt.Fprintf(w, "Comparing %s (%s) with %s (%s)\n\n",
		c.Asset1.Path, c.Asset1.SizeFormatted, c.Asset2.Path, c.Asset2.SizeFormatted)

	fmt.Fprintf(w, "  %-12s %s\n", "Size:", c.Differences.SizeBytes.Description)
	if c.Differences.Dimensions.Same {
		fmt.Fprintf(w, "  %-12s Same\n", "Dimensions:")
	} else {
		fmt.Fprintf(w, "  %-12s %dx%d -> %dx%d\n", "Dimensions:",
			c.Asset1.Width, c.Asset1.Height, c.Asset2.Width, c.Asset2.Height)
	}

	renderDiffLine(w, "Frames:", c.Differences.Frames)
	renderDiffLine(w, "Duration:", c.Differences.Duration)
	renderDiffLine(w, "FPS:", c.Differences.FPS)
	renderDiffLine(w, "Colors:", c.Differences.Colors)
	renderDiffLine(w, "Bitrate:", c.Differences.BitrateKbps)
	renderDiffLine(w, "Frames:", c.Differences.FrameCount)

	renderSizeVerdict(w, c)
}

// renderSizeVerdict summarizes the file size difference in one line.
func renderSizeVerdict(w io.Writer, c *operation.Comparison) {
	diff := c.Differences.SizeBytes
	fmt.Fprintln(w)
	switch {
	case diff.Same:
		fmt.Fprintln(w, "Both assets are the same size")
	case diff.Percent == nil:
		fmt.Fprintf(w, "Asset 2 is larger (%.2f MB bigger)\n", format.SizeMB(int64(diff.Diff)))
	case diff.Diff < 0:
		fmt.Fprintf(w, "Asset 2 is %.1f%% smaller (%.2f MB saved)\n",
			math.Abs(*diff.Percent), format.SizeMB(int64(-diff.Diff)))
	default:
		fmt.Fprintf(w, "Asset 2 is %.1f%% larger (%.2f MB bigger)\n",
			*diff.Percent, format.SizeMB(int64(diff.Diff)))
	}
}

func renderDiffLine(w io.Writer, label string, diff *operation.NumericDiff) {
	if diff == nil {
		return
	}
	fmt.Fprintf(w, "  %-12s %s\n", label, diff.Description)
}

func renderPresets(w io.Writer, presets []config.Preset) {
	fmt.Fprintln(w, "Available presets:")
	for _, p := range presets {
		fmt.Fprintf(w, "\n  %s\n", p.Name)
		fmt.Fprintf(w, "    %s\n", p.Description)
		fmt.Fprintf(w, "    width=%d fps=%g colors=%d\n", p.Width, p.FPS, p.Colors)
	}
}

func renderTools(w io.Writer, statuses []tools.Status) {
	for _, s := range statuses {
		if s.Available {
			fmt.Fprintf(w, "  %-12s %s (%s)\n", s.Name, s.Path, s.Version)
		} else {
			fmt.Fprintf(w, "  %-12s not found\n", s.Name)
		}
	}
}

func renderConfig(w io.Writer, settings *config.Settings) {
	fmt.Fprintf(w, "Configuration file: %s\n\n", settings.Path())
	for _, key := range settings.Keys() {
		value, _ := settings.Get(key)
		fmt.Fprintf(w, "  %-24s %v\n", key, value)
	}
}
