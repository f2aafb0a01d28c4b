package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/params"
	"github.com/assetguy/assetguy/internal/tools"
)

// splitGIF cuts a GIF at the requested time points and optimizes each
// segment independently. Segments land next to the input (or in the output
// directory when one is given) as `<name>_partN.gif`.
func splitGIF(ctx context.Context, info *asset.Info, opts OptimizeOptions) (*Result, error) {
	magick, err := tools.Magick()
	if err != nil {
		return nil, err
	}

	points := normalizeSplitPoints(opts.SplitPoints, info.Duration)
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: no split points fall inside the GIF duration (%.2fs)",
			params.ErrInvalidParameter, info.Duration)
	}

	outputDir := filepath.Dir(info.Path)
	if opts.Output != "" {
		outputDir = opts.Output
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	stem := strings.TrimSuffix(filepath.Base(info.Path), filepath.Ext(info.Path))

	// Coalesce once before extraction so frame disposal methods cannot
	// corrupt extracted segments.
	coalesced, cleanupCoalesced, err := tempOutput(filepath.Join(outputDir, stem+".gif"))
	if err != nil {
		return nil, err
	}
	defer cleanupCoalesced()
	if _, err := tools.Run(ctx, magick, info.Path, "-coalesce", coalesced); err != nil {
		return nil, err
	}

	var outputs []string
	var totalSize int64
	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		startFrame, endFrame, ok := asset.TimeRangeToFrames(info.Delays, start, end)
		if !ok {
			logrus.Warnf("Skipping segment %d (%.2f-%.2fs): no frames in range", i+1, start, end)
			continue
		}

		output := filepath.Join(outputDir, fmt.Sprintf("%s_part%d.gif", stem, i+1))
		if err := checkOutput(output, opts.Overwrite); err != nil {
			return nil, err
		}
		if err := extractSegment(ctx, magick, coalesced, output, startFrame, endFrame, opts.Params); err != nil {
			return nil, fmt.Errorf("segment %d (%.2f-%.2fs) failed: %w", i+1, start, end, err)
		}

		outputs = append(outputs, output)
		totalSize += fileSize(output)
		logrus.Debugf("Created segment %d: %s (%.2f-%.2fs)", i+1, output, start, end)
	}

	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: all segments were empty", params.ErrInvalidParameter)
	}

	result := newResult(OpSplit, info.Path, "", info.SizeBytes, totalSize)
	result.OutputPaths = outputs
	result.Message = fmt.Sprintf("Split GIF into %d segments", len(outputs))
	return result, nil
}

// extractSegment pulls a frame range out of the coalesced GIF and applies
// the optimization parameters to it.
func extractSegment(ctx context.Context, magick, coalesced, output string, startFrame, endFrame int, p params.Set) error {
	tmp, cleanup, err := tempOutput(output)
	if err != nil {
		return err
	}
	defer cleanup()

	frameRange := fmt.Sprintf("%s[%d-%d]", coalesced, startFrame, endFrame)
	args := []string{frameRange}
	if p.Width > 0 {
		args = append(args, "-resize", fmt.Sprintf("%dx", p.Width))
	}
	if p.FPS > 0 {
		args = append(args, "-set", "delay", strconv.Itoa(delayForFPS(p.FPS)))
	}
	if p.Colors > 0 {
		args = append(args, "-colors", strconv.Itoa(p.Colors))
	}
	args = append(args, "-layers", "Optimize", tmp)

	if _, err := tools.Run(ctx, magick, args...); err != nil {
		return err
	}
	return os.Rename(tmp, output)
}

// normalizeSplitPoints sorts the points, drops any outside (0, duration),
// removes duplicates, and adds the start and end boundaries.
func normalizeSplitPoints(points []float64, duration float64) []float64 {
	seen := map[float64]bool{0: true, duration: true}
	valid := []float64{0, duration}
	for _, p := range points {
		if p > 0 && p < duration && !seen[p] {
			seen[p] = true
			valid = append(valid, p)
		}
	}
	sort.Float64s(valid)
	return valid
}
