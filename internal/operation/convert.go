package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/params"
	"github.com/assetguy/assetguy/internal/tools"
)

// Conversion targets
const (
	TargetGIF  = "gif"
	TargetWebP = "webp"
)

// WebP encoder settings
const (
	WebPCodec    = "libwebp"
	WebPLoopFlag = "0" // loop forever, like a GIF
)

// ConvertOptions configures a video conversion.
type ConvertOptions struct {
	Target    string
	Params    params.Set
	Start     float64
	End       float64
	Output    string
	Overwrite bool

	// OnProgress receives processed and total media seconds. May be nil.
	OnProgress func(done, total float64)
}

// Convert turns a video into an animated GIF or WebP, optionally trimmed to
// a time range.
func Convert(ctx context.Context, path string, opts ConvertOptions) (*Result, error) {
	if opts.Target != TargetGIF && opts.Target != TargetWebP {
		return nil, fmt.Errorf("%w: conversion target must be %q or %q, got %q",
			params.ErrInvalidParameter, TargetGIF, TargetWebP, opts.Target)
	}
	if _, err := tools.FFmpeg(); err != nil {
		return nil, err
	}

	info, err := asset.Inspect(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Type != asset.TypeVideo {
		return nil, fmt.Errorf("convert requires a video input, got %s asset: %s", info.Type, path)
	}

	start, clipDuration, err := clampTimeRange(opts.Start, opts.End, info.Duration)
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		base := strings.TrimSuffix(info.Path, filepath.Ext(info.Path))
		output = base + "." + opts.Target
	}
	if err := checkOutput(output, opts.Overwrite); err != nil {
		return nil, err
	}

	tmp, cleanup, err := tempOutput(output)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := buildConvertArgs(info.Path, tmp, opts.Target, opts.Params, start, clipDuration)
	total := info.Duration
	if clipDuration > 0 {
		total = clipDuration
	}
	onProgress := progressCallback(opts.OnProgress, total)
	if _, err := tools.RunWithProgress(ctx, onProgress, tools.FFmpegCommand, args...); err != nil {
		return nil, err
	}

	// GIF color reduction is a second pass through ImageMagick. A missing
	// ImageMagick degrades to the plain ffmpeg output rather than failing.
	if opts.Target == TargetGIF && opts.Params.Colors > 0 {
		if err := reduceColors(ctx, tmp, opts.Params.Colors); err != nil {
			return nil, err
		}
	}

	if err := os.Rename(tmp, output); err != nil {
		return nil, fmt.Errorf("failed to move output into place: %w", err)
	}

	result := newResult(OpConvert, info.Path, output, info.SizeBytes, fileSize(output))
	result.Message = fmt.Sprintf("Converted %s to %s", info.Path, output)
	return result, nil
}

// clampTimeRange validates the requested trim against the probed duration.
// Returns the effective start and clip duration; a zero clip duration means
// convert the whole video.
func clampTimeRange(start, end, duration float64) (float64, float64, error) {
	if start < 0 {
		start = 0
	}
	if end > duration {
		end = duration
	}
	if end > 0 && start >= end {
		return 0, 0, fmt.Errorf("%w: invalid time range %g-%g", params.ErrInvalidParameter, start, end)
	}

	switch {
	case end > 0:
		return start, end - start, nil
	case start > 0:
		return start, duration - start, nil
	}
	return 0, 0, nil
}

// buildConvertArgs constructs the ffmpeg command line. -ss is placed before
// -i for fast seeking; -t must follow the input.
func buildConvertArgs(input, output, target string, p params.Set, start, clipDuration float64) []string {
	args := []string{"-y"}
	if start > 0 {
		args = append(args, "-ss", formatSeconds(start))
	}
	args = append(args, "-i", input)
	if clipDuration > 0 {
		args = append(args, "-t", formatSeconds(clipDuration))
	}

	var filters []string
	if p.FPS > 0 {
		filters = append(filters, fmt.Sprintf("fps=%g", p.FPS))
	}
	if p.Width > 0 {
		filters = append(filters, fmt.Sprintf("scale=%d:-1", p.Width))
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}

	if target == TargetWebP {
		quality := p.Quality
		if quality == 0 {
			quality = 85
		}
		args = append(args,
			"-c:v", WebPCodec,
			"-quality", strconv.Itoa(quality),
			"-loop", WebPLoopFlag,
		)
	}

	args = append(args, "-progress", tools.ProgressPipeTarget, "-nostats")
	return append(args, output)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// reduceColors rewrites a GIF in place with a reduced palette.
func reduceColors(ctx context.Context, path string, colors int) error {
	magick, err := tools.Magick()
	if err != nil {
		logrus.Warnf("ImageMagick not available, skipping color reduction: %v", err)
		return nil
	}

	tmp, cleanup, err := tempOutput(path)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tools.Run(ctx, magick, path, "-colors", strconv.Itoa(colors), tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
