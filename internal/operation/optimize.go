package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/params"
	"github.com/assetguy/assetguy/internal/tools"
)

// Operation names
const (
	OpOptimize = "optimize"
	OpSplit    = "split"
	OpConvert  = "convert"
)

// OptimizedSuffix is appended to the input name when no output path is given.
const OptimizedSuffix = "-optimized"

// FFmpeg encoding settings for video optimization
const (
	VideoCodec    = "libx264"
	VideoPreset   = "medium"
	VideoCRF      = "23"
	AudioCodec    = "aac"
	AudioBitrate  = "128k"
	FastStartFlag = "+faststart"
)

// OptimizeOptions configures a single optimize run.
type OptimizeOptions struct {
	Params      params.Set
	Output      string
	Overwrite   bool
	SplitPoints []float64

	// OnProgress receives processed and total media seconds for operations
	// that stream progress (video re-encode). May be nil.
	OnProgress func(done, total float64)
}

// Optimize reduces an asset's file size according to the resolved parameter
// set, dispatching on the asset's type.
func Optimize(ctx context.Context, path string, opts OptimizeOptions) (*Result, error) {
	info, err := asset.Inspect(ctx, path)
	if err != nil {
		return nil, err
	}

	switch info.Type {
	case asset.TypeGIF:
		if len(opts.SplitPoints) > 0 {
			return splitGIF(ctx, info, opts)
		}
		return optimizeGIF(ctx, info, opts)
	case asset.TypeImage:
		return optimizeImage(info, opts)
	case asset.TypeVideo:
		return optimizeVideo(ctx, info, opts)
	}
	return nil, fmt.Errorf("%w: %s", asset.ErrUnsupportedType, path)
}

// defaultOutputPath derives `<name>-optimized<ext>` next to the input.
func defaultOutputPath(inputPath, ext string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + OptimizedSuffix + ext
}

func optimizeGIF(ctx context.Context, info *asset.Info, opts OptimizeOptions) (*Result, error) {
	magick, err := tools.Magick()
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = defaultOutputPath(info.Path, ".gif")
	}
	if err := checkOutput(output, opts.Overwrite); err != nil {
		return nil, err
	}

	tmp, cleanup, err := tempOutput(output)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := buildGIFOptimizeArgs(info.Path, tmp, opts.Params)
	if _, err := tools.Run(ctx, magick, args...); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, output); err != nil {
		return nil, fmt.Errorf("failed to move output into place: %w", err)
	}

	result := newResult(OpOptimize, info.Path, output, info.SizeBytes, fileSize(output))
	result.Message = fmt.Sprintf("Optimized GIF written to %s", output)
	return result, nil
}

// buildGIFOptimizeArgs constructs the ImageMagick command line. Frames are
// coalesced first so resizing and delay changes apply to full frames, then
// re-optimized on output.
func buildGIFOptimizeArgs(input, output string, p params.Set) []string {
	args := []string{input, "-coalesce"}
	if p.Width > 0 {
		args = append(args, "-resize", fmt.Sprintf("%dx", p.Width))
	}
	if p.FPS > 0 {
		args = append(args, "-set", "delay", strconv.Itoa(delayForFPS(p.FPS)))
	}
	if p.Colors > 0 {
		args = append(args, "-colors", strconv.Itoa(p.Colors))
	}
	return append(args, "-layers", "Optimize", output)
}

// delayForFPS converts a target FPS to a centisecond frame delay, minimum 1.
func delayForFPS(fps float64) int {
	return max(1, int(asset.CentisPerSecond/fps))
}

func optimizeImage(info *asset.Info, opts OptimizeOptions) (*Result, error) {
	output := opts.Output
	if output == "" {
		output = defaultOutputPath(info.Path, filepath.Ext(info.Path))
	}
	if err := checkOutput(output, opts.Overwrite); err != nil {
		return nil, err
	}

	img, err := imaging.Open(info.Path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("error reading image: %w", err)
	}

	width := opts.Params.Width
	if width > 0 && width < img.Bounds().Dx() {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	saveOpts := []imaging.EncodeOption{}
	if opts.Params.Quality > 0 {
		saveOpts = append(saveOpts, imaging.JPEGQuality(opts.Params.Quality))
	}
	if err := imaging.Save(img, output, saveOpts...); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	result := newResult(OpOptimize, info.Path, output, info.SizeBytes, fileSize(output))
	result.Message = fmt.Sprintf("Optimized image written to %s", output)
	return result, nil
}

func optimizeVideo(ctx context.Context, info *asset.Info, opts OptimizeOptions) (*Result, error) {
	if _, err := tools.FFmpeg(); err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = defaultOutputPath(info.Path, ".mp4")
	}
	if err := checkOutput(output, opts.Overwrite); err != nil {
		return nil, err
	}

	tmp, cleanup, err := tempOutput(output)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := buildVideoOptimizeArgs(info.Path, tmp, opts.Params)
	onProgress := progressCallback(opts.OnProgress, info.Duration)
	if _, err := tools.RunWithProgress(ctx, onProgress, tools.FFmpegCommand, args...); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, output); err != nil {
		return nil, fmt.Errorf("failed to move output into place: %w", err)
	}

	result := newResult(OpOptimize, info.Path, output, info.SizeBytes, fileSize(output))
	result.Message = fmt.Sprintf("Optimized video written to %s", output)
	return result, nil
}

// buildVideoOptimizeArgs constructs the ffmpeg re-encode command line. The
// scale filter uses -2 for height to keep it divisible by two as libx264
// requires.
func buildVideoOptimizeArgs(input, output string, p params.Set) []string {
	args := []string{"-y", "-i", input}

	var filters []string
	if p.FPS > 0 {
		filters = append(filters, fmt.Sprintf("fps=%g", p.FPS))
	}
	if p.Width > 0 {
		filters = append(filters, fmt.Sprintf("scale=%d:-2", p.Width))
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}

	args = append(args,
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-movflags", FastStartFlag,
		"-progress", tools.ProgressPipeTarget,
		"-nostats",
	)
	return append(args, output)
}

// progressCallback adapts an absolute-seconds callback to done/total form.
func progressCallback(onProgress func(done, total float64), total float64) func(float64) {
	if onProgress == nil || total <= 0 {
		return nil
	}
	return func(seconds float64) {
		if seconds > total {
			seconds = total
		}
		onProgress(seconds, total)
	}
}

// tempOutput creates a temp file next to the final output path so the final
// rename never crosses filesystems. The cleanup removes the temp file if it
// is still present.
func tempOutput(output string) (string, func(), error) {
	f, err := os.CreateTemp(filepath.Dir(output), ".assetguy-*"+filepath.Ext(output))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()
	f.Close()

	cleanup := func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			logrus.Debugf("Could not remove temp file %s: %v", name, err)
		}
	}
	return name, cleanup, nil
}
