package asset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/assetguy/assetguy/internal/tools"
)

// Identify format string: width, height, unique colors, frame delay per frame.
const IdentifyFormat = "%w %h %k %T\n"

// Centiseconds per second; GIF frame delays are stored in centiseconds.
const CentisPerSecond = 100

// DefaultFrameDelay is assumed when a GIF reports no usable delay.
const DefaultFrameDelay = 10

// probeGIF extracts GIF metadata via ImageMagick identify.
func probeGIF(ctx context.Context, path string) (*Info, error) {
	magick, err := tools.Magick()
	if err != nil {
		return nil, err
	}

	result, err := tools.Run(ctx, magick, "identify", "-format", IdentifyFormat, path)
	if err != nil {
		return nil, fmt.Errorf("could not read GIF information from %s: %w", path, err)
	}
	return parseIdentifyOutput(result.Stdout)
}

// parseIdentifyOutput parses one identify line per frame. Colors are the
// maximum across frames; the delay list is padded or truncated to the frame
// count so downstream frame-range math stays consistent.
func parseIdentifyOutput(out string) (*Info, error) {
	var (
		width, height int
		colors        int
		frames        int
		delays        []int
	)

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		frames++
		if frames == 1 {
			w, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("unexpected identify output: %q", line)
			}
			h, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("unexpected identify output: %q", line)
			}
			width, height = w, h
		}
		if len(fields) >= 3 {
			if k, err := strconv.Atoi(fields[2]); err == nil && k > colors {
				colors = k
			}
		}
		if len(fields) >= 4 {
			if d, err := strconv.Atoi(fields[3]); err == nil {
				delays = append(delays, d)
			}
		}
	}

	if frames == 0 {
		return nil, fmt.Errorf("unexpected identify output: no frames")
	}

	delays = normalizeDelays(delays, frames)
	total := 0
	for _, d := range delays {
		total += d
	}
	avgDelay := float64(total) / float64(len(delays))

	fps := 0.0
	if avgDelay > 0 {
		fps = math.Round(CentisPerSecond/avgDelay*100) / 100
	}

	return &Info{
		Width:    width,
		Height:   height,
		Colors:   colors,
		Frames:   frames,
		FPS:      fps,
		Duration: float64(total) / CentisPerSecond,
		Delays:   delays,
	}, nil
}

// normalizeDelays pads or truncates the delay list to the frame count,
// repeating the last known delay for missing frames.
func normalizeDelays(delays []int, frames int) []int {
	if len(delays) == frames {
		return delays
	}
	if len(delays) > frames {
		return delays[:frames]
	}
	last := DefaultFrameDelay
	if len(delays) > 0 {
		last = delays[len(delays)-1]
	}
	for len(delays) < frames {
		delays = append(delays, last)
	}
	return delays
}

// TimeRangeToFrames maps a time range in seconds onto a frame index range
// using the per-frame delay table. An end of zero or beyond the GIF means
// the last frame. Returns false for empty or inverted ranges.
func TimeRangeToFrames(delays []int, start, end float64) (int, int, bool) {
	if len(delays) == 0 {
		return 0, 0, false
	}

	total := 0.0
	cumulative := make([]float64, len(delays))
	for i, d := range delays {
		total += float64(d) / CentisPerSecond
		cumulative[i] = total
	}

	if start < 0 {
		start = 0
	}
	if end <= 0 || end > total {
		end = total
	}
	if start >= end {
		return 0, 0, false
	}

	startFrame := 0
	for i, t := range cumulative {
		if t > start {
			startFrame = i
			break
		}
	}

	endFrame := len(delays) - 1
	prev := 0.0
	for i, t := range cumulative {
		if prev > end {
			endFrame = max(0, i-1)
			break
		}
		prev = t
	}

	if startFrame > endFrame {
		return 0, 0, false
	}
	return startFrame, endFrame, true
}

// ScaleDelays rescales frame delays to hit a target FPS on average while
// preserving the relative timing between frames. Every delay stays >= 1.
func ScaleDelays(delays []int, targetFPS float64) []int {
	if len(delays) == 0 || targetFPS <= 0 {
		return delays
	}

	targetDelay := CentisPerSecond / targetFPS
	total := 0
	for _, d := range delays {
		total += d
	}
	avg := float64(total) / float64(len(delays))
	if avg == 0 {
		return delays
	}

	factor := avg / targetDelay
	scaled := make([]int, len(delays))
	for i, d := range delays {
		scaled[i] = max(1, int(math.Round(float64(d)/factor)))
	}
	return scaled
}
