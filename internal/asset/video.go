package asset

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/assetguy/assetguy/internal/tools"
)

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

// probeVideo extracts video metadata via ffprobe.
func probeVideo(ctx context.Context, path string) (*Info, error) {
	if _, err := tools.FFprobe(); err != nil {
		return nil, err
	}

	result, err := tools.Run(ctx, tools.FFprobeCommand,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("could not read video information from %s: %w", path, err)
	}
	return parseFFprobeOutput([]byte(result.Stdout))
}

func parseFFprobeOutput(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var video *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			video = &probe.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	fps := parseFrameRate(video.RFrameRate)
	duration, _ := strconv.ParseFloat(probe.Format.Duration, 64)

	bitrate, _ := strconv.ParseInt(probe.Format.BitRate, 10, 64)
	bitrateKbps := 0.0
	if bitrate > 0 {
		bitrateKbps = float64(bitrate) / 1000
	}

	frameCount, _ := strconv.Atoi(video.NbFrames)
	if frameCount == 0 && fps > 0 && duration > 0 {
		frameCount = int(fps * duration)
	}

	codec := video.CodecName
	if codec == "" {
		codec = "unknown"
	}

	return &Info{
		Width:       video.Width,
		Height:      video.Height,
		FPS:         fps,
		Duration:    duration,
		Codec:       codec,
		BitrateKbps: bitrateKbps,
		FrameCount:  frameCount,
	}, nil
}

// parseFrameRate parses ffprobe's rational frame rate (e.g. "30000/1001").
func parseFrameRate(rate string) float64 {
	if rate == "" {
		return 0
	}
	num, den, found := strings.Cut(rate, "/")
	if !found {
		v, _ := strconv.ParseFloat(rate, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
