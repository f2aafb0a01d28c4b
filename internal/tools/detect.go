package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// External commands
const (
	MagickCommand  = "magick"
	ConvertCommand = "convert"
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

// VersionProbeTimeout bounds the version check for each tool.
const VersionProbeTimeout = 5 * time.Second

// ErrToolNotFound is returned when a required external tool is missing.
var ErrToolNotFound = errors.New("external tool not found")

// Install hints shown when a required tool is missing.
const (
	InstallHintImageMagick = "install it with `brew install imagemagick` (macOS) or `apt-get install imagemagick` (Debian/Ubuntu)"
	InstallHintFFmpeg      = "install it with `brew install ffmpeg` (macOS) or `apt-get install ffmpeg` (Debian/Ubuntu)"
)

// Tool describes a discovered external tool.
type Tool struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version"`
}

var (
	magickOnce   sync.Once
	magickTool   Tool
	magickFound  bool
	ffmpegOnce   sync.Once
	ffmpegTool   Tool
	ffmpegFound  bool
	ffprobeOnce  sync.Once
	ffprobeTool  Tool
	ffprobeFound bool
)

// CheckCommand probes a command with a version flag and returns its first
// output line as the version.
func CheckCommand(name, versionFlag string) (Tool, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Tool{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), VersionProbeTimeout)
	defer cancel()

	result, err := Run(ctx, name, versionFlag)
	if err != nil {
		return Tool{}, false
	}
	version := "unknown"
	if line, _, _ := strings.Cut(strings.TrimSpace(result.Stdout), "\n"); line != "" {
		version = line
	}
	return Tool{Name: name, Path: path, Version: version}, true
}

// ImageMagick locates the ImageMagick CLI, preferring `magick` (v7) over
// `convert` (v6). A bare `convert` is only accepted if its version banner
// actually names ImageMagick.
func ImageMagick() (Tool, error) {
	magickOnce.Do(func() {
		if tool, ok := CheckCommand(MagickCommand, "--version"); ok {
			magickTool, magickFound = tool, true
			return
		}
		if tool, ok := CheckCommand(ConvertCommand, "-version"); ok && strings.Contains(tool.Version, "ImageMagick") {
			magickTool, magickFound = tool, true
		}
	})
	if !magickFound {
		return Tool{}, fmt.Errorf("%w: ImageMagick, %s", ErrToolNotFound, InstallHintImageMagick)
	}
	return magickTool, nil
}

// Magick returns the ImageMagick command name to invoke.
func Magick() (string, error) {
	tool, err := ImageMagick()
	if err != nil {
		return "", err
	}
	return tool.Name, nil
}

// FFmpeg locates the ffmpeg binary.
func FFmpeg() (Tool, error) {
	ffmpegOnce.Do(func() {
		ffmpegTool, ffmpegFound = CheckCommand(FFmpegCommand, "-version")
	})
	if !ffmpegFound {
		return Tool{}, fmt.Errorf("%w: ffmpeg, %s", ErrToolNotFound, InstallHintFFmpeg)
	}
	return ffmpegTool, nil
}

// FFprobe locates the ffprobe binary.
func FFprobe() (Tool, error) {
	ffprobeOnce.Do(func() {
		ffprobeTool, ffprobeFound = CheckCommand(FFprobeCommand, "-version")
	})
	if !ffprobeFound {
		return Tool{}, fmt.Errorf("%w: ffprobe, %s", ErrToolNotFound, InstallHintFFmpeg)
	}
	return ffprobeTool, nil
}

// Status reports availability of every external tool this program can use.
type Status struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
}

// Detect probes all supported external tools.
func Detect() []Status {
	statuses := make([]Status, 0, 3)
	for _, probe := range []struct {
		name string
		fn   func() (Tool, error)
	}{
		{"imagemagick", ImageMagick},
		{"ffmpeg", FFmpeg},
		{"ffprobe", FFprobe},
	} {
		tool, err := probe.fn()
		status := Status{Name: probe.name, Available: err == nil}
		if err == nil {
			status.Path = tool.Path
			status.Version = tool.Version
		}
		statuses = append(statuses, status)
	}
	return statuses
}
