package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/assetguy/assetguy/internal/format"
)

// Type classifies an asset file.
type Type string

const (
	TypeGIF   Type = "gif"
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

// ErrUnsupportedType is returned for files whose type cannot be determined.
var ErrUnsupportedType = errors.New("unsupported asset type")

// SniffLength is how many leading bytes are read for signature sniffing.
const SniffLength = 512

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
	".bmp": true, ".tiff": true, ".tif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".webm": true, ".flv": true, ".wmv": true,
}

// Info is a read-only metadata snapshot of an asset file. Only the fields
// relevant to the asset's type are populated.
type Info struct {
	Type          Type   `json:"type"`
	Path          string `json:"path"`
	SizeBytes     int64  `json:"size_bytes"`
	SizeFormatted string `json:"size_formatted"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`

	// GIF fields
	Frames   int     `json:"frames,omitempty"`
	FPS      float64 `json:"fps,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Colors   int     `json:"colors,omitempty"`

	// Static image fields
	Format string `json:"format,omitempty"`
	Mode   string `json:"mode,omitempty"`

	// Video fields
	Codec       string  `json:"codec,omitempty"`
	BitrateKbps float64 `json:"bitrate_kbps,omitempty"`
	FrameCount  int     `json:"frame_count,omitempty"`

	// Per-frame GIF delays in centiseconds, kept for frame-range math.
	Delays []int `json:"-"`
}

// DetectType determines an asset's type by extension, falling back to
// content signature sniffing for unknown or missing extensions.
func DetectType(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".gif":
		return TypeGIF, nil
	case imageExtensions[ext]:
		return TypeImage, nil
	case videoExtensions[ext]:
		return TypeVideo, nil
	}

	if t, ok := sniffFile(path); ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, path)
}

func sniffFile(path string) (Type, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	head := make([]byte, SniffLength)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", false
	}
	return SniffType(head[:n])
}

// SniffType classifies the leading bytes of a file by magic numbers.
func SniffType(head []byte) (Type, bool) {
	switch {
	case bytes.HasPrefix(head, []byte("GIF87a")), bytes.HasPrefix(head, []byte("GIF89a")):
		return TypeGIF, true
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")),
		bytes.HasPrefix(head, []byte{0xFF, 0xD8, 0xFF}),
		bytes.HasPrefix(head, []byte("BM")),
		bytes.HasPrefix(head, []byte("II*\x00")),
		bytes.HasPrefix(head, []byte("MM\x00*")):
		return TypeImage, true
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		return TypeImage, true
	case len(head) >= 12 && bytes.Equal(head[4:8], []byte("ftyp")):
		// ISO base media container (mp4/mov)
		return TypeVideo, true
	case bytes.HasPrefix(head, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		// EBML header (mkv/webm)
		return TypeVideo, true
	}
	return "", false
}

// Inspect produces the metadata snapshot for an asset file.
func Inspect(ctx context.Context, path string) (*Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %s", path)
	}

	assetType, err := DetectType(path)
	if err != nil {
		return nil, err
	}

	var info *Info
	switch assetType {
	case TypeGIF:
		info, err = probeGIF(ctx, path)
	case TypeImage:
		info, err = probeImage(path)
	case TypeVideo:
		info, err = probeVideo(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	info.Type = assetType
	info.Path = path
	info.SizeBytes = stat.Size()
	info.SizeFormatted = format.ByteSize(stat.Size())
	return info, nil
}
