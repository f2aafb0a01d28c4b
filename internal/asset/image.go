package asset

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	// Register decoders for every supported static image format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// probeImage extracts static image metadata by decoding the image header
// in-process.
func probeImage(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, formatName, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("error reading image %s: %w", path, err)
	}

	return &Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: strings.ToUpper(formatName),
		Mode:   colorMode(cfg.ColorModel),
	}, nil
}

// colorMode names a color model the way imaging tools conventionally do.
func colorMode(model color.Model) string {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model:
		return "RGBA"
	case color.YCbCrModel:
		return "RGB"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, ok := model.(color.Palette); ok {
		return "P"
	}
	return "RGB"
}
