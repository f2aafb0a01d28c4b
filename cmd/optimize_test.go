package cmd

import (
	"path/filepath"
	"testing"

	"github.com/assetguy/assetguy/internal/asset"
	"github.com/assetguy/assetguy/internal/config"
	"github.com/assetguy/assetguy/internal/params"
)

func TestOptimizeKeys(t *testing.T) {
	tests := []struct {
		assetType asset.Type
		expected  []params.Key
	}{
		{asset.TypeGIF, []params.Key{params.KeyWidth, params.KeyFPS, params.KeyColors}},
		{asset.TypeImage, []params.Key{params.KeyWidth, params.KeyQuality}},
		{asset.TypeVideo, []params.Key{params.KeyWidth, params.KeyFPS}},
	}

	for _, test := range tests {
		keys := optimizeKeys(test.assetType)
		if len(keys) != len(test.expected) {
			t.Fatalf("optimizeKeys(%s) = %v, expected %v", test.assetType, keys, test.expected)
		}
		for i, key := range test.expected {
			if keys[i] != key {
				t.Errorf("optimizeKeys(%s)[%d] = %s, expected %s", test.assetType, i, keys[i], key)
			}
		}
	}
}

func TestOptimizeDefaults(t *testing.T) {
	settings, err := config.LoadFrom(filepath.Join(t.TempDir(), config.ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}

	gif := optimizeDefaults(asset.TypeGIF, settings)
	if gif.FPS == nil || *gif.FPS != config.DefaultGifFPS {
		t.Errorf("GIF default FPS = %v, expected %g", gif.FPS, config.DefaultGifFPS)
	}
	if gif.Colors == nil || *gif.Colors != config.DefaultGifColors {
		t.Errorf("GIF default colors = %v, expected %d", gif.Colors, config.DefaultGifColors)
	}

	img := optimizeDefaults(asset.TypeImage, settings)
	if img.Quality == nil || *img.Quality != config.DefaultImageQuality {
		t.Errorf("Image default quality = %v, expected %d", img.Quality, config.DefaultImageQuality)
	}
	if img.FPS != nil {
		t.Error("Images should not carry an FPS default")
	}

	video := optimizeDefaults(asset.TypeVideo, settings)
	if video.Width != nil || video.FPS != nil {
		t.Errorf("Video defaults should be empty, got %+v", video)
	}
}

func TestOptimizeOutput(t *testing.T) {
	dir := t.TempDir()
	settings, err := config.LoadFrom(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}

	// No configuration: the operation derives its own default path.
	if out := optimizeOutput("/tmp/clip.mp4", asset.TypeVideo, settings); out != "" {
		t.Errorf("Expected empty output without configuration, got %q", out)
	}

	if err := settings.Set(config.KeyVideoOutputPath, dir); err != nil {
		t.Fatal(err)
	}
	expected := filepath.Join(dir, "clip-optimized.mp4")
	if out := optimizeOutput("/tmp/clip.mp4", asset.TypeVideo, settings); out != expected {
		t.Errorf("optimizeOutput = %q, expected %q", out, expected)
	}

	if err := settings.Set(config.KeyImageDefaultFormat, "jpeg"); err != nil {
		t.Fatal(err)
	}
	expected = filepath.Join("/tmp", "photo-optimized.jpeg")
	if out := optimizeOutput("/tmp/photo.png", asset.TypeImage, settings); out != expected {
		t.Errorf("optimizeOutput = %q, expected %q", out, expected)
	}

	// An explicit flag always wins.
	optimizeFlags.output = "/explicit/out.mp4"
	defer func() { optimizeFlags.output = "" }()
	if out := optimizeOutput("/tmp/clip.mp4", asset.TypeVideo, settings); out != "/explicit/out.mp4" {
		t.Errorf("Explicit output should win, got %q", out)
	}
}
