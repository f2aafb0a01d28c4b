package operation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assetguy/assetguy/internal/params"
)

func TestClampTimeRange(t *testing.T) {
	tests := []struct {
		name             string
		start, end       float64
		duration         float64
		expectedStart    float64
		expectedDuration float64
		wantErr          bool
	}{
		{"no trim", 0, 0, 30, 0, 0, false},
		{"start only", 10, 0, 30, 10, 20, false},
		{"full range", 5, 15, 30, 5, 10, false},
		{"end beyond duration clamps", 5, 100, 30, 5, 25, false},
		{"negative start clamps", -5, 10, 30, 0, 10, false},
		{"inverted range", 20, 10, 30, 0, 0, true},
		{"start at end", 30, 30, 30, 0, 0, true},
	}

	for _, test := range tests {
		start, clipDuration, err := clampTimeRange(test.start, test.end, test.duration)
		if test.wantErr {
			if !errors.Is(err, params.ErrInvalidParameter) {
				t.Errorf("%s: expected ErrInvalidParameter, got %v", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if start != test.expectedStart || clipDuration != test.expectedDuration {
			t.Errorf("%s: got (%g, %g), expected (%g, %g)",
				test.name, start, clipDuration, test.expectedStart, test.expectedDuration)
		}
	}
}

func TestBuildConvertArgsGIF(t *testing.T) {
	args := buildConvertArgs("/in.mp4", "/out.gif", TargetGIF,
		params.Set{Width: 800, FPS: 12}, 2, 5)

	expected := []string{
		"-y",
		"-ss", "2",
		"-i", "/in.mp4",
		"-t", "5",
		"-vf", "fps=12,scale=800:-1",
		"-progress", "pipe:2",
		"-nostats",
		"/out.gif",
	}
	assert.Equal(t, expected, args)
}

func TestBuildConvertArgsWebP(t *testing.T) {
	args := buildConvertArgs("/in.mp4", "/out.webp", TargetWebP, params.Set{Quality: 70}, 0, 0)

	assert.Contains(t, args, WebPCodec)
	assert.Contains(t, args, "-quality")
	assert.Contains(t, args, "70")
	assert.Contains(t, args, "-loop")
	assert.NotContains(t, args, "-ss")
	assert.NotContains(t, args, "-t")
}

func TestBuildConvertArgsWebPDefaultQuality(t *testing.T) {
	args := buildConvertArgs("/in.mp4", "/out.webp", TargetWebP, params.Set{}, 0, 0)
	assert.Contains(t, args, "85")
}

func TestConvertRejectsUnknownTarget(t *testing.T) {
	_, err := Convert(context.Background(), "/in.mp4", ConvertOptions{Target: "avif"})
	if !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for unknown target, got %v", err)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{2, "2"},
		{2.5, "2.5"},
		{0.04, "0.04"},
	}

	for _, test := range tests {
		if result := formatSeconds(test.input); result != test.expected {
			t.Errorf("formatSeconds(%g) = %s, expected %s", test.input, result, test.expected)
		}
	}
}
