package operation

import (
	"context"
	"fmt"
	"math"

	"github.com/assetguy/assetguy/internal/asset"
)

// SamenessThreshold is the relative difference, in percent, below which two
// values are reported as the same.
const SamenessThreshold = 0.1

// NumericDiff describes how one numeric property differs between two assets.
// Percent is nil when the first value is zero and no percentage is defined.
type NumericDiff struct {
	Diff        float64  `json:"diff"`
	Percent     *float64 `json:"percent"`
	Description string   `json:"description"`
	Same        bool     `json:"same"`
}

// DimensionsDiff describes the difference in pixel dimensions.
type DimensionsDiff struct {
	Same       bool `json:"same"`
	WidthDiff  int  `json:"width_diff"`
	HeightDiff int  `json:"height_diff"`
}

// Differences collects per-property diffs. Type-specific properties are
// omitted when they do not apply to the compared asset type.
type Differences struct {
	SizeBytes   NumericDiff    `json:"size_bytes"`
	Dimensions  DimensionsDiff `json:"dimensions"`
	Frames      *NumericDiff   `json:"frames,omitempty"`
	Duration    *NumericDiff   `json:"duration,omitempty"`
	FPS         *NumericDiff   `json:"fps,omitempty"`
	Colors      *NumericDiff   `json:"colors,omitempty"`
	BitrateKbps *NumericDiff   `json:"bitrate_kbps,omitempty"`
	FrameCount  *NumericDiff   `json:"frame_count,omitempty"`
}

// Comparison is the full result of comparing two assets of the same type.
type Comparison struct {
	Asset1      *asset.Info `json:"asset1"`
	Asset2      *asset.Info `json:"asset2"`
	Differences Differences `json:"differences"`
}

// Compare inspects two assets and reports their per-property differences.
// Both assets must be of the same type.
func Compare(ctx context.Context, path1, path2 string) (*Comparison, error) {
	info1, err := asset.Inspect(ctx, path1)
	if err != nil {
		return nil, err
	}
	info2, err := asset.Inspect(ctx, path2)
	if err != nil {
		return nil, err
	}
	if info1.Type != info2.Type {
		return nil, fmt.Errorf("cannot compare %s asset with %s asset", info1.Type, info2.Type)
	}

	diffs := Differences{
		SizeBytes: numericDiff(float64(info1.SizeBytes), float64(info2.SizeBytes)),
		Dimensions: DimensionsDiff{
			Same:       info1.Width == info2.Width && info1.Height == info2.Height,
			WidthDiff:  info2.Width - info1.Width,
			HeightDiff: info2.Height - info1.Height,
		},
	}

	switch info1.Type {
	case asset.TypeGIF:
		diffs.Frames = diffPtr(float64(info1.Frames), float64(info2.Frames))
		diffs.Duration = diffPtr(info1.Duration, info2.Duration)
		diffs.FPS = diffPtr(info1.FPS, info2.FPS)
		diffs.Colors = diffPtr(float64(info1.Colors), float64(info2.Colors))
	case asset.TypeVideo:
		diffs.Duration = diffPtr(info1.Duration, info2.Duration)
		diffs.FPS = diffPtr(info1.FPS, info2.FPS)
		diffs.BitrateKbps = diffPtr(info1.BitrateKbps, info2.BitrateKbps)
		diffs.FrameCount = diffPtr(float64(info1.FrameCount), float64(info2.FrameCount))
	}

	return &Comparison{Asset1: info1, Asset2: info2, Differences: diffs}, nil
}

func diffPtr(v1, v2 float64) *NumericDiff {
	d := numericDiff(v1, v2)
	return &d
}

// numericDiff computes the difference, percentage, and descriptive text for
// a property pair.
func numericDiff(v1, v2 float64) NumericDiff {
	diff := v2 - v1

	if v1 == 0 {
		description := "N/A"
		if v2 != 0 {
			description = "+∞"
		}
		return NumericDiff{Diff: diff, Description: description, Same: v2 == 0}
	}

	percent := diff / v1 * 100
	nd := NumericDiff{Diff: diff, Percent: &percent}
	switch {
	case math.Abs(percent) < SamenessThreshold:
		nd.Description = "Same"
		nd.Same = true
	case percent > 0:
		nd.Description = fmt.Sprintf("+%.1f%% (larger)", percent)
	default:
		nd.Description = fmt.Sprintf("%.1f%% (smaller)", math.Abs(percent))
	}
	return nd
}
