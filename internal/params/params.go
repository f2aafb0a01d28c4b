// Package params resolves the effective parameter set for one command
// invocation by merging four sources in fixed priority order: CLI flags,
// preset values, interactive prompt answers, and configuration defaults.
package params

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/assetguy/assetguy/internal/config"
)

// ErrInvalidParameter marks a parameter combination rejected before any
// external command is executed.
var ErrInvalidParameter = errors.New("invalid parameter")

// Key identifies a single resolvable parameter.
type Key string

const (
	KeyWidth   Key = "width"
	KeyFPS     Key = "fps"
	KeyColors  Key = "colors"
	KeyQuality Key = "quality"
)

// Values holds optional parameter values from a single source. A nil field
// means the source does not provide that parameter.
type Values struct {
	Width   *int
	FPS     *float64
	Colors  *int
	Quality *int
}

// FromPreset exposes a preset's values as a parameter source. Presets carry
// no quality setting.
func FromPreset(p config.Preset) Values {
	width, fps, colors := p.Width, p.FPS, p.Colors
	return Values{Width: &width, FPS: &fps, Colors: &colors}
}

// Set is the merged, effective parameter set for one invocation. A zero
// value means the parameter is unset and is omitted from the external
// command. Once resolved, a Set is never modified.
type Set struct {
	Width   int
	FPS     float64
	Colors  int
	Quality int
}

// Resolver merges parameter sources. Flags win over Preset, Preset over
// prompt answers, prompt answers over Defaults.
type Resolver struct {
	Flags    Values
	Preset   *config.Preset
	Prompter Prompter
	Defaults Values
}

// Resolve produces the effective set for the requested keys and validates it.
func (r *Resolver) Resolve(keys ...Key) (Set, error) {
	prompter := r.Prompter
	if prompter == nil {
		prompter = Nop{}
	}

	var preset Values
	if r.Preset != nil {
		preset = FromPreset(*r.Preset)
	}

	var set Set
	for _, key := range keys {
		switch key {
		case KeyWidth:
			set.Width = resolveInt(key, r.Flags.Width, preset.Width, r.Defaults.Width, prompter)
		case KeyFPS:
			set.FPS = resolveFloat(key, r.Flags.FPS, preset.FPS, r.Defaults.FPS, prompter)
		case KeyColors:
			set.Colors = resolveInt(key, r.Flags.Colors, preset.Colors, r.Defaults.Colors, prompter)
		case KeyQuality:
			set.Quality = resolveInt(key, r.Flags.Quality, preset.Quality, r.Defaults.Quality, prompter)
		default:
			return Set{}, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, key)
		}
	}

	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	logrus.Debugf("Resolved parameters: width=%d fps=%g colors=%d quality=%d",
		set.Width, set.FPS, set.Colors, set.Quality)
	return set, nil
}

func resolveInt(key Key, flag, preset, fallback *int, prompter Prompter) int {
	if flag != nil {
		return *flag
	}
	if preset != nil {
		return *preset
	}
	def := 0
	if fallback != nil {
		def = *fallback
	}
	if v, ok := prompter.AskInt(string(key), def); ok {
		return v
	}
	return def
}

func resolveFloat(key Key, flag, preset, fallback *float64, prompter Prompter) float64 {
	if flag != nil {
		return *flag
	}
	if preset != nil {
		return *preset
	}
	def := 0.0
	if fallback != nil {
		def = *fallback
	}
	if v, ok := prompter.AskFloat(string(key), def); ok {
		return v
	}
	return def
}

// Validate checks bounds for every parameter that is set.
func (s Set) Validate() error {
	if s.Width < 0 {
		return fmt.Errorf("%w: width must be > 0, got %d", ErrInvalidParameter, s.Width)
	}
	if s.FPS < 0 {
		return fmt.Errorf("%w: fps must be > 0, got %g", ErrInvalidParameter, s.FPS)
	}
	if s.Colors != 0 && (s.Colors < config.MinColors || s.Colors > config.MaxColors) {
		return fmt.Errorf("%w: colors must be between %d and %d, got %d",
			ErrInvalidParameter, config.MinColors, config.MaxColors, s.Colors)
	}
	if s.Quality != 0 && (s.Quality < config.MinQuality || s.Quality > config.MaxQuality) {
		return fmt.Errorf("%w: quality must be between %d and %d, got %d",
			ErrInvalidParameter, config.MinQuality, config.MaxQuality, s.Quality)
	}
	return nil
}

// IntValue and FloatValue build optional values for a source.
func IntValue(v int) *int { return &v }

// FloatValue builds an optional float value for a source.
func FloatValue(v float64) *float64 { return &v }
