package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config file location
const (
	ConfigDirName  = ".assetguy"
	ConfigFileName = "config.yaml"

	DirPermissions  = 0o755
	FilePermissions = 0o644
)

// EnvPrefix is the prefix for environment variable overrides. A key such as
// gif_default_fps can be overridden with ASSETGUY_GIF_DEFAULT_FPS.
const EnvPrefix = "ASSETGUY_"

// Settings keys
const (
	KeyGifDefaultFPS         = "gif_default_fps"
	KeyGifDefaultColors      = "gif_default_colors"
	KeyGifDefaultWidth       = "gif_default_width"
	KeyImageDefaultQuality   = "image_default_quality"
	KeyImageDefaultFormat    = "image_default_format"
	KeyConvertDefaultQuality = "convert_default_quality"
	KeyVideoOutputPath       = "video_output_path"
	KeyDefaultPreset         = "default_preset"
)

// Default values. A zero width means keep the original width; empty strings
// mean no override.
const (
	DefaultGifFPS          = 10.0
	DefaultGifColors       = 256
	DefaultGifWidth        = 0
	DefaultImageQuality    = 95
	DefaultImageFormat     = ""
	DefaultConvertQuality  = 85
	DefaultVideoOutputPath = ""
	DefaultPresetName      = ""
)

// Color and quality bounds
const (
	MinColors  = 2
	MaxColors  = 256
	MinQuality = 1
	MaxQuality = 100
)

// keyOrder is the canonical display order for `config show`.
var keyOrder = []string{
	KeyGifDefaultFPS,
	KeyGifDefaultColors,
	KeyGifDefaultWidth,
	KeyImageDefaultQuality,
	KeyImageDefaultFormat,
	KeyConvertDefaultQuality,
	KeyVideoOutputPath,
	KeyDefaultPreset,
}

func defaults() map[string]any {
	return map[string]any{
		KeyGifDefaultFPS:         DefaultGifFPS,
		KeyGifDefaultColors:      DefaultGifColors,
		KeyGifDefaultWidth:       DefaultGifWidth,
		KeyImageDefaultQuality:   DefaultImageQuality,
		KeyImageDefaultFormat:    DefaultImageFormat,
		KeyConvertDefaultQuality: DefaultConvertQuality,
		KeyVideoOutputPath:       DefaultVideoOutputPath,
		KeyDefaultPreset:         DefaultPresetName,
	}
}

// Settings manages the user configuration file. Values from the file are
// merged over defaults on load; environment overrides are applied last.
type Settings struct {
	path   string
	values map[string]any
}

// Load reads the configuration file, creating it with defaults if missing.
func Load() (*Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return LoadFrom(filepath.Join(home, ConfigDirName, ConfigFileName))
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{path: path, values: defaults()}

	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := s.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		fromFile := map[string]any{}
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			logrus.Warnf("Could not parse config file %s: %v, using defaults", path, err)
		}
		for key, value := range fromFile {
			s.values[key] = value
		}
	}

	s.applyEnvOverrides()
	return s, nil
}

// applyEnvOverrides applies ASSETGUY_* environment variables over file values.
// Invalid override values are reported and ignored.
func (s *Settings) applyEnvOverrides() {
	for _, key := range keyOrder {
		raw, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key))
		if !ok {
			continue
		}
		value, err := validateValue(key, raw)
		if err != nil {
			logrus.Warnf("Ignoring environment override for %s: %v", key, err)
			continue
		}
		s.values[key] = value
	}
}

// Path returns the location of the config file.
func (s *Settings) Path() string {
	return s.path
}

// Keys returns all known keys in canonical order.
func (s *Settings) Keys() []string {
	out := make([]string, len(keyOrder))
	copy(out, keyOrder)
	return out
}

// Get returns the value for a key and whether the key is known.
func (s *Settings) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Float returns a key's value as float64, falling back to the default when
// the stored value has an unexpected type.
func (s *Settings) Float(key string) float64 {
	switch v := s.values[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	if d, ok := defaults()[key].(float64); ok {
		return d
	}
	return 0
}

// Int returns a key's value as int, falling back to the default when the
// stored value has an unexpected type.
func (s *Settings) Int(key string) int {
	switch v := s.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	if d, ok := defaults()[key].(int); ok {
		return d
	}
	return 0
}

// String returns a key's value as a string.
func (s *Settings) String(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return ""
}

// Set validates and stores a value, then writes the file.
func (s *Settings) Set(key, raw string) error {
	value, err := validateValue(key, raw)
	if err != nil {
		return err
	}
	s.values[key] = value
	return s.save()
}

// Reset restores all keys to their defaults and writes the file.
func (s *Settings) Reset() error {
	s.values = defaults()
	return s.save()
}

func (s *Settings) save() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// validateValue parses and validates a raw string value for a key.
func validateValue(key, raw string) (any, error) {
	switch key {
	case KeyGifDefaultFPS:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", key)
		}
		if v < 0 {
			return nil, fmt.Errorf("%s must be >= 0", key)
		}
		return v, nil

	case KeyGifDefaultColors:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", key)
		}
		if v < MinColors || v > MaxColors {
			return nil, fmt.Errorf("%s must be between %d and %d", key, MinColors, MaxColors)
		}
		return v, nil

	case KeyGifDefaultWidth:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", key)
		}
		if v < 0 {
			return nil, fmt.Errorf("%s must be >= 0", key)
		}
		return v, nil

	case KeyImageDefaultQuality, KeyConvertDefaultQuality:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", key)
		}
		if v < MinQuality || v > MaxQuality {
			return nil, fmt.Errorf("%s must be between %d and %d", key, MinQuality, MaxQuality)
		}
		return v, nil

	case KeyImageDefaultFormat:
		switch raw {
		case "", "png", "jpg", "jpeg", "webp":
			return raw, nil
		}
		return nil, fmt.Errorf("%s must be one of: png, jpg, jpeg, webp, or empty", key)

	case KeyVideoOutputPath:
		return ExpandPath(raw), nil

	case KeyDefaultPreset:
		if raw == "" {
			return raw, nil
		}
		if _, err := GetPreset(raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	return nil, fmt.Errorf("unknown configuration key: %s", key)
}

// ExpandPath expands ~ and environment variables in a path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
