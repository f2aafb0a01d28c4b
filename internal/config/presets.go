package config

import "fmt"

// Preset names
const (
	PresetDocs      = "docs"
	PresetWeb       = "web"
	PresetMarketing = "marketing"
)

// Preset is a named bundle of default optimization parameters for a target
// use case. Presets are constant; callers receive copies.
type Preset struct {
	Name        string  `json:"name"`
	Width       int     `json:"width"`
	FPS         float64 `json:"fps"`
	Colors      int     `json:"colors"`
	Description string  `json:"description"`
}

var presets = []Preset{
	{
		Name:        PresetDocs,
		Width:       800,
		FPS:         10,
		Colors:      128,
		Description: "Optimized for documentation (smaller file size, lower FPS)",
	},
	{
		Name:        PresetWeb,
		Width:       1200,
		FPS:         12,
		Colors:      256,
		Description: "Optimized for web use (balanced quality and size)",
	},
	{
		Name:        PresetMarketing,
		Width:       1920,
		FPS:         15,
		Colors:      256,
		Description: "High quality for marketing materials (larger file size)",
	},
}

// GetPreset returns the preset with the given name.
func GetPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q, available presets: %s, %s, %s",
		name, PresetDocs, PresetWeb, PresetMarketing)
}

// ListPresets returns all presets in display order.
func ListPresets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the valid preset names in display order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}
