package params

import (
	"errors"
	"testing"

	"github.com/assetguy/assetguy/internal/config"
)

// fakePrompter answers every question with a fixed value.
type fakePrompter struct {
	intAnswer   int
	floatAnswer float64
	asked       []string
}

func (f *fakePrompter) AskInt(name string, def int) (int, bool) {
	f.asked = append(f.asked, name)
	return f.intAnswer, true
}

func (f *fakePrompter) AskFloat(name string, def float64) (float64, bool) {
	f.asked = append(f.asked, name)
	return f.floatAnswer, true
}

func TestResolveFlagWinsOverPreset(t *testing.T) {
	preset, err := config.GetPreset(config.PresetDocs)
	if err != nil {
		t.Fatal(err)
	}

	r := Resolver{
		Flags:  Values{Width: IntValue(640)},
		Preset: &preset,
	}
	set, err := r.Resolve(KeyWidth, KeyFPS, KeyColors)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if set.Width != 640 {
		t.Errorf("Width = %d, expected flag value 640", set.Width)
	}
	if set.FPS != 10 {
		t.Errorf("FPS = %g, expected preset value 10", set.FPS)
	}
	if set.Colors != 128 {
		t.Errorf("Colors = %d, expected preset value 128", set.Colors)
	}
}

func TestResolvePresetWinsOverPrompt(t *testing.T) {
	preset, err := config.GetPreset(config.PresetWeb)
	if err != nil {
		t.Fatal(err)
	}

	prompter := &fakePrompter{intAnswer: 999, floatAnswer: 999}
	r := Resolver{
		Preset:   &preset,
		Prompter: prompter,
	}
	set, err := r.Resolve(KeyWidth, KeyFPS, KeyColors)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if set.Width != 1200 || set.FPS != 12 || set.Colors != 256 {
		t.Errorf("Preset values should win over prompts, got %+v", set)
	}
	if len(prompter.asked) != 0 {
		t.Errorf("Prompter should not be consulted when a preset provides values, asked: %v", prompter.asked)
	}
}

func TestResolvePromptWinsOverDefault(t *testing.T) {
	prompter := &fakePrompter{intAnswer: 64, floatAnswer: 8}
	r := Resolver{
		Prompter: prompter,
		Defaults: Values{Colors: IntValue(256), FPS: FloatValue(10)},
	}
	set, err := r.Resolve(KeyFPS, KeyColors)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if set.Colors != 64 {
		t.Errorf("Colors = %d, expected prompt answer 64", set.Colors)
	}
	if set.FPS != 8 {
		t.Errorf("FPS = %g, expected prompt answer 8", set.FPS)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	r := Resolver{
		Prompter: Nop{},
		Defaults: Values{Width: IntValue(800), Quality: IntValue(95)},
	}
	set, err := r.Resolve(KeyWidth, KeyQuality)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if set.Width != 800 {
		t.Errorf("Width = %d, expected default 800", set.Width)
	}
	if set.Quality != 95 {
		t.Errorf("Quality = %d, expected default 95", set.Quality)
	}
}

func TestResolveUnsetParametersStayZero(t *testing.T) {
	r := Resolver{}
	set, err := r.Resolve(KeyWidth, KeyFPS, KeyColors, KeyQuality)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if set != (Set{}) {
		t.Errorf("Expected all-zero set without sources, got %+v", set)
	}
}

func TestResolveUnknownKey(t *testing.T) {
	r := Resolver{}
	_, err := r.Resolve(Key("bitrate"))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for unknown key, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr bool
	}{
		{"zero set is valid", Set{}, false},
		{"full valid set", Set{Width: 800, FPS: 10, Colors: 128, Quality: 95}, false},
		{"colors below minimum", Set{Colors: 1}, true},
		{"colors above maximum", Set{Colors: 300}, true},
		{"quality below minimum", Set{Quality: -9}, true},
		{"quality above maximum", Set{Quality: 101}, true},
	}

	for _, test := range tests {
		err := test.set.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
		if test.wantErr && !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error should wrap ErrInvalidParameter, got %v", test.name, err)
		}
	}
}
