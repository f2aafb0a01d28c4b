package operation

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewResult(t *testing.T) {
	result := newResult(OpOptimize, "in.gif", "out.gif", 1000, 600)

	if !result.Success {
		t.Error("Result should report success")
	}
	if result.Reduction != 400 {
		t.Errorf("Reduction = %d, expected 400", result.Reduction)
	}
	if result.ReductionPercent != 40 {
		t.Errorf("ReductionPercent = %g, expected 40", result.ReductionPercent)
	}
	if !strings.HasPrefix(result.ID, OpOptimize+"-") {
		t.Errorf("ID = %q, expected %s- prefix", result.ID, OpOptimize)
	}
}

func TestNewResultGrowth(t *testing.T) {
	// Output larger than input: reduction goes negative but the formatted
	// size stays positive.
	result := newResult(OpConvert, "in.mp4", "out.gif", 500, 800)

	if result.Reduction != -300 {
		t.Errorf("Reduction = %d, expected -300", result.Reduction)
	}
	if strings.HasPrefix(result.ReductionFormatted, "-") {
		t.Errorf("ReductionFormatted should be an absolute size, got %q", result.ReductionFormatted)
	}
	if result.ReductionPercent != -60 {
		t.Errorf("ReductionPercent = %g, expected -60", result.ReductionPercent)
	}
}

func TestResultJSONKeys(t *testing.T) {
	result := newResult(OpOptimize, "in.gif", "out.gif", 1000, 600)
	result.Message = "done"

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}

	decoded := map[string]any{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		"id", "operation", "success", "input_path", "output_path",
		"input_size", "input_size_formatted",
		"output_size", "output_size_formatted",
		"reduction", "reduction_formatted", "reduction_percent",
		"message",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing JSON key %q", key)
		}
	}
	if _, ok := decoded["output_paths"]; ok {
		t.Error("output_paths should be omitted for single-output operations")
	}
}

func TestGenerateIDUnique(t *testing.T) {
	a := generateID(OpSplit)
	b := generateID(OpSplit)
	if a == b {
		t.Errorf("Generated IDs should be unique, got %q twice", a)
	}
}
