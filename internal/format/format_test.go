package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestByteSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * MiB, "5.00 MB"},
		{3 * GiB, "3.00 GB"},
		{2048 * GiB, "2.00 TB"},
	}

	for _, test := range tests {
		result := ByteSize(test.input)
		if result != test.expected {
			t.Errorf("ByteSize(%d) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestSizeMB(t *testing.T) {
	if result := SizeMB(3 * MiB); result != 3.0 {
		t.Errorf("SizeMB(3 MiB) = %f, expected 3.0", result)
	}
	if result := SizeMB(512 * KiB); result != 0.5 {
		t.Errorf("SizeMB(512 KiB) = %f, expected 0.5", result)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := JSON(&buf, map[string]int{"frames": 42})
	if err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"frames": 42`) {
		t.Errorf("Unexpected JSON output: %s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("JSON output should end with a newline")
	}
}
