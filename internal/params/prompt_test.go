package params

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalAskInt(t *testing.T) {
	tests := []struct {
		input      string
		expected   int
		expectedOK bool
	}{
		{"128\n", 128, true},
		{"\n", 0, false},
		{"  42  \n", 42, true},
		{"abc\n", 0, false},
	}

	for _, test := range tests {
		var out bytes.Buffer
		terminal := NewTerminal(strings.NewReader(test.input), &out)
		value, ok := terminal.AskInt("colors", 256)

		if ok != test.expectedOK {
			t.Errorf("AskInt(%q) ok = %v, expected %v", test.input, ok, test.expectedOK)
		}
		if ok && value != test.expected {
			t.Errorf("AskInt(%q) = %d, expected %d", test.input, value, test.expected)
		}
		if !strings.Contains(out.String(), "colors") {
			t.Errorf("Prompt should mention the parameter name, got: %q", out.String())
		}
	}
}

func TestTerminalAskFloat(t *testing.T) {
	var out bytes.Buffer
	terminal := NewTerminal(strings.NewReader("12.5\n"), &out)

	value, ok := terminal.AskFloat("fps", 10)
	if !ok {
		t.Fatal("AskFloat should accept a numeric answer")
	}
	if value != 12.5 {
		t.Errorf("AskFloat = %g, expected 12.5", value)
	}
}

func TestTerminalConfirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, test := range tests {
		var out bytes.Buffer
		terminal := NewTerminal(strings.NewReader(test.input), &out)
		if result := terminal.Confirm("Proceed?"); result != test.expected {
			t.Errorf("Confirm(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestNopPrompterNeverAnswers(t *testing.T) {
	if _, ok := (Nop{}).AskInt("width", 800); ok {
		t.Error("Nop.AskInt should never answer")
	}
	if _, ok := (Nop{}).AskFloat("fps", 10); ok {
		t.Error("Nop.AskFloat should never answer")
	}
}
