package cmd

import (
	"testing"
)

func TestProgressFuncSuppressed(t *testing.T) {
	// Test processes have no TTY on stderr, so no bar is rendered.
	update, finish := progressFunc("Working")
	if update != nil {
		t.Error("Expected no progress callback without a TTY")
	}
	if finish == nil {
		t.Fatal("The closer must always be usable")
	}
	finish()
}

func TestProgressFuncSuppressedForJSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	update, finish := progressFunc("Working")
	if update != nil {
		t.Error("Expected no progress callback in JSON mode")
	}
	finish()
}
