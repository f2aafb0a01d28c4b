package tools

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckCommandMissing(t *testing.T) {
	if _, ok := CheckCommand("definitely-not-a-real-command-xyz", "--version"); ok {
		t.Error("CheckCommand should fail for a missing command")
	}
}

func TestCheckCommandFakeTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a unix shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\necho 'faketool version 1.2.3'\n"
	path := filepath.Join(dir, "faketool")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	tool, ok := CheckCommand("faketool", "--version")
	if !ok {
		t.Fatal("CheckCommand should find the fake tool")
	}
	if tool.Version != "faketool version 1.2.3" {
		t.Errorf("Version = %q, expected first output line", tool.Version)
	}
	if tool.Path != path {
		t.Errorf("Path = %q, expected %q", tool.Path, path)
	}
}

func TestDetectReportsAllTools(t *testing.T) {
	statuses := Detect()
	if len(statuses) != 3 {
		t.Fatalf("Expected 3 tool statuses, got %d", len(statuses))
	}

	names := map[string]bool{}
	for _, s := range statuses {
		names[s.Name] = true
		if s.Available && s.Path == "" {
			t.Errorf("Available tool %s has no path", s.Name)
		}
	}
	for _, name := range []string{"imagemagick", "ffmpeg", "ffprobe"} {
		if !names[name] {
			t.Errorf("Missing status for %s", name)
		}
	}
}
