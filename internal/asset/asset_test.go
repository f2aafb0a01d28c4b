package asset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectTypeByExtension(t *testing.T) {
	tests := []struct {
		path     string
		expected Type
	}{
		{"animation.gif", TypeGIF},
		{"ANIMATION.GIF", TypeGIF},
		{"photo.png", TypeImage},
		{"photo.jpg", TypeImage},
		{"photo.jpeg", TypeImage},
		{"photo.webp", TypeImage},
		{"photo.bmp", TypeImage},
		{"clip.mp4", TypeVideo},
		{"clip.mov", TypeVideo},
		{"clip.mkv", TypeVideo},
		{"clip.webm", TypeVideo},
	}

	for _, test := range tests {
		result, err := DetectType(test.path)
		if err != nil {
			t.Errorf("DetectType(%s) returned error: %v", test.path, err)
			continue
		}
		if result != test.expected {
			t.Errorf("DetectType(%s) = %s, expected %s", test.path, result, test.expected)
		}
	}
}

func TestDetectTypeSniffsUnknownExtension(t *testing.T) {
	// A GIF header behind a misleading extension should still be detected.
	path := filepath.Join(t.TempDir(), "asset.dat")
	if err := os.WriteFile(path, []byte("GIF89a trailing data"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := DetectType(path)
	if err != nil {
		t.Fatalf("DetectType returned error: %v", err)
	}
	if result != TypeGIF {
		t.Errorf("DetectType = %s, expected %s", result, TypeGIF)
	}
}

func TestDetectTypeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just some text"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := DetectType(path)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
}

func TestSniffType(t *testing.T) {
	mp4Head := append([]byte{0, 0, 0, 0x20}, []byte("ftypisom")...)
	webpHead := append([]byte("RIFF\x00\x00\x00\x00"), []byte("WEBP")...)

	tests := []struct {
		name       string
		head       []byte
		expected   Type
		expectedOK bool
	}{
		{"gif87a", []byte("GIF87a"), TypeGIF, true},
		{"gif89a", []byte("GIF89a"), TypeGIF, true},
		{"png", []byte("\x89PNG\r\n\x1a\n"), TypeImage, true},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, TypeImage, true},
		{"bmp", []byte("BM\x00\x00"), TypeImage, true},
		{"tiff little endian", []byte("II*\x00"), TypeImage, true},
		{"tiff big endian", []byte("MM\x00*"), TypeImage, true},
		{"webp", webpHead, TypeImage, true},
		{"mp4", mp4Head, TypeVideo, true},
		{"matroska", []byte{0x1A, 0x45, 0xDF, 0xA3}, TypeVideo, true},
		{"empty", nil, Type(""), false},
		{"text", []byte("hello world"), Type(""), false},
	}

	for _, test := range tests {
		result, ok := SniffType(test.head)
		if ok != test.expectedOK {
			t.Errorf("%s: ok = %v, expected %v", test.name, ok, test.expectedOK)
		}
		if result != test.expected {
			t.Errorf("%s: type = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(context.Background(),filepath.Join(t.TempDir(), "missing.gif"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
