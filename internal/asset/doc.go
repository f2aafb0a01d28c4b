package asset

// Package asset detects media asset types and produces read-only metadata
// snapshots. GIF metadata comes from ImageMagick identify, video metadata
// from ffprobe, and static image metadata from in-process decoding.
