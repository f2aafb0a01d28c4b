package tools

// Package tools discovers and runs the external media tools this program
// orchestrates (ImageMagick, FFmpeg, ffprobe). Discovery results are cached
// per process; execution is synchronous with structured capture of stdout,
// stderr, and exit codes.
