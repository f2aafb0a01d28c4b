package operation

// Package operation implements the user-facing asset operations: optimize,
// split, convert, and compare. Each mutating operation resolves its output
// path, refuses to clobber existing files unless overwriting was requested,
// runs at most one external process at a time, and reports a structured
// Result with before/after sizes.
