package tools

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Stderr capture limits for error reporting
const (
	StderrTailLines = 8
)

// FFmpeg progress protocol
const (
	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
	MicrosPerSecond    = 1_000_000
)

// Result holds the captured output of a finished subprocess.
type Result struct {
	Stdout string
	Stderr string
}

// RunError describes a subprocess that exited non-zero.
type RunError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *RunError) Error() string {
	tail := StderrTail(e.Stderr)
	if tail == "" {
		return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, e.Cmd)
	}
	return fmt.Sprintf("command failed with exit code %d: %s\n%s", e.ExitCode, e.Cmd, tail)
}

// StderrTail returns the last few non-empty lines of captured stderr.
func StderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	kept := make([]string, 0, StderrTailLines)
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) > StderrTailLines {
		kept = kept[len(kept)-StderrTailLines:]
	}
	return strings.Join(kept, "\n")
}

// Run executes a command and waits for it to complete. A non-zero exit is
// returned as a *RunError carrying the captured stderr.
func Run(ctx context.Context, name string, args ...string) (*Result, error) {
	logrus.Debugf("Running: %s %s", name, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return result, wrapRunErr(err, cmd, result.Stderr)
	}
	return result, nil
}

// RunWithProgress executes a command while streaming its stderr. Lines using
// the ffmpeg -progress protocol (out_time_us=N) are reported to onProgress
// as elapsed media seconds; all stderr is still captured for error
// reporting. onProgress may be nil.
func RunWithProgress(ctx context.Context, onProgress func(seconds float64), name string, args ...string) (*Result, error) {
	logrus.Debugf("Running: %s %s", name, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout

	pipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}

	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		line := scanner.Text()
		stderr.WriteString(line)
		stderr.WriteByte('\n')

		trimmed := strings.TrimSpace(line)
		if onProgress == nil || !strings.HasPrefix(trimmed, ProgressTimePrefix) {
			continue
		}
		micros, err := strconv.ParseInt(strings.TrimPrefix(trimmed, ProgressTimePrefix), 10, 64)
		if err != nil {
			continue
		}
		onProgress(float64(micros) / MicrosPerSecond)
	}
	scanErr := scanner.Err()

	err = cmd.Wait()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return result, wrapRunErr(err, cmd, result.Stderr)
	}
	if scanErr != nil {
		return result, fmt.Errorf("failed to read stderr of %s: %w", name, scanErr)
	}
	return result, nil
}

func wrapRunErr(err error, cmd *exec.Cmd, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &RunError{
			Cmd:      cmd.String(),
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
		}
	}
	return fmt.Errorf("failed to run %s: %w", cmd.Path, err)
}
