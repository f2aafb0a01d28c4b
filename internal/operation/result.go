package operation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/assetguy/assetguy/internal/format"
)

// ErrOutputExists is returned when an operation would clobber an existing
// file without overwrite permission.
var ErrOutputExists = errors.New("output file already exists")

// Result records the outcome of one mutating operation. It serializes to
// JSON with a stable key set.
type Result struct {
	ID                  string   `json:"id"`
	Operation           string   `json:"operation"`
	Success             bool     `json:"success"`
	InputPath           string   `json:"input_path"`
	OutputPath          string   `json:"output_path,omitempty"`
	OutputPaths         []string `json:"output_paths,omitempty"`
	InputSize           int64    `json:"input_size"`
	InputSizeFormatted  string   `json:"input_size_formatted"`
	OutputSize          int64    `json:"output_size"`
	OutputSizeFormatted string   `json:"output_size_formatted"`
	Reduction           int64    `json:"reduction"`
	ReductionFormatted  string   `json:"reduction_formatted"`
	ReductionPercent    float64  `json:"reduction_percent"`
	Message             string   `json:"message"`
}

// newResult builds a successful result with size comparison filled in.
func newResult(op, inputPath, outputPath string, inputSize, outputSize int64) *Result {
	reduction := inputSize - outputSize
	percent := 0.0
	if inputSize > 0 {
		percent = float64(reduction) / float64(inputSize) * 100
	}

	return &Result{
		ID:                  generateID(op),
		Operation:           op,
		Success:             true,
		InputPath:           inputPath,
		OutputPath:          outputPath,
		InputSize:           inputSize,
		InputSizeFormatted:  format.ByteSize(inputSize),
		OutputSize:          outputSize,
		OutputSizeFormatted: format.ByteSize(outputSize),
		Reduction:           reduction,
		ReductionFormatted:  format.ByteSize(abs64(reduction)),
		ReductionPercent:    percent,
	}
}

// generateID returns a time-ordered unique operation ID.
func generateID(op string) string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s-%d", op, time.Now().UnixNano())
	}
	return op + "-" + id.String()
}

// checkOutput enforces the overwrite rule before any work happens: an
// existing output path fails the operation and is left untouched.
func checkOutput(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s (use --overwrite to replace it)", ErrOutputExists, path)
	}
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func fileSize(path string) int64 {
	stat, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return stat.Size()
}
