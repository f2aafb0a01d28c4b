package params

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter supplies interactively entered parameter values. An ok result of
// false means the user gave no answer and resolution falls through to the
// next source.
type Prompter interface {
	AskInt(name string, def int) (int, bool)
	AskFloat(name string, def float64) (float64, bool)
}

// Nop never answers. Used in non-interactive mode.
type Nop struct{}

func (Nop) AskInt(string, int) (int, bool)           { return 0, false }
func (Nop) AskFloat(string, float64) (float64, bool) { return 0, false }

// Terminal prompts on out and reads answers from in. An empty answer or an
// unparseable one counts as no answer.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a prompter reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) ask(name string, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", name, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", name)
	}
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// AskInt prompts for an integer value.
func (t *Terminal) AskInt(name string, def int) (int, bool) {
	defStr := ""
	if def != 0 {
		defStr = strconv.Itoa(def)
	}
	answer, ok := t.ask(name, defStr)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(t.out, "Not a valid integer: %s\n", answer)
		return 0, false
	}
	return v, true
}

// AskFloat prompts for a numeric value.
func (t *Terminal) AskFloat(name string, def float64) (float64, bool) {
	defStr := ""
	if def != 0 {
		defStr = strconv.FormatFloat(def, 'g', -1, 64)
	}
	answer, ok := t.ask(name, defStr)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		fmt.Fprintf(t.out, "Not a valid number: %s\n", answer)
		return 0, false
	}
	return v, true
}

// Confirm asks a yes/no question and returns true only for an explicit yes.
func (t *Terminal) Confirm(question string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", question)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
