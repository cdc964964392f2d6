// Package command runs external programs for the git CLI backend and the
// envman exporter. Both consumers accept a Runner so tests can substitute a
// recording fake.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExitError describes a program that ran but exited non-zero.
type ExitError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
}

// maxArgLen caps each argument shown in an error message, in runes.
const maxArgLen = 24

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", commandLine(e.Name, e.Args), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// commandLine joins name and args for display. Multi-line and long arguments,
// such as a changelog passed as a value, are cut to their first maxArgLen
// runes of the first line.
func commandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		parts = append(parts, elide(arg))
	}
	return strings.Join(parts, " ")
}

func elide(arg string) string {
	first, _, multiLine := strings.Cut(arg, "\n")
	runes := []rune(first)
	if len(runes) > maxArgLen {
		return string(runes[:maxArgLen]) + "..."
	}
	if multiLine {
		return first + "..."
	}
	return arg
}

// Exec runs programs with os/exec.
type Exec struct{}

// Run executes name with args in dir. Stderr is captured into the returned
// error when the program exits non-zero.
func (Exec) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return stdout.Bytes(), &ExitError{
				Name:     name,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return stdout.Bytes(), fmt.Errorf("running %s: %w", name, err)
	}

	return stdout.Bytes(), nil
}
