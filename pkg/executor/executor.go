package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(exec.CommandContext(ctx, name, args...), name)
}

func (e *implExecutor) run(cmd *exec.Cmd, name string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitErr := &ExitError{Name: name, Code: -1, Stderr: lastLines(stderr.String(), 20), Err: err}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.Code = ee.ExitCode()
		}
		return "", exitErr
	}

	return stdout.String(), nil
}

// ExitError reports a command that could not start or exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command '%s' failed (exit %d): %v\nstderr: %s", e.Name, e.Code, e.Err, e.Stderr)
	}
	return fmt.Sprintf("command '%s' failed (exit %d): %v", e.Name, e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ffmpeg prints a long banner; only the tail is useful in an error message.
func lastLines(s string, n int) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
