package executor

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()
	e := New()

	out, err := e.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q", out)
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error should be *ExitError, got %T", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if exitErr.Stderr != "boom" {
		t.Errorf("Stderr = %q", exitErr.Stderr)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "caseclip-no-such-binary")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error should be *ExitError, got %T", err)
	}
	if exitErr.Code != -1 {
		t.Errorf("Code = %d, want -1", exitErr.Code)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should wrap exec.ErrNotFound: %v", err)
	}
}

func TestLastLines(t *testing.T) {
	in := "a\nb\nc\nd"
	if got := lastLines(in, 2); got != "c\nd" {
		t.Errorf("lastLines() = %q", got)
	}
	if got := lastLines("  x  ", 5); got != "x" {
		t.Errorf("lastLines() = %q", got)
	}
}
