package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("habit not found"),
			expected: "Error: habit not found",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to save habits: %w", errors.New("disk full")),
			expected: "Error: failed to save habits: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCode(t *testing.T) {
	base := errors.New("doctor found problems")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain", err: base, want: 1},
		{name: "with code", err: WithExitCode(base, 2), want: 2},
		{name: "wrapped code", err: fmt.Errorf("doctor: %w", WithExitCode(base, 3)), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}

	if WithExitCode(nil, 2) != nil {
		t.Error("WithExitCode(nil) should be nil")
	}
	if !errors.Is(WithExitCode(base, 2), base) {
		t.Error("WithExitCode should unwrap to the original error")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	code := Report(&buf, WithExitCode(errors.New("store unreachable"), 2))
	if code != 2 {
		t.Errorf("Report() code = %d, want 2", code)
	}
	if got := buf.String(); got != "Error: store unreachable\n" {
		t.Errorf("Report() wrote %q", got)
	}

	buf.Reset()
	if Report(&buf, nil) != 0 || buf.Len() != 0 {
		t.Error("Report(nil) should write nothing and return 0")
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
