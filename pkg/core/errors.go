// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration indicates an invalid branding, architecture or option
	ErrConfiguration = errors.New("configuration error")

	// ErrToolNotFound indicates a required tool or script could not be found
	ErrToolNotFound = errors.New("tool not found")

	// ErrChildProcess indicates a spawned tool exited with a non-zero status
	ErrChildProcess = errors.New("child process failed")

	// ErrEnvironment indicates the host environment could not be determined
	ErrEnvironment = errors.New("environment error")
)

// Error wraps an error with additional context
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error for op whose cause wraps kind with a formatted message.
func Errorf(op string, kind error, format string, args ...any) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

// ProcessError describes a tool invocation that exited unsuccessfully.
type ProcessError struct {
	Command  []string
	Dir      string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error // Error reported by the process runner, if any
}

func (e *ProcessError) Error() string {
	msgs := []string{fmt.Sprintf("failed to execute %s (exit code %d)", strings.Join(e.Command, " "), e.ExitCode)}
	if e.Dir != "" {
		msgs = append(msgs, "cwd: "+e.Dir)
	}
	if e.Stdout != "" {
		msgs = append(msgs, "-----stdout-----", e.Stdout)
	}
	if e.Stderr != "" {
		msgs = append(msgs, "-----stderr-----", e.Stderr)
	}
	return strings.Join(msgs, "\n")
}

// Is reports ErrChildProcess so callers can match on the taxonomy.
func (e *ProcessError) Is(target error) bool {
	return target == ErrChildProcess
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
