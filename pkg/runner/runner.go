// Package runner executes external tools. Every invocation blocks until the
// process exits; there is no timeout and no retry.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

// Command describes one tool invocation
type Command struct {
	Program string
	Args    []string

	// Dir is the working directory; "" means the current one.
	Dir string

	// Env is the complete environment in KEY=value form; nil inherits
	// the caller's environment.
	Env []string

	// CmdLine, when set, is passed verbatim as the Windows command line
	// instead of quoting Program and Args.
	CmdLine string
}

// Argv returns Program followed by Args
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// String renders the command for logs and dry-run output
func (c Command) String() string {
	if c.CmdLine != "" {
		return c.CmdLine
	}
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Argv() {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs commands to completion
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Exec runs commands as real processes
type Exec struct {
	// Stdout and Stderr additionally receive the tool output when set.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner. A non-zero exit yields a *core.ProcessError.
func (e *Exec) Run(ctx context.Context, c Command) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Dir = c.Dir
	if c.Env != nil {
		cmd.Env = c.Env
	}
	if c.CmdLine != "" {
		setCmdLine(cmd, c.CmdLine)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = tee(&stdoutBuf, e.Stdout)
	cmd.Stderr = tee(&stderrBuf, e.Stderr)

	err := cmd.Run()
	result := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return result, core.Errorf("run", core.ErrToolNotFound, "%s: %v", c.Program, err)
	default:
		result.ExitCode = -1
	}

	return result, &core.ProcessError{
		Command:  c.Argv(),
		Dir:      c.Dir,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		ExitCode: result.ExitCode,
		Err:      err,
	}
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// DryRun records commands instead of running them
type DryRun struct {
	// Out receives one "dryrun: ..." line per command; nil discards.
	Out io.Writer

	mu       sync.Mutex
	commands []Command
}

// NewDryRun creates a DryRun printing to out
func NewDryRun(out io.Writer) *DryRun {
	return &DryRun{Out: out}
}

// Run implements Runner and always succeeds with empty output
func (d *DryRun) Run(_ context.Context, c Command) (*Result, error) {
	d.mu.Lock()
	d.commands = append(d.commands, c)
	d.mu.Unlock()

	d.Printf("run %s (cwd=%s)", c, c.Dir)
	return &Result{}, nil
}

// Printf writes a dry-run note
func (d *DryRun) Printf(format string, args ...any) {
	if d.Out == nil {
		return
	}
	fmt.Fprintf(d.Out, "dryrun: "+format+"\n", args...)
}

// Commands returns the recorded commands in order
func (d *DryRun) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}
