// pkg/vs/locator.go
package vs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/runner"
)

// Locator finds vcvarsall.bat for an architecture token
type Locator struct {
	Runner runner.Runner

	// VswherePath overrides the default installer location.
	VswherePath string

	// Getenv resolves ProgramFiles(x86); defaults to os.Getenv.
	Getenv func(string) string

	Logger *log.Logger
}

// NewLocator creates a Locator running vswhere through r
func NewLocator(r runner.Runner, logger *log.Logger) *Locator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Locator{
		Runner: r,
		Getenv: os.Getenv,
		Logger: logger,
	}
}

// Vswhere returns the path where vswhere.exe is expected
func (l *Locator) Vswhere() string {
	if l.VswherePath != "" {
		return l.VswherePath
	}
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	programFiles := getenv("ProgramFiles(x86)")
	if programFiles == "" {
		programFiles = DefaultProgramFilesX86
	}
	return filepath.Join(programFiles, "Microsoft Visual Studio", "Installer", "vswhere.exe")
}

// VswhereArgs returns the discovery arguments for token
func VswhereArgs(token string) []string {
	args := []string{"-products"}
	args = append(args, Products...)
	args = append(args,
		"-find", VcvarsallRelPath,
		"-utf8",
		"-requires", ComponentRedist,
	)
	if strings.HasSuffix(token, "arm64") {
		args = append(args, ComponentARM64)
	}
	return args
}

// Locate returns the path of vcvarsall.bat.
//
// A non-empty hint is trusted: it is made absolute and must exist, it is
// never used as a search root. Otherwise vswhere is asked and only the
// first line of its output is considered.
func (l *Locator) Locate(ctx context.Context, token, hint string) (string, error) {
	const op = "locate vcvarsall.bat"

	if hint != "" {
		path, err := filepath.Abs(hint)
		if err != nil {
			return "", core.Errorf(op, core.ErrToolNotFound, "could not resolve path_hint=%s: %v", hint, err)
		}
		if _, err := os.Stat(path); err != nil {
			return "", core.Errorf(op, core.ErrToolNotFound, "could not find vcvarsall.bat. path_hint=%s", hint)
		}
		l.Logger.Printf("Using vcvarsall.bat from hint: %s", path)
		return path, nil
	}

	vswhere := l.Vswhere()
	if _, err := os.Stat(vswhere); err != nil {
		return "", core.Errorf(op, core.ErrToolNotFound, "could not find vswhere.exe at %s.%s", vswhere, vcvarsallHint)
	}

	l.Logger.Printf("Querying %s for %s", vswhere, token)
	res, err := l.Runner.Run(ctx, runner.Command{Program: vswhere, Args: VswhereArgs(token)})
	if err != nil {
		var pe *core.ProcessError
		if errors.As(err, &pe) {
			return "", &core.Error{
				Op:  op,
				Err: fmt.Errorf("%w: failed to execute vswhere.exe: %w", core.ErrToolNotFound, err),
			}
		}
		return "", &core.Error{Op: op, Err: err}
	}

	if line := firstLine(res.Stdout); line != "" {
		if _, err := os.Stat(line); err == nil {
			l.Logger.Printf("  ✓ Found %s", line)
			return line, nil
		}
		l.Logger.Printf("vswhere reported %s but it does not exist", line)
	}

	msg := "could not find vcvarsall.bat."
	if strings.HasSuffix(token, "arm64") {
		msg += " Make sure " + ComponentARM64 + " is installed."
	} else {
		msg += vcvarsallHint
	}
	return "", core.Errorf(op, core.ErrToolNotFound, "%s", msg)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
