// pkg/vs/extractor.go
package vs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/platform"
	"github.com/arc-language/arm64xfwd/pkg/runner"
)

// Extractor captures the environment vcvarsall.bat sets up
type Extractor struct {
	Locator  *Locator
	Runner   runner.Runner
	Detector *platform.Detector

	// Host overrides host detection when set.
	Host string

	// Shell is the command interpreter; defaults to %COMSPEC% or cmd.exe.
	Shell string

	// Dumper is the program printing its environment as JSON, followed by
	// its arguments. Defaults to this executable's dump-env subcommand.
	Dumper []string

	Logger *log.Logger
}

// NewExtractor creates an Extractor using the real process runner
func NewExtractor(r runner.Runner, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Extractor{
		Locator:  NewLocator(r, logger),
		Runner:   r,
		Detector: platform.NewDetector(),
		Logger:   logger,
	}
}

// Extract returns the environment for building target binaries.
//
// The whole capture either succeeds or fails; a failing shell line never
// yields a partial environment.
func (x *Extractor) Extract(ctx context.Context, target, hint string) (*Environment, error) {
	pair, err := platform.ResolvePair(x.Detector, x.Host, target)
	if err != nil {
		return nil, err
	}
	token := pair.Token()
	x.Logger.Printf("Toolchain architecture: %s", token)

	vcvarsall, err := x.Locator.Locate(ctx, token, hint)
	if err != nil {
		return nil, err
	}

	dumper, err := x.dumper()
	if err != nil {
		return nil, err
	}
	shell := x.shell()
	line := CaptureLine(vcvarsall, token, dumper)

	res, err := x.Runner.Run(ctx, runner.Command{
		Program: shell,
		Args:    []string{"/d", "/s", "/c", line},
		CmdLine: fmt.Sprintf(`"%s" /d /s /c "%s"`, shell, line),
	})
	if err != nil {
		return nil, &core.Error{Op: "execute " + vcvarsall, Err: err}
	}

	env, err := ParseEnvironment(bytes.TrimSpace([]byte(res.Stdout)))
	if err != nil {
		return nil, core.Errorf("execute "+vcvarsall, core.ErrChildProcess, "%v", err)
	}
	x.Logger.Printf("  ✓ Captured %d environment variables", env.Len())
	return env, nil
}

// CaptureLine builds the shell line running vcvarsall.bat and, in the same
// session, the environment dumper.
func CaptureLine(vcvarsall, token string, dumper []string) string {
	line := fmt.Sprintf(`("%s" %s >nul) && ("%s"`, vcvarsall, token, dumper[0])
	for _, arg := range dumper[1:] {
		line += " " + arg
	}
	return line + ")"
}

func (x *Extractor) shell() string {
	if x.Shell != "" {
		return x.Shell
	}
	if comspec := os.Getenv("COMSPEC"); comspec != "" {
		return comspec
	}
	return "cmd.exe"
}

func (x *Extractor) dumper() ([]string, error) {
	if len(x.Dumper) > 0 {
		return x.Dumper, nil
	}
	self, err := os.Executable()
	if err != nil {
		return nil, core.Errorf("extract", core.ErrEnvironment, "locating own executable: %v", err)
	}
	return []string{self, DumpEnvCommand}, nil
}

// Static is an environment source that never spawns a process. It backs
// dry runs. The host is still resolved so that a bad host or target fails
// the same way a real capture would.
type Static struct {
	Env *Environment

	// Host overrides host detection when set.
	Host     string
	Detector *platform.Detector
	Logger   *log.Logger
}

// Extract implements the environment source by returning s.Env. Without a
// host override, an undetectable host (any non-Windows OS) only skips the
// token.
func (s Static) Extract(_ context.Context, target, _ string) (*Environment, error) {
	d := s.Detector
	if d == nil {
		d = platform.NewDetector()
	}
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if _, ok := d.Machine(); !ok && s.Host == "" {
		if _, err := platform.Validate(target); err != nil {
			return nil, err
		}
		logger.Printf("Host architecture unknown on %s, skipping toolchain token", d.GOOS)
		return s.Env, nil
	}

	pair, err := platform.ResolvePair(d, s.Host, target)
	if err != nil {
		return nil, err
	}
	logger.Printf("Toolchain architecture: %s", pair.Token())
	return s.Env, nil
}
