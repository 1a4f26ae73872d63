// forwarder.go
package arm64xfwd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/arc-language/arm64xfwd/pkg/descriptor"
	"github.com/arc-language/arm64xfwd/pkg/pipeline"
	"github.com/arc-language/arm64xfwd/pkg/runner"
	"github.com/arc-language/arm64xfwd/pkg/version"
	"github.com/arc-language/arm64xfwd/pkg/vs"
)

// Re-export pipeline types for convenience
type (
	Result = pipeline.Result
	State  = pipeline.State
)

const (
	StateInit                 = pipeline.StateInit
	StateStubObjectsCompiled  = pipeline.StateStubObjectsCompiled
	StateImportLibrariesBuilt = pipeline.StateImportLibrariesBuilt
	StateResourceCompiled     = pipeline.StateResourceCompiled
	StateLinked               = pipeline.StateLinked
	StatePublished            = pipeline.StatePublished
	StateFailed               = pipeline.StateFailed
)

// Options configures BuildForwarder
type Options struct {
	Branding    string // Mozc or GoogleJapaneseInput
	VersionFile string // path to version.txt
	Output      string // destination of the forwarder DLL

	Host          string // overrides host detection
	VcvarsallPath string // skips vswhere when set
	VswherePath   string // overrides the default vswhere.exe location

	// Dumper is the program, followed by its arguments, that runs after
	// vcvarsall.bat and prints its environment as a JSON object. The
	// default is the calling executable's dump-env subcommand, which only
	// the arm64xfwd binary registers; other programs must set it.
	Dumper []string

	// Runner runs the tools; nil uses runner.Exec with Stdout and Stderr.
	// Ignored in dry-run.
	Runner runner.Runner

	// DryRun prints every tool invocation to DryRunOut instead of running it.
	DryRun    bool
	DryRunOut io.Writer

	// Stdout and Stderr receive tool output.
	Stdout io.Writer
	Stderr io.Writer

	TempDir string
	Logger  *log.Logger
}

// BuildForwarder builds the ARM64X forwarder DLL described by opts and
// publishes it to opts.Output.
//
// Programs other than arm64xfwd must set opts.Dumper; see Options.
func BuildForwarder(ctx context.Context, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if _, err := descriptor.ParseBranding(opts.Branding); err != nil {
		return nil, err
	}
	v, err := version.Load(opts.VersionFile)
	if err != nil {
		return nil, err
	}
	desc, err := descriptor.New(opts.Branding, v)
	if err != nil {
		return nil, err
	}

	var (
		r   runner.Runner
		src pipeline.EnvironmentSource
	)
	if opts.DryRun {
		r = runner.NewDryRun(opts.DryRunOut)
		// The current environment stands in for the captured one.
		src = vs.Static{
			Env:    vs.FromEnviron(os.Environ()),
			Host:   opts.Host,
			Logger: logger,
		}
	} else {
		r = opts.Runner
		if r == nil {
			r = &runner.Exec{Stdout: opts.Stdout, Stderr: opts.Stderr}
		}
		x := vs.NewExtractor(r, logger)
		x.Host = opts.Host
		x.Dumper = opts.Dumper
		x.Locator.VswherePath = opts.VswherePath
		src = x
	}

	p := pipeline.New(&pipeline.Config{
		Runner:      r,
		Environment: src,
		DryRun:      opts.DryRun,
		DryRunOut:   opts.DryRunOut,
		TempDir:     opts.TempDir,
		Logger:      logger,
	})
	res, err := p.Run(ctx, &pipeline.Options{
		Descriptor:    desc,
		Output:        opts.Output,
		VcvarsallPath: opts.VcvarsallPath,
	})
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", desc.ForwarderName(), err)
	}
	return res, nil
}
