// Package pipeline builds an ARM64X forwarder DLL.
//
// The build is a fixed sequence of tool invocations, each consuming the
// files produced by the previous one:
//
//	Init -> StubObjectsCompiled -> ImportLibrariesBuilt -> ResourceCompiled -> Linked -> Published
//
// Any failing step moves the run to Failed. Nothing is retried.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/descriptor"
	"github.com/arc-language/arm64xfwd/pkg/platform"
	"github.com/arc-language/arm64xfwd/pkg/runner"
	"github.com/arc-language/arm64xfwd/pkg/vs"
)

// EnvironmentSource captures the toolchain environment for a target
type EnvironmentSource interface {
	Extract(ctx context.Context, target, hint string) (*vs.Environment, error)
}

// Target is the architecture vcvarsall.bat is set up for; an ARM64X image
// always pairs arm64 with arm64EC.
const Target = platform.ARM64

// Config wires a Pipeline to its collaborators
type Config struct {
	Runner      runner.Runner
	Environment EnvironmentSource

	// DryRun replaces every tool invocation and destination change with a
	// printed note. Runner should then be a *runner.DryRun.
	DryRun    bool
	DryRunOut io.Writer

	// TempDir is the parent of the workspace; "" uses os.TempDir.
	TempDir string

	Logger *log.Logger
}

// Options describes one forwarder build
type Options struct {
	Descriptor    *descriptor.Descriptor
	Output        string
	VcvarsallPath string
}

// Result is returned by a finished run
type Result struct {
	Output string
	States []State
}

// Pipeline runs the forwarder build
type Pipeline struct {
	cfg    *Config
	logger *log.Logger
	dry    *runner.DryRun

	state  State
	states []State
}

// New creates a Pipeline
func New(cfg *Config) *Pipeline {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		dry:    runner.NewDryRun(cfg.DryRunOut),
	}
}

// State returns the current state
func (p *Pipeline) State() State {
	return p.state
}

// States returns every state the last run went through
func (p *Pipeline) States() []State {
	return append([]State(nil), p.states...)
}

// Run builds the forwarder and publishes it to opts.Output.
//
// ctx is only honoured before the toolchain environment is captured, since
// that capture spawns the first processes (vswhere, vcvarsall.bat).
// Afterwards the run always proceeds to Published or Failed.
func (p *Pipeline) Run(ctx context.Context, opts *Options) (res *Result, err error) {
	if opts == nil || opts.Descriptor == nil {
		return nil, core.Errorf("build forwarder", core.ErrConfiguration, "descriptor is required")
	}
	if opts.Output == "" {
		return nil, core.Errorf("build forwarder", core.ErrConfiguration, "output path is required")
	}
	if p.cfg.Runner == nil || p.cfg.Environment == nil {
		return nil, core.Errorf("build forwarder", core.ErrConfiguration, "runner and environment source are required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Past this point the run is not cancellable.
	ctx = context.WithoutCancel(ctx)

	p.state = StateInit
	p.states = []State{StateInit}
	defer func() {
		if err != nil {
			p.fail()
		}
	}()

	p.logger.Printf("Building %s (%s) into %s", opts.Descriptor.ForwarderName(), opts.Descriptor.VersionString("."), opts.Output)

	env, err := p.cfg.Environment.Extract(ctx, string(Target), opts.VcvarsallPath)
	if err != nil {
		return nil, fmt.Errorf("capturing toolchain environment: %w", err)
	}
	tc, err := p.toolchain(env)
	if err != nil {
		return nil, err
	}

	ws, err := newWorkspace(p.cfg.TempDir)
	if err != nil {
		return nil, &StepError{Step: StateInit, Err: err}
	}
	defer func() {
		if rmErr := ws.remove(); rmErr != nil {
			p.logger.Printf("  ⚠️  Warning: failed to remove workspace %s: %v", ws.dir, rmErr)
		}
	}()
	p.logger.Printf("Step 1: Workspace %s", ws.dir)

	b := &build{
		p:    p,
		tc:   tc,
		ws:   ws,
		desc: opts.Descriptor,
	}

	stub, err := b.init()
	if err != nil {
		return nil, &StepError{Step: StateInit, Err: err}
	}

	objs, err := b.compileStubObjects(ctx, stub)
	if err := p.advance(StateStubObjectsCompiled, err); err != nil {
		return nil, err
	}

	libs, err := b.buildImportLibraries(ctx)
	if err := p.advance(StateImportLibrariesBuilt, err); err != nil {
		return nil, err
	}

	rsrc, err := b.compileResource(ctx)
	if err := p.advance(StateResourceCompiled, err); err != nil {
		return nil, err
	}

	dll, err := b.link(ctx, objs, libs, rsrc)
	if err := p.advance(StateLinked, err); err != nil {
		return nil, err
	}

	err = p.publish(dll, opts.Output)
	if err := p.advance(StatePublished, err); err != nil {
		return nil, err
	}

	p.logger.Printf("✓ %s published to %s", opts.Descriptor.ForwarderName(), opts.Output)
	return &Result{Output: opts.Output, States: p.States()}, nil
}

// advance moves to want when stepErr is nil
func (p *Pipeline) advance(want State, stepErr error) error {
	if stepErr != nil {
		return &StepError{Step: want, Err: stepErr}
	}
	next, ok := p.state.next()
	if !ok || next != want {
		return &StepError{Step: want, Err: fmt.Errorf("invalid transition %s -> %s", p.state, want)}
	}
	p.state = next
	p.states = append(p.states, next)
	p.logger.Printf("  ✓ %s", next)
	return nil
}

func (p *Pipeline) fail() {
	p.state = StateFailed
	p.states = append(p.states, StateFailed)
}

func (p *Pipeline) run(ctx context.Context, c runner.Command) error {
	p.logger.Printf("  $ %s", c)
	_, err := p.cfg.Runner.Run(ctx, c)
	return err
}
