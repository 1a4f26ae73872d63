// pkg/pipeline/steps.go
package pipeline

import (
	"context"
	"fmt"

	"github.com/arc-language/arm64xfwd/pkg/core"
	"github.com/arc-language/arm64xfwd/pkg/descriptor"
	"github.com/arc-language/arm64xfwd/pkg/platform"
	"github.com/arc-language/arm64xfwd/pkg/runner"
	"github.com/arc-language/arm64xfwd/pkg/vs"
)

// toolchain holds the resolved tool paths and the environment they run in
type toolchain struct {
	env  *vs.Environment
	cl   string
	link string
	rc   string
}

func (p *Pipeline) toolchain(env *vs.Environment) (*toolchain, error) {
	tc := &toolchain{env: env}
	for _, t := range []struct {
		name string
		dst  *string
	}{
		{"cl.exe", &tc.cl},
		{"link.exe", &tc.link},
		{"rc.exe", &tc.rc},
	} {
		path, err := env.LookPath(t.name)
		if err != nil {
			if !p.cfg.DryRun {
				return nil, core.Errorf("resolve toolchain", core.ErrToolNotFound, "%v", err)
			}
			path = t.name
		}
		p.logger.Printf("Using %s", path)
		*t.dst = path
	}
	return tc, nil
}

// Typed outputs of each step

type stubObjects struct {
	native   string
	emulated string
}

type importLibraries struct {
	nativeDef   string
	nativeLib   string
	emulatedDef string
	emulatedLib string
}

type compiledResource struct {
	res string
}

// build carries one run through its steps
type build struct {
	p    *Pipeline
	tc   *toolchain
	ws   *workspace
	desc *descriptor.Descriptor
}

func (b *build) command(program string, args ...string) runner.Command {
	return runner.Command{
		Program: program,
		Args:    args,
		Dir:     b.ws.dir,
		Env:     b.tc.env.Environ(),
	}
}

// init writes the zero-byte translation unit the stub objects come from.
// The forwarder has no code of its own; the objects only give the linker one
// object per architecture slice.
func (b *build) init() (string, error) {
	if err := b.ws.files.Write(stubSource, ""); err != nil {
		return "", err
	}
	return stubSource, nil
}

func (b *build) compileStubObjects(ctx context.Context, src string) (*stubObjects, error) {
	b.p.logger.Printf("Step 2: Compiling stub objects...")
	objs := &stubObjects{native: nativeObject, emulated: emulatedObj}

	if err := b.p.run(ctx, b.command(b.tc.cl, "/nologo", "/c", "/Fo"+objs.native, src)); err != nil {
		return nil, err
	}
	if err := b.p.run(ctx, b.command(b.tc.cl, "/nologo", "/c", "/arm64EC", "/Fo"+objs.emulated, src)); err != nil {
		return nil, err
	}
	return objs, nil
}

// buildImportLibraries generates one import library per slice. LNK4104
// complains about the missing default library, which forwarders omit.
func (b *build) buildImportLibraries(ctx context.Context) (*importLibraries, error) {
	b.p.logger.Printf("Step 3: Building import libraries...")
	libs := &importLibraries{
		nativeDef:   nativeDef,
		nativeLib:   nativeLib,
		emulatedDef: emulatedDef,
		emulatedLib: emulatedLib,
	}

	for _, slice := range []struct {
		arch    platform.Architecture
		machine string
		def     string
		lib     string
	}{
		{platform.X64, "arm64EC", libs.emulatedDef, libs.emulatedLib},
		{platform.ARM64, "arm64", libs.nativeDef, libs.nativeLib},
	} {
		text, err := b.desc.ExportDefinition(slice.arch)
		if err != nil {
			return nil, err
		}
		if err := b.ws.files.Write(slice.def, text); err != nil {
			return nil, err
		}
		if err := b.p.run(ctx, b.command(b.tc.link,
			"/lib", "/nologo", "/machine:"+slice.machine, "/ignore:4104",
			"/def:"+slice.def, "/out:"+slice.lib,
		)); err != nil {
			return nil, err
		}
	}
	return libs, nil
}

func (b *build) compileResource(ctx context.Context) (*compiledResource, error) {
	b.p.logger.Printf("Step 4: Compiling resource script...")
	if err := b.ws.files.Write(resourceRC, b.desc.ResourceScript()); err != nil {
		return nil, err
	}
	if err := b.p.run(ctx, b.command(b.tc.rc, "/nologo", "/r", "/8", b.ws.path(resourceRC))); err != nil {
		return nil, err
	}
	return &compiledResource{res: resourceRES}, nil
}

// link produces the ARM64X image inside the workspace and returns its path
func (b *build) link(ctx context.Context, objs *stubObjects, libs *importLibraries, res *compiledResource) (string, error) {
	b.p.logger.Printf("Step 5: Linking %s...", b.desc.ForwarderName())
	out := b.desc.ForwarderName()
	if err := b.p.run(ctx, b.command(b.tc.link,
		"/dll", "/nologo", "/noentry", "/machine:arm64x", "/emitpogophaseinfo",
		"/largeaddressaware", "/dynamicbase", "/highentropyva", "/ignore:4104",
		"/defArm64Native:"+libs.nativeDef, "/def:"+libs.emulatedDef, fmt.Sprintf("/out:%s", out),
		objs.native, objs.emulated, libs.nativeLib, libs.emulatedLib, res.res,
	)); err != nil {
		return "", err
	}
	return b.ws.path(out), nil
}
