// pkg/platform/resolver.go
package platform

import (
	"github.com/arc-language/arm64xfwd/pkg/core"
)

// ResolvePair validates target and determines the host architecture.
//
// Priority for the host:
// 1. hostOverride, when non-empty
// 2. the detector's machine string
// An undeterminable host is core.ErrEnvironment; an unsupported one too,
// since there is no sensible default to fall back to.
func ResolvePair(d *Detector, hostOverride, target string) (Pair, error) {
	targetArch, err := Validate(target)
	if err != nil {
		return Pair{}, err
	}

	raw := hostOverride
	if raw == "" {
		if d == nil {
			d = NewDetector()
		}
		m, ok := d.Machine()
		if !ok {
			return Pair{}, core.Errorf("resolve host", core.ErrEnvironment,
				"failed to determine the host architecture. Make sure you are running this on a Windows machine")
		}
		raw = m
	}

	hostArch := Normalize(raw)
	if !hostArch.IsSupported() {
		if hostOverride != "" {
			return Pair{}, core.Errorf("resolve host", core.ErrConfiguration,
				"invalid host architecture: %q", hostOverride)
		}
		return Pair{}, core.Errorf("resolve host", core.ErrEnvironment,
			"unsupported host architecture: %q", raw)
	}

	return Pair{Host: hostArch, Target: targetArch}, nil
}
