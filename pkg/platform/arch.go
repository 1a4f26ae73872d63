// pkg/platform/arch.go
package platform

import (
	"strings"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

// Architecture is a CPU architecture name as understood by vcvarsall.bat
type Architecture string

const (
	X86   Architecture = "x86"
	X64   Architecture = "x64"
	ARM64 Architecture = "arm64"
)

// Supported lists every architecture the toolchain can target or run on
var Supported = []Architecture{X86, X64, ARM64}

// GoArchitectures maps Go architectures to Windows architectures
var GoArchitectures = map[string]Architecture{
	"386":   X86,
	"amd64": X64,
	"arm64": ARM64,
}

// Normalize lower-cases raw and maps "amd64" to "x64". It performs no
// validation; "" stays "".
func Normalize(raw string) Architecture {
	normalized := strings.ToLower(raw)
	if normalized == "amd64" {
		return X64
	}
	return Architecture(normalized)
}

// IsSupported reports whether a is one of Supported
func (a Architecture) IsSupported() bool {
	for _, s := range Supported {
		if a == s {
			return true
		}
	}
	return false
}

func (a Architecture) String() string {
	return string(a)
}

// Validate normalizes raw and rejects anything outside Supported with
// core.ErrConfiguration.
func Validate(raw string) (Architecture, error) {
	arch := Normalize(raw)
	if !arch.IsSupported() {
		return "", core.Errorf("validate architecture", core.ErrConfiguration,
			"invalid architecture: %q. Supported architectures are: x86, x64, arm64", raw)
	}
	return arch, nil
}

// Pair is the host/target combination handed to vcvarsall.bat
type Pair struct {
	Host   Architecture
	Target Architecture
}

// Native reports whether host and target are the same
func (p Pair) Native() bool {
	return p.Host == p.Target
}

// Token returns "x64" for a native pair and "x64_arm64" for a cross pair
func (p Pair) Token() string {
	if p.Native() {
		return string(p.Target)
	}
	return string(p.Host) + "_" + string(p.Target)
}

func (p Pair) String() string {
	return p.Token()
}
