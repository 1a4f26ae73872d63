// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Platform represents the detected system platform
type Platform struct {
	OS      string       // linux, darwin, windows
	GoArch  string       // architecture this binary was built for
	Process Architecture // GoArch as a Windows architecture, "" if unmapped
	Machine string       // raw machine string reported by the OS, "" if unknown
	Host    Architecture // normalized Machine
}

// Detector queries the operating system for the host machine string.
// The zero value is not usable; see NewDetector.
type Detector struct {
	GOOS string

	// API asks the OS directly. ok is false when the API is unavailable
	// or fails.
	API func() (machine string, ok bool)

	// Getenv backs the generic fallback query.
	Getenv func(key string) string
}

// NewDetector returns a Detector for the running process
func NewDetector() *Detector {
	return &Detector{
		GOOS:   runtime.GOOS,
		API:    machineFromAPI,
		Getenv: os.Getenv,
	}
}

// Machine returns the raw host machine string, e.g. "AMD64" or "ARM64".
//
// The OS API is preferred since PROCESSOR_ARCHITECTURE is missing in
// sandboxed build actions. The environment fallback is kept for systems
// without the API and is known to be inaccurate in those sandboxes.
// ok is false off Windows or when nothing reports an architecture.
func (d *Detector) Machine() (machine string, ok bool) {
	if d.GOOS != "windows" {
		return "", false
	}
	if d.API != nil {
		if m, ok := d.API(); ok && m != "" {
			return m, true
		}
	}
	if d.Getenv == nil {
		return "", false
	}
	// PROCESSOR_ARCHITEW6432 is set for WOW64 processes and names the
	// native architecture.
	for _, key := range []string{"PROCESSOR_ARCHITEW6432", "PROCESSOR_ARCHITECTURE"} {
		if m := d.Getenv(key); m != "" {
			return m, true
		}
	}
	return "", false
}

// DetectHost returns the raw host machine string of the running process
func DetectHost() (string, bool) {
	return NewDetector().Machine()
}

// Platform collects everything the detector knows
func (d *Detector) Platform() *Platform {
	p := &Platform{
		OS:      d.GOOS,
		GoArch:  runtime.GOARCH,
		Process: GoArchitectures[runtime.GOARCH],
	}
	if m, ok := d.Machine(); ok {
		p.Machine = m
		p.Host = Normalize(m)
	}
	return p
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	host := string(p.Host)
	if host == "" {
		host = "unknown"
	}
	process := string(p.Process)
	if process == "" {
		process = "unknown"
	}
	return fmt.Sprintf("%s/%s (process: %s, host: %s)", p.OS, p.GoArch, process, host)
}
