//go:build !windows

package runner

import "os/exec"

// setCmdLine is a no-op: Program and Args are used as-is.
func setCmdLine(_ *exec.Cmd, _ string) {}
