//go:build windows

// pkg/platform/detect_windows.go
package platform

import (
	"golang.org/x/sys/windows"
)

// IMAGE_FILE_MACHINE_* values reported by IsWow64Process2
var imageFileMachines = map[uint16]string{
	0x014c: "X86",
	0x8664: "AMD64",
	0xAA64: "ARM64",
}

// machineFromAPI uses IsWow64Process2, available from Windows 10 1709.
func machineFromAPI() (string, bool) {
	proc := windows.NewLazySystemDLL("kernel32.dll").NewProc("IsWow64Process2")
	if err := proc.Find(); err != nil {
		return "", false
	}

	var processMachine, nativeMachine uint16
	if err := windows.IsWow64Process2(windows.CurrentProcess(), &processMachine, &nativeMachine); err != nil {
		return "", false
	}

	machine, ok := imageFileMachines[nativeMachine]
	return machine, ok
}
