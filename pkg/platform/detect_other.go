//go:build !windows

// pkg/platform/detect_other.go
package platform

func machineFromAPI() (string, bool) {
	return "", false
}
