package platform

import (
	"runtime"
	"strings"
)

// OS represents a supported operating system.
type OS string

const (
	Windows OS = "windows"
	MacOS   OS = "darwin"
	Linux   OS = "linux"
	Unknown OS = "unknown"
)

// Detect returns the current operating system.
func Detect() OS {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) OS {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// IsWindows returns true if running on Windows.
func IsWindows() bool {
	return Detect() == Windows
}

// ExecutableName appends the platform's executable suffix to name
// unless it already carries one.
func (o OS) ExecutableName(name string) string {
	if o != Windows || strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name
	}
	return name + ".exe"
}

// FoldsEnvKeys reports whether environment variable names are
// case-insensitive (Path and PATH are the same variable).
func (o OS) FoldsEnvKeys() bool {
	return o == Windows
}

// SameEnvKey compares two environment variable names under the OS rules.
func (o OS) SameEnvKey(a, b string) bool {
	if o.FoldsEnvKeys() {
		return strings.EqualFold(a, b)
	}
	return a == b
}
