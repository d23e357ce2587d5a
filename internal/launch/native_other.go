//go:build !windows

package launch

// isNativeConsole reports whether the platform console attaches
// in-process rather than through a spawned emulator.
func isNativeConsole() bool { return false }
