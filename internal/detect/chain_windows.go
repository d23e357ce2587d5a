//go:build windows

package detect

// platformProbes is degenerate on Windows: the console subsystem is
// part of the platform API and is allocated in-process, so detection
// always answers with the native identity.
func platformProbes(timeoutFn) []Probe {
	return []Probe{nativeProbe{}}
}
