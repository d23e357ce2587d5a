//go:build darwin

package detect

// platformProbes builds the macOS detection chain. Terminal.app ships
// with the OS, so the table is rarely reached; it still covers
// third-party emulators installed on $PATH.
func platformProbes(timeout timeoutFn) []Probe {
	return []Probe{
		envVarProbe{},
		terminalAppProbe{timeout: timeout},
		tableProbe{},
	}
}
