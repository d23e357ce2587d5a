//go:build linux || freebsd || openbsd || netbsd || dragonfly

package detect

// platformProbes builds the Unix detection chain. Ordering encodes
// precedence: explicit user intent (environment override), then
// environment-derived intent (helpers and desktop-session settings),
// then the hardcoded-list heuristic.
func platformProbes(timeout timeoutFn) []Probe {
	return []Probe{
		envVarProbe{},
		helperProbe{name: "xdg-terminal-exec", method: MethodXDGTerminalExec, syntax: SyntaxCommand},
		helperProbe{name: "x-terminal-emulator", method: MethodXTerminalEmulator, syntax: SyntaxDashE},
		gnomeProbe{timeout: timeout},
		kdeProbe{timeout: timeout},
		tableProbe{},
	}
}
