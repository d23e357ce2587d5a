package detect

import "fmt"

// Category groups known terminal emulators by lineage.
type Category int

// Candidate categories, in fallback search order.
const (
	CategoryNone Category = iota
	CategoryTraditional
	CategoryDesktop
	CategoryModern
	CategoryExtended
	CategoryNative
)

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryTraditional:
		return "traditional"
	case CategoryDesktop:
		return "desktop-environment"
	case CategoryModern:
		return "modern"
	case CategoryExtended:
		return "extended"
	case CategoryNative:
		return "native"
	default:
		return "none"
	}
}

// Syntax is the launch-argument shape a terminal emulator accepts.
type Syntax int

const (
	// SyntaxCommand appends the target invocation directly:
	// terminal cmd [args...]
	SyntaxCommand Syntax = iota
	// SyntaxDashE prefixes the target invocation with -e:
	// terminal -e cmd [args...]
	SyntaxDashE
	// SyntaxDoubleDash prefixes the target invocation with --:
	// terminal -- cmd [args...]
	SyntaxDoubleDash
	// SyntaxNativeAPI means the platform allocates a console
	// in-process; there is nothing to spawn.
	SyntaxNativeAPI
)

// Flag returns the separator flag for the syntax, if it has one.
func (s Syntax) Flag() (string, bool) {
	switch s {
	case SyntaxDashE:
		return "-e", true
	case SyntaxDoubleDash:
		return "--", true
	default:
		return "", false
	}
}

// Args splices a target invocation into the syntax template.
// For SyntaxNativeAPI it returns nil.
func (s Syntax) Args(target string, args []string) []string {
	if s == SyntaxNativeAPI {
		return nil
	}
	out := make([]string, 0, len(args)+2)
	if flag, ok := s.Flag(); ok {
		out = append(out, flag)
	}
	out = append(out, target)
	out = append(out, args...)
	return out
}

// Split is the inverse of Args: it recovers the target command and
// its arguments from a spliced argument list. ok is false when the
// list does not match the syntax template.
func (s Syntax) Split(spliced []string) (target string, args []string, ok bool) {
	if s == SyntaxNativeAPI {
		return "", nil, false
	}
	rest := spliced
	if flag, has := s.Flag(); has {
		if len(rest) == 0 || rest[0] != flag {
			return "", nil, false
		}
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", nil, false
	}
	return rest[0], rest[1:], true
}

// String returns the syntax template in documentation form.
func (s Syntax) String() string {
	switch s {
	case SyntaxCommand:
		return "[command]"
	case SyntaxDashE:
		return "-e [command]"
	case SyntaxDoubleDash:
		return "-- [command]"
	case SyntaxNativeAPI:
		return "native API"
	default:
		return "unknown"
	}
}

// ParseSyntax parses the string form produced by Syntax.String.
func ParseSyntax(s string) (Syntax, error) {
	switch s {
	case "[command]":
		return SyntaxCommand, nil
	case "-e [command]":
		return SyntaxDashE, nil
	case "-- [command]":
		return SyntaxDoubleDash, nil
	case "native API":
		return SyntaxNativeAPI, nil
	default:
		return SyntaxCommand, fmt.Errorf("%w: %q", ErrUnknownSyntax, s)
	}
}

// Method identifies which detection strategy produced an identity.
type Method int

const (
	MethodNone Method = iota
	// MethodNativeAPI is the degenerate path on platforms whose
	// console subsystem is allocated in-process.
	MethodNativeAPI
	// MethodEnvironment is the TERMINAL_EMULATOR variable.
	MethodEnvironment
	// MethodTerminalApp is the macOS Terminal.app check.
	MethodTerminalApp
	// MethodXDGTerminalExec is the xdg-terminal-exec helper.
	MethodXDGTerminalExec
	// MethodXTerminalEmulator is the Debian x-terminal-emulator
	// alternatives helper.
	MethodXTerminalEmulator
	// MethodGnomeSettings is the GNOME preferred-terminal setting.
	MethodGnomeSettings
	// MethodKDESettings is the KDE default-terminal setting.
	MethodKDESettings
	// MethodTable is a candidate-table hit against $PATH.
	MethodTable
)

// String returns the human-readable method name.
func (m Method) String() string {
	switch m {
	case MethodNativeAPI:
		return "native API"
	case MethodEnvironment:
		return "environment variable"
	case MethodTerminalApp:
		return "Terminal.app"
	case MethodXDGTerminalExec:
		return "xdg-terminal-exec"
	case MethodXTerminalEmulator:
		return "x-terminal-emulator"
	case MethodGnomeSettings:
		return "GNOME settings"
	case MethodKDESettings:
		return "KDE settings"
	case MethodTable:
		return "candidate table"
	default:
		return "none"
	}
}

// parseMethod recovers a Method from its String form; unrecognized
// strings map to MethodNone.
func parseMethod(s string) Method {
	for m := MethodNone; m <= MethodTable; m++ {
		if m.String() == s {
			return m
		}
	}
	return MethodNone
}

// Identity is a detected terminal emulator: the executable to invoke,
// its category, the launch syntax it accepts, and the detection method
// that produced it. Identities are immutable value types.
type Identity struct {
	// Name is the executable name or path.
	Name string

	// Category is the candidate category, or CategoryNone for
	// probe-sourced names absent from the candidate table.
	Category Category

	// Syntax is the launch-argument shape.
	Syntax Syntax

	// Method records which probe produced the identity.
	Method Method
}

// String returns a short description of the identity.
func (id Identity) String() string {
	return fmt.Sprintf("%s (%s, %s, via %s)", id.Name, id.Category, id.Syntax, id.Method)
}

// IsNative reports whether the identity is the in-process console path.
func (id Identity) IsNative() bool {
	return id.Syntax == SyntaxNativeAPI
}

// Result is the outcome of a detection run. Found is false when the
// entire chain was exhausted without an answer; the zero Result is the
// definitive not-found value.
type Result struct {
	Identity Identity
	Found    bool
}

// String returns a short description of the result.
func (r Result) String() string {
	if !r.Found {
		return "no terminal found"
	}
	return r.Identity.String()
}
