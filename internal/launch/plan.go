package launch

import (
	"fmt"
	"strings"

	"github.com/dshills/termforge/internal/detect"
)

// SpawnPlan describes one launch attempt: the resolved emulator
// executable, the full argument list with the target invocation
// spliced in, and optional working-directory and environment overlay.
// A plan is built once per attempt and consumed by the invoker.
type SpawnPlan struct {
	// Path is the resolved emulator executable.
	Path string

	// Args is the argument list, not including the executable.
	Args []string

	// Dir is the working directory; empty means inherit.
	Dir string

	// Env is an overlay appended to the caller's environment.
	Env []string
}

// Planner builds spawn plans from detected identities.
type Planner struct {
	env detect.Env
}

// NewPlanner creates a planner resolving executables against env.
func NewPlanner(env detect.Env) *Planner {
	if env == nil {
		env = detect.OSEnv{}
	}
	return &Planner{env: env}
}

// Plan splices target and args into the identity's launch syntax and
// resolves the emulator executable. Identities with the native-API
// syntax cannot be planned: the console attaches in-process instead.
func (p *Planner) Plan(id detect.Identity, target string, args []string) (SpawnPlan, error) {
	if id.IsNative() {
		return SpawnPlan{}, fmt.Errorf("%w: %s", ErrUnsupportedSyntax, id.Name)
	}
	if target == "" {
		return SpawnPlan{}, ErrEmptyTarget
	}
	if id.Method == detect.MethodTerminalApp {
		return p.planTerminalApp(target, args)
	}

	path, err := p.env.LookPath(id.Name)
	if err != nil {
		// Absolute override values bypass path resolution.
		if strings.ContainsRune(id.Name, '/') {
			path = id.Name
		} else {
			return SpawnPlan{}, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
		}
	}
	return SpawnPlan{Path: path, Args: id.Syntax.Args(target, args)}, nil
}

// planTerminalApp scripts Terminal.app. The bundle has no direct
// command syntax, so the plan shells out to osascript with a quoted
// do-script invocation.
func (p *Planner) planTerminalApp(target string, args []string) (SpawnPlan, error) {
	path, err := p.env.LookPath("osascript")
	if err != nil {
		return SpawnPlan{}, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	script := fmt.Sprintf("tell application \"Terminal\"\n\tdo script \"%s\"\n\tactivate\nend tell",
		appleScriptQuote(target, args))
	return SpawnPlan{Path: path, Args: []string{"-e", script}}, nil
}

// appleScriptQuote builds the shell command embedded in the AppleScript
// string literal, escaping backslashes and double quotes.
func appleScriptQuote(target string, args []string) string {
	parts := append([]string{target}, args...)
	quoted := make([]string, len(parts))
	for i, part := range parts {
		part = strings.ReplaceAll(part, `\`, `\\\\`)
		part = strings.ReplaceAll(part, `"`, `\"`)
		quoted[i] = part
	}
	return strings.Join(quoted, " ")
}

// BuildCommand is a convenience for callers that only need the argv:
// the emulator name followed by the spliced target invocation. Returns
// nil for native-API identities.
func BuildCommand(id detect.Identity, target string, args []string) []string {
	if id.IsNative() {
		return nil
	}
	return append([]string{id.Name}, id.Syntax.Args(target, args)...)
}
