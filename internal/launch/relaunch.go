package launch

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dshills/termforge/internal/detect"
)

// relaunchMarker guards against a relaunch loop: the spawned copy sees
// the marker and never tries to relaunch again, even if its TTY checks
// somehow still fail inside the new terminal.
const relaunchMarker = "TERMFORGE_RELAUNCHED"

// InTerminal reports whether the process is attached to an interactive
// terminal: stdin and stdout are character devices and TERM is neither
// empty nor dumb. Windows always counts as in-terminal because the
// console attaches in-process on demand.
func InTerminal() bool {
	if isNativeConsole() {
		return true
	}
	switch os.Getenv("TERM") {
	case "", "dumb":
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// EnsureOptions configures EnsureTerminal. Zero values select the
// default engine, planner, and invoker, and pass the process's own
// arguments through to the relaunched copy.
type EnsureOptions struct {
	Engine  *detect.Engine
	Planner *Planner
	Invoker *Invoker

	// Args are passed to the relaunched executable. Defaults to
	// os.Args[1:].
	Args []string
}

// EnsureTerminal makes sure the application is running inside a
// terminal emulator. When started from a GUI context it detects an
// emulator, relaunches the executable inside it, and reports
// relaunched=true: the caller should then exit and let the spawned
// copy take over. Inside a terminal it is a no-op.
func EnsureTerminal(opts EnsureOptions) (relaunched bool, err error) {
	if InTerminal() || os.Getenv(relaunchMarker) != "" {
		return false, nil
	}
	if opts.Engine == nil {
		opts.Engine = detect.NewEngine(detect.Options{})
	}
	if opts.Planner == nil {
		opts.Planner = NewPlanner(nil)
	}
	if opts.Invoker == nil {
		opts.Invoker = NewInvoker()
	}
	if opts.Args == nil {
		opts.Args = os.Args[1:]
	}

	res := opts.Engine.Detect()
	if !res.Found {
		return false, ErrNoTerminalFound
	}
	if res.Identity.IsNative() {
		// Degenerate path: the console backend attaches in-process.
		return false, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	plan, err := opts.Planner.Plan(res.Identity, exe, opts.Args)
	if err != nil {
		return false, err
	}
	plan.Env = []string{relaunchMarker + "=1"}

	if _, err := opts.Invoker.Launch(plan); err != nil {
		return false, err
	}
	return true, nil
}
