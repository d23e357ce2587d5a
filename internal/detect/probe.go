package detect

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// Probe is one detection strategy. Attempt either yields a positive
// identity or reports why it cannot: ErrProbeNoAnswer when the probe
// ran and found nothing, ErrProbeInapplicable when it does not apply
// here, ErrProbeTimeout when a helper hung past its bound. The engine
// absorbs all three and moves to the next probe.
type Probe interface {
	// Name identifies the probe for diagnostics.
	Name() string

	// Attempt runs the probe against the environment.
	Attempt(env Env) (Identity, error)
}

// identify fills category and syntax for a probe-sourced name by
// candidate-table lookup. Names the table does not know keep
// CategoryNone and fall back to bare-command syntax, which is the
// documented best effort for unrecognized emulators named by desktop
// settings.
func identify(name string, method Method) Identity {
	base := filepath.Base(name)
	if c, ok := lookupCandidate(base); ok {
		return Identity{Name: name, Category: c.Category, Syntax: c.Syntax, Method: method}
	}
	return Identity{Name: name, Category: CategoryNone, Syntax: SyntaxCommand, Method: method}
}

// envVarProbe honors the TERMINAL_EMULATOR override. Highest
// precedence: explicit user intent beats everything derived.
type envVarProbe struct{}

func (envVarProbe) Name() string { return "TERMINAL_EMULATOR" }

func (envVarProbe) Attempt(env Env) (Identity, error) {
	val := strings.TrimSpace(env.Getenv("TERMINAL_EMULATOR"))
	if val == "" {
		return Identity{}, ErrProbeNoAnswer
	}
	return identify(val, MethodEnvironment), nil
}

// helperProbe detects a launcher helper (xdg-terminal-exec,
// x-terminal-emulator) by search-path presence. The helper itself
// becomes the identity; it resolves the real emulator at launch time.
type helperProbe struct {
	name   string
	method Method
	syntax Syntax
}

func (p helperProbe) Name() string { return p.name }

func (p helperProbe) Attempt(env Env) (Identity, error) {
	if _, err := env.LookPath(p.name); err != nil {
		return Identity{}, ErrProbeNoAnswer
	}
	return Identity{Name: p.name, Category: CategoryNone, Syntax: p.syntax, Method: p.method}, nil
}

// gnomeProbe queries the GNOME preferred terminal via gsettings.
type gnomeProbe struct {
	timeout timeoutFn
}

func (gnomeProbe) Name() string { return "gnome-settings" }

func (p gnomeProbe) Attempt(env Env) (Identity, error) {
	if _, err := env.LookPath("gsettings"); err != nil {
		return Identity{}, ErrProbeInapplicable
	}
	ctx, cancel := p.timeout()
	defer cancel()

	out, err := env.Run(ctx, "gsettings", "get",
		"org.gnome.desktop.default-applications.terminal", "exec")
	if err != nil {
		return Identity{}, wrapHelperErr(err)
	}
	// gsettings quotes string values: 'gnome-terminal'
	name := strings.Trim(strings.TrimSpace(out), "'\"")
	if name == "" {
		return Identity{}, ErrProbeNoAnswer
	}
	return identify(name, MethodGnomeSettings), nil
}

// kdeProbe reads the KDE default terminal from kdeglobals.
type kdeProbe struct {
	timeout timeoutFn
}

func (kdeProbe) Name() string { return "kde-settings" }

func (p kdeProbe) Attempt(env Env) (Identity, error) {
	reader := ""
	for _, candidate := range []string{"kreadconfig6", "kreadconfig5"} {
		if _, err := env.LookPath(candidate); err == nil {
			reader = candidate
			break
		}
	}
	if reader == "" {
		return Identity{}, ErrProbeInapplicable
	}
	ctx, cancel := p.timeout()
	defer cancel()

	out, err := env.Run(ctx, reader, "--file", "kdeglobals",
		"--group", "General", "--key", "TerminalApplication")
	if err != nil {
		return Identity{}, wrapHelperErr(err)
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return Identity{}, ErrProbeNoAnswer
	}
	// The setting may carry arguments ("konsole --workdir ."); the
	// executable is the first field.
	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[0]
	}
	return identify(name, MethodKDESettings), nil
}

// tableProbe is the hardcoded-list last resort: the first candidate
// present on the search path wins, in category order.
type tableProbe struct{}

func (tableProbe) Name() string { return "candidate-table" }

func (tableProbe) Attempt(env Env) (Identity, error) {
	for _, c := range candidates {
		if _, err := env.LookPath(c.Name); err == nil {
			return Identity{Name: c.Name, Category: c.Category, Syntax: c.Syntax, Method: MethodTable}, nil
		}
	}
	return Identity{}, ErrProbeNoAnswer
}

// nativeProbe is the degenerate strategy on platforms whose console is
// allocated in-process: it always answers with the native identity.
type nativeProbe struct{}

func (nativeProbe) Name() string { return "native-console" }

func (nativeProbe) Attempt(Env) (Identity, error) {
	return Identity{
		Name:     "conhost",
		Category: CategoryNative,
		Syntax:   SyntaxNativeAPI,
		Method:   MethodNativeAPI,
	}, nil
}

// timeoutFn produces a bounded context for one helper invocation.
type timeoutFn func() (context.Context, context.CancelFunc)

func helperTimeout(d time.Duration) timeoutFn {
	return func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), d)
	}
}

// wrapHelperErr normalizes helper failures: a timeout keeps its
// sentinel, everything else is "no answer" (the helper exists but
// could not name a terminal).
func wrapHelperErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrProbeTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return ErrProbeTimeout
	}
	return ErrProbeNoAnswer
}
