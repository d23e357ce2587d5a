package detect

import "strings"

// terminalAppProbe checks for Terminal.app via the macOS open(1)
// reveal flag. It is only chained on darwin; the type itself is
// portable so the chain logic stays testable everywhere.
type terminalAppProbe struct {
	timeout timeoutFn
}

func (terminalAppProbe) Name() string { return "terminal-app" }

func (p terminalAppProbe) Attempt(env Env) (Identity, error) {
	if _, err := env.LookPath("open"); err != nil {
		return Identity{}, ErrProbeInapplicable
	}
	ctx, cancel := p.timeout()
	defer cancel()

	// `open -Ra Terminal` exits zero iff the app bundle exists,
	// printing nothing. Any output is an error message.
	out, err := env.Run(ctx, "open", "-Ra", "Terminal")
	if err != nil {
		return Identity{}, wrapHelperErr(err)
	}
	if strings.TrimSpace(out) != "" {
		return Identity{}, ErrProbeNoAnswer
	}
	return Identity{
		Name:     "Terminal",
		Category: CategoryDesktop,
		Syntax:   SyntaxCommand,
		Method:   MethodTerminalApp,
	}, nil
}
