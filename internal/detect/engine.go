package detect

import "time"

// Engine runs the detection chain. Probes execute strictly in order
// and the first positive answer short-circuits the rest; probe-level
// non-answers are absorbed and never surface to the caller.
type Engine struct {
	env      Env
	probes   []Probe
	disabled map[string]bool
}

// Options configures an Engine.
type Options struct {
	// Env is the environment surface. Defaults to OSEnv.
	Env Env

	// HelperTimeout bounds helper-command probes. Defaults to
	// DefaultHelperTimeout.
	HelperTimeout time.Duration

	// Disabled lists probe names to skip.
	Disabled []string

	// Probes overrides the platform chain. Used by tests; production
	// callers leave it nil.
	Probes []Probe
}

// NewEngine creates an engine with the platform probe chain.
func NewEngine(opts Options) *Engine {
	if opts.Env == nil {
		opts.Env = OSEnv{}
	}
	if opts.HelperTimeout <= 0 {
		opts.HelperTimeout = DefaultHelperTimeout
	}
	probes := opts.Probes
	if probes == nil {
		probes = platformProbes(helperTimeout(opts.HelperTimeout))
	}
	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		disabled[name] = true
	}
	return &Engine{env: opts.Env, probes: probes, disabled: disabled}
}

// Detect runs the chain and returns the selected terminal identity,
// or the not-found result when every strategy comes up empty. It never
// fails: absence is a value.
func (e *Engine) Detect() Result {
	for _, p := range e.probes {
		if e.disabled[p.Name()] {
			continue
		}
		id, err := p.Attempt(e.env)
		if err != nil {
			// ErrProbeNoAnswer, ErrProbeInapplicable, and
			// ErrProbeTimeout all mean "ask the next probe".
			continue
		}
		return Result{Identity: id, Found: true}
	}
	return Result{}
}

// ProbeNames returns the chain's probe names in execution order.
func (e *Engine) ProbeNames() []string {
	names := make([]string, 0, len(e.probes))
	for _, p := range e.probes {
		names = append(names, p.Name())
	}
	return names
}

// Detect is the package-level convenience: the default engine against
// the real environment.
func Detect() Result {
	return NewEngine(Options{}).Detect()
}
