package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultHelperTimeout bounds helper-command probes so a hung helper
// cannot block startup indefinitely.
const DefaultHelperTimeout = 3 * time.Second

// Env is the environment surface the detection chain reads. Injecting
// it keeps Detect deterministic under test: a fixed snapshot of
// variables, search path, and helper output always yields the same
// result.
type Env interface {
	// Getenv returns the value of an environment variable, empty if
	// unset.
	Getenv(key string) string

	// LookPath resolves an executable name against the search path.
	LookPath(file string) (string, error)

	// Run executes a helper command and returns its trimmed standard
	// output. The context bounds the helper's lifetime.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// OSEnv is the production Env backed by the real process environment.
type OSEnv struct{}

// Getenv returns the process environment variable.
func (OSEnv) Getenv(key string) string { return os.Getenv(key) }

// LookPath resolves against the real $PATH.
func (OSEnv) LookPath(file string) (string, error) { return exec.LookPath(file) }

// Run executes the helper and returns its trimmed stdout.
func (OSEnv) Run(ctx context.Context, name string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrProbeTimeout, name)
		}
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// FakeEnv is a fully-specified environment snapshot for tests.
type FakeEnv struct {
	// Vars maps variable names to values.
	Vars map[string]string

	// Path maps executable names to resolved paths.
	Path map[string]string

	// Output maps a helper command line (name plus space-joined
	// args) to its standard output.
	Output map[string]string

	// Errs maps a helper command line to an error.
	Errs map[string]error
}

// Getenv returns the snapshot variable.
func (f *FakeEnv) Getenv(key string) string { return f.Vars[key] }

// LookPath resolves against the snapshot path table.
func (f *FakeEnv) LookPath(file string) (string, error) {
	if p, ok := f.Path[file]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

// Run returns the snapshot output for the command line.
func (f *FakeEnv) Run(_ context.Context, name string, args ...string) (string, error) {
	key := name
	if len(args) > 0 {
		key += " " + strings.Join(args, " ")
	}
	if err, ok := f.Errs[key]; ok {
		return "", err
	}
	if out, ok := f.Output[key]; ok {
		return out, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}
