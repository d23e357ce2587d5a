package detect

import (
	"errors"
	"testing"
	"time"
)

func testTimeout() timeoutFn { return helperTimeout(time.Second) }

func TestGnomeProbeStripsQuotes(t *testing.T) {
	env := &FakeEnv{
		Path: map[string]string{"gsettings": "/usr/bin/gsettings"},
		Output: map[string]string{
			"gsettings get org.gnome.desktop.default-applications.terminal exec": "'gnome-terminal'",
		},
	}

	id, err := gnomeProbe{timeout: testTimeout()}.Attempt(env)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if id.Name != "gnome-terminal" || id.Syntax != SyntaxDoubleDash {
		t.Errorf("got %v", id)
	}
}

func TestGnomeProbeInapplicableWithoutGsettings(t *testing.T) {
	_, err := gnomeProbe{timeout: testTimeout()}.Attempt(&FakeEnv{})
	if !errors.Is(err, ErrProbeInapplicable) {
		t.Errorf("err = %v, want ErrProbeInapplicable", err)
	}
}

func TestGnomeProbeEmptySetting(t *testing.T) {
	env := &FakeEnv{
		Path: map[string]string{"gsettings": "/usr/bin/gsettings"},
		Output: map[string]string{
			"gsettings get org.gnome.desktop.default-applications.terminal exec": "''",
		},
	}

	_, err := gnomeProbe{timeout: testTimeout()}.Attempt(env)
	if !errors.Is(err, ErrProbeNoAnswer) {
		t.Errorf("err = %v, want ErrProbeNoAnswer", err)
	}
}

func TestKDEProbePrefersKreadconfig6(t *testing.T) {
	env := &FakeEnv{
		Path: map[string]string{
			"kreadconfig6": "/usr/bin/kreadconfig6",
			"kreadconfig5": "/usr/bin/kreadconfig5",
		},
		Output: map[string]string{
			"kreadconfig6 --file kdeglobals --group General --key TerminalApplication": "konsole",
		},
	}

	id, err := kdeProbe{timeout: testTimeout()}.Attempt(env)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if id.Name != "konsole" || id.Method != MethodKDESettings {
		t.Errorf("got %v", id)
	}
}

func TestKDEProbeDropsArguments(t *testing.T) {
	// The KDE setting may carry arguments; only the executable
	// matters.
	env := &FakeEnv{
		Path: map[string]string{"kreadconfig5": "/usr/bin/kreadconfig5"},
		Output: map[string]string{
			"kreadconfig5 --file kdeglobals --group General --key TerminalApplication": "konsole --workdir .",
		},
	}

	id, err := kdeProbe{timeout: testTimeout()}.Attempt(env)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if id.Name != "konsole" {
		t.Errorf("name = %q, want konsole", id.Name)
	}
}

func TestHelperProbeTimeoutAbsorbed(t *testing.T) {
	env := &FakeEnv{
		Path: map[string]string{"gsettings": "/usr/bin/gsettings"},
		Errs: map[string]error{
			"gsettings get org.gnome.desktop.default-applications.terminal exec": ErrProbeTimeout,
		},
	}

	_, err := gnomeProbe{timeout: testTimeout()}.Attempt(env)
	if !errors.Is(err, ErrProbeTimeout) {
		t.Fatalf("err = %v, want ErrProbeTimeout", err)
	}

	// A timed-out probe must not abort the chain.
	engine := NewEngine(Options{Env: env, Probes: []Probe{
		gnomeProbe{timeout: testTimeout()},
		tableProbe{},
	}})
	if res := engine.Detect(); res.Found {
		t.Errorf("timed-out probe produced %v", res)
	}
}

func TestEnvVarProbeNoAnswer(t *testing.T) {
	_, err := envVarProbe{}.Attempt(&FakeEnv{})
	if !errors.Is(err, ErrProbeNoAnswer) {
		t.Errorf("err = %v, want ErrProbeNoAnswer", err)
	}
}

func TestHelperProbePresence(t *testing.T) {
	probe := helperProbe{name: "x-terminal-emulator", method: MethodXTerminalEmulator, syntax: SyntaxDashE}

	if _, err := probe.Attempt(&FakeEnv{}); !errors.Is(err, ErrProbeNoAnswer) {
		t.Errorf("absent helper: err = %v, want ErrProbeNoAnswer", err)
	}

	env := &FakeEnv{Path: map[string]string{"x-terminal-emulator": "/usr/bin/x-terminal-emulator"}}
	id, err := probe.Attempt(env)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if id.Name != "x-terminal-emulator" || id.Syntax != SyntaxDashE {
		t.Errorf("got %v", id)
	}
}

func TestTerminalAppProbe(t *testing.T) {
	env := &FakeEnv{
		Path:   map[string]string{"open": "/usr/bin/open"},
		Output: map[string]string{"open -Ra Terminal": ""},
	}

	id, err := terminalAppProbe{timeout: testTimeout()}.Attempt(env)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if id.Name != "Terminal" || id.Method != MethodTerminalApp {
		t.Errorf("got %v", id)
	}

	if _, err := (terminalAppProbe{timeout: testTimeout()}).Attempt(&FakeEnv{}); !errors.Is(err, ErrProbeInapplicable) {
		t.Errorf("no open(1): err = %v, want ErrProbeInapplicable", err)
	}
}

func TestNativeProbe(t *testing.T) {
	id, err := nativeProbe{}.Attempt(&FakeEnv{})
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if !id.IsNative() || id.Method != MethodNativeAPI {
		t.Errorf("got %v", id)
	}
}
