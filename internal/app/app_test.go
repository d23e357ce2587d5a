package app

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/termforge/internal/config"
	"github.com/dshills/termforge/internal/detect"
	"github.com/dshills/termforge/internal/term"
)

// testApp builds an application over a null backend and a fixed
// environment snapshot.
func testApp(t *testing.T, backend term.Backend, env detect.Env) *Application {
	t.Helper()
	if env == nil {
		env = &detect.FakeEnv{}
	}
	a := New(Options{
		Config:       config.Default(),
		Backend:      backend,
		Engine:       detect.NewEngine(detect.Options{Env: env}),
		SkipRelaunch: true,
	})
	t.Cleanup(a.Shutdown)
	return a
}

func TestBootstrapLifecycle(t *testing.T) {
	backend := term.NewNullBackend(80, 24)
	a := testApp(t, backend, nil)

	relaunched, err := a.Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if relaunched {
		t.Error("injected backend must not trigger a relaunch")
	}
	if a.Backend() != backend {
		t.Error("Backend() should return the injected backend")
	}

	a.Shutdown()
	if err := backend.EnterRaw(); !errors.Is(err, term.ErrBackendClosed) {
		t.Errorf("backend should be closed after Shutdown, got %v", err)
	}
	a.Shutdown() // idempotent
}

func TestBootstrapTwice(t *testing.T) {
	a := testApp(t, term.NewNullBackend(80, 24), nil)
	if _, err := a.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if _, err := a.Bootstrap(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Bootstrap = %v, want ErrAlreadyRunning", err)
	}
}

func TestDetectThroughEngine(t *testing.T) {
	env := &detect.FakeEnv{
		Vars: map[string]string{"TERMINAL_EMULATOR": "kitty"},
	}
	a := testApp(t, term.NewNullBackend(80, 24), env)

	res := a.Detect()
	if !res.Found {
		t.Fatal("expected a detection")
	}
	if res.Identity.Name != "kitty" {
		t.Errorf("Name = %q, want kitty", res.Identity.Name)
	}
	if res.Identity.Method != detect.MethodEnvironment {
		t.Errorf("Method = %v, want environment", res.Identity.Method)
	}
}

func TestDetectNotFound(t *testing.T) {
	a := testApp(t, term.NewNullBackend(80, 24), &detect.FakeEnv{})
	if res := a.Detect(); res.Found {
		t.Errorf("empty environment detected %v", res.Identity)
	}
}

func TestRunDemoBeforeBootstrap(t *testing.T) {
	a := testApp(t, term.NewNullBackend(80, 24), nil)
	if err := a.RunDemo(); !errors.Is(err, ErrNotBootstrapped) {
		t.Errorf("RunDemo = %v, want ErrNotBootstrapped", err)
	}
}

func TestRunDemoQuitKey(t *testing.T) {
	backend := term.NewNullBackend(80, 24)
	a := testApp(t, backend, nil)
	if _, err := a.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	backend.PostEvent(term.RuneEvent('x', term.ModNone))
	backend.PostEvent(term.RuneEvent('q', term.ModNone))

	done := make(chan error, 1)
	go func() { done <- a.RunDemo() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunDemo: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("demo did not exit on quit key")
	}

	if backend.IsRaw() {
		t.Error("demo left the backend in raw mode")
	}
	enters, exits := backend.ModeTransitions()
	if enters != 1 || exits != 1 {
		t.Errorf("mode transitions = %d/%d, want 1/1", enters, exits)
	}
	if len(backend.Writes()) == 0 {
		t.Error("demo should have written styled output")
	}
}

func TestRunDemoCtrlC(t *testing.T) {
	backend := term.NewNullBackend(80, 24)
	a := testApp(t, backend, nil)
	if _, err := a.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	backend.PostEvent(term.RuneEvent('c', term.ModCtrl))
	done := make(chan error, 1)
	go func() { done <- a.RunDemo() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunDemo: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("demo did not exit on Ctrl+C")
	}
}

func TestRunDemoExitsOnShutdown(t *testing.T) {
	backend := term.NewNullBackend(80, 24)
	a := testApp(t, backend, nil)
	if _, err := a.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- a.RunDemo() }()
	time.Sleep(50 * time.Millisecond)
	a.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunDemo after Shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("demo did not exit on Shutdown")
	}
}
