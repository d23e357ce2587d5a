package app

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dshills/termforge/internal/config"
	"github.com/dshills/termforge/internal/detect"
	"github.com/dshills/termforge/internal/launch"
	"github.com/dshills/termforge/internal/term"
)

// Options configures the application. Zero values select production
// defaults; tests inject a backend and engine.
type Options struct {
	Config config.Config
	Logger *Logger

	// Backend overrides backend selection. Tests pass a NullBackend.
	Backend term.Backend

	// Engine overrides the detection engine.
	Engine *detect.Engine

	// SkipRelaunch disables the relaunch-into-terminal step. Tests and
	// the pure-detection CLI paths set it.
	SkipRelaunch bool
}

// Application owns the detection engine and the active terminal
// backend and guarantees mode restore on every exit path.
type Application struct {
	cfg    config.Config
	logger *Logger
	engine *detect.Engine

	mu           sync.Mutex
	backend      term.Backend
	bootstrapped bool
	shutdownOnce sync.Once
	sigCh        chan os.Signal
	sigDone      chan struct{}

	injectedBackend term.Backend
	skipRelaunch    bool
}

// New creates an application from options.
func New(opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	engine := opts.Engine
	if engine == nil {
		engine = detect.NewEngine(detect.Options{
			HelperTimeout: opts.Config.Detect.Timeout(),
			Disabled:      opts.Config.Detect.DisabledProbes,
		})
	}
	return &Application{
		cfg:             opts.Config,
		logger:          logger,
		engine:          engine,
		injectedBackend: opts.Backend,
		skipRelaunch:    opts.SkipRelaunch,
	}
}

// Logger returns the application logger.
func (a *Application) Logger() *Logger { return a.logger }

// Engine returns the detection engine.
func (a *Application) Engine() *detect.Engine { return a.engine }

// Backend returns the active backend, nil before Bootstrap.
func (a *Application) Backend() term.Backend {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backend
}

// Detect runs the detection chain.
func (a *Application) Detect() detect.Result {
	res := a.engine.Detect()
	if res.Found {
		a.logger.WithComponent("detect").Debug("detected %s via %s", res.Identity.Name, res.Identity.Method)
	} else {
		a.logger.WithComponent("detect").Debug("no terminal emulator detected")
	}
	return res
}

// Bootstrap ensures a terminal, selects and initializes the backend,
// and installs the signal handler that restores the terminal mode.
// When the process had to relaunch itself into an emulator, it returns
// relaunched=true and the caller exits.
func (a *Application) Bootstrap() (relaunched bool, err error) {
	a.mu.Lock()
	if a.bootstrapped {
		a.mu.Unlock()
		return false, ErrAlreadyRunning
	}
	a.mu.Unlock()

	if !a.skipRelaunch {
		relaunched, err = launch.EnsureTerminal(launch.EnsureOptions{Engine: a.engine})
		if err != nil {
			return false, &InitError{Component: "terminal relaunch", Err: err}
		}
		if relaunched {
			a.logger.Info("relaunched into a terminal emulator")
			return true, nil
		}
	}

	backend := a.injectedBackend
	if backend == nil {
		backend, err = term.Select(term.ParseOverride(a.cfg.Backend.Override))
		if err != nil {
			return false, &InitError{Component: "backend selection", Err: err}
		}
	}
	if err := backend.Init(); err != nil {
		return false, &InitError{Component: "backend init", Err: err}
	}

	a.mu.Lock()
	a.backend = backend
	a.bootstrapped = true
	a.mu.Unlock()

	a.installSignalHandler()
	caps := backend.Capabilities()
	a.logger.WithComponent("term").Info("backend ready, %d colors", caps.Colors)
	return false, nil
}

// installSignalHandler restores the terminal mode on SIGINT/SIGTERM.
func (a *Application) installSignalHandler() {
	a.sigCh = make(chan os.Signal, 1)
	a.sigDone = make(chan struct{})
	signal.Notify(a.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-a.sigCh:
			a.logger.Info("received %v, shutting down", sig)
			a.Shutdown()
		case <-a.sigDone:
		}
	}()
}

// Shutdown restores the terminal and releases resources. Idempotent
// and safe from the signal path.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.mu.Lock()
		backend := a.backend
		sigCh, sigDone := a.sigCh, a.sigDone
		a.mu.Unlock()

		if backend != nil {
			if err := backend.ExitRaw(); err != nil {
				a.logger.WithComponent("term").Warn("mode restore: %v", err)
			}
			backend.Shutdown()
		}
		if sigCh != nil {
			signal.Stop(sigCh)
			close(sigDone)
		}
		a.logger.Info("shutdown complete")
	})
}
