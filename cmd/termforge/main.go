// Package main is the termforge command line entry point.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/sjson"

	"github.com/dshills/termforge/internal/app"
	"github.com/dshills/termforge/internal/config"
	"github.com/dshills/termforge/internal/detect"
	"github.com/dshills/termforge/internal/launch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	detect     bool
	jsonOut    bool
	runTarget  bool
	demo       bool
	noCache    bool
	configPath string
	logLevel   string
	args       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.noCache {
		cfg.Detect.Cache = false
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Close()

	application := app.New(app.Options{
		Config:       cfg,
		Logger:       logger,
		SkipRelaunch: opts.detect || opts.runTarget,
	})
	defer application.Shutdown()

	switch {
	case opts.detect:
		return runDetect(application, cfg, opts.jsonOut)
	case opts.runTarget:
		return runLaunch(application, cfg, opts.args)
	default:
		return runDemo(application)
	}
}

// buildLogger picks the log destination. While a backend owns the
// terminal, stderr belongs to the display, so without a configured
// file the logs are discarded.
func buildLogger(cfg config.Config) (*app.Logger, error) {
	level := app.ParseLogLevel(cfg.Logging.Level)
	if cfg.Logging.Path != "" {
		return app.NewFileLogger(cfg.Logging.Path, level)
	}
	return app.NullLogger, nil
}

// detectWithCache consults the detection cache when enabled, falling
// back to the probe chain and refreshing the cache on a hit.
func detectWithCache(application *app.Application, cfg config.Config) detect.Result {
	if !cfg.Detect.Cache {
		return application.Detect()
	}

	path := cfg.Detect.CachePath
	if path == "" {
		var err error
		if path, err = detect.DefaultCachePath(); err != nil {
			return application.Detect()
		}
	}
	cache := detect.NewCache(path)
	if res, err := cache.Load(detect.OSEnv{}); err == nil {
		return res
	}
	res := application.Detect()
	if res.Found {
		if err := cache.Store(res); err != nil {
			application.Logger().Warn("detection cache: %v", err)
		}
	}
	return res
}

func runDetect(application *app.Application, cfg config.Config, jsonOut bool) int {
	res := detectWithCache(application, cfg)

	if jsonOut {
		out, err := detectionJSON(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(out)
		if !res.Found {
			return 2
		}
		return 0
	}

	if !res.Found {
		fmt.Println("no terminal emulator detected")
		return 2
	}
	id := res.Identity
	fmt.Printf("name:     %s\n", id.Name)
	fmt.Printf("category: %s\n", id.Category)
	fmt.Printf("syntax:   %s\n", id.Syntax)
	fmt.Printf("method:   %s\n", id.Method)
	return 0
}

// detectionJSON renders a result with stable field order.
func detectionJSON(res detect.Result) (string, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"found", res.Found},
		{"name", res.Identity.Name},
		{"category", res.Identity.Category.String()},
		{"syntax", res.Identity.Syntax.String()},
		{"method", res.Identity.Method.String()},
	}
	out := ""
	for _, f := range fields {
		var err error
		if out, err = sjson.Set(out, f.path, f.value); err != nil {
			return "", err
		}
	}
	return out, nil
}

func runLaunch(application *app.Application, cfg config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -run requires a command")
		return 1
	}

	res := detectWithCache(application, cfg)
	if !res.Found {
		fmt.Fprintln(os.Stderr, "Error: no terminal emulator detected")
		return 2
	}
	if res.Identity.IsNative() {
		fmt.Fprintln(os.Stderr, "Error: the native console attaches in-process; nothing to launch")
		return 1
	}

	plan, err := launch.NewPlanner(nil).Plan(res.Identity, args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	handle, err := launch.NewInvoker().Launch(plan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("launched %s in %s (pid %d, id %s)\n", args[0], res.Identity.Name, handle.PID, handle.ID)
	return 0
}

func runDemo(application *app.Application) int {
	relaunched, err := application.Bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if relaunched {
		// The spawned copy inside the emulator takes over.
		return 0
	}
	if err := application.RunDemo(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&opts.detect, "detect", false, "Detect the terminal emulator and print the result")
	flag.BoolVar(&opts.detect, "D", false, "Detect the terminal emulator (shorthand)")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print detection output as JSON")
	flag.BoolVar(&opts.runTarget, "run", false, "Launch the remaining arguments in the detected terminal")
	flag.BoolVar(&opts.demo, "demo", false, "Run the styled I/O demo (default)")
	flag.BoolVar(&opts.noCache, "no-cache", false, "Skip the detection cache")
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Termforge - terminal emulator detection and I/O\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termforge [options] [-- command args...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  termforge                   Relaunch into a terminal if needed, run the demo\n")
		fmt.Fprintf(os.Stderr, "  termforge -detect           Print the detected emulator\n")
		fmt.Fprintf(os.Stderr, "  termforge -detect -json     Print the detection as JSON\n")
		fmt.Fprintf(os.Stderr, "  termforge -run htop         Launch htop in the detected emulator\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Termforge %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.args = flag.Args()
	return opts
}
