package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default values applied before any file or environment overlay.
const (
	DefaultHelperTimeout = 3 * time.Second
	DefaultLogLevel      = "info"
)

// knownProbes is the union of probe names across platforms, for
// validating the disabled-probe list.
var knownProbes = map[string]bool{
	"TERMINAL_EMULATOR":   true,
	"xdg-terminal-exec":   true,
	"x-terminal-emulator": true,
	"gnome-settings":      true,
	"kde-settings":        true,
	"terminal-app":        true,
	"candidate-table":     true,
	"native-console":      true,
}

// Config is the full termforge configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Detect  DetectConfig  `toml:"detect"`
	Logging LoggingConfig `toml:"logging"`
}

// BackendConfig selects the I/O backend variant.
type BackendConfig struct {
	// Override is "auto", "vt", or "console-vt".
	Override string `toml:"override"`
}

// DetectConfig tunes the detection engine.
type DetectConfig struct {
	// HelperTimeout bounds helper-command probes, in time.Duration
	// syntax ("3s", "500ms").
	HelperTimeout string `toml:"helper_timeout"`

	// DisabledProbes lists probe names to skip.
	DisabledProbes []string `toml:"disabled_probes"`

	// Cache enables recording the last successful detection.
	Cache bool `toml:"cache"`

	// CachePath overrides the default cache location.
	CachePath string `toml:"cache_path"`

	helperTimeout time.Duration
}

// LoggingConfig controls the file logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// Default returns the configuration with no file or environment
// applied.
func Default() Config {
	return Config{
		Backend: BackendConfig{Override: "auto"},
		Detect: DetectConfig{
			HelperTimeout: DefaultHelperTimeout.String(),
			helperTimeout: DefaultHelperTimeout,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Timeout returns the parsed helper timeout. Valid after Validate;
// before that it is the default.
func (d DetectConfig) Timeout() time.Duration {
	if d.helperTimeout == 0 {
		return DefaultHelperTimeout
	}
	return d.helperTimeout
}

// FileSystem abstracts file reads so tests can inject fixtures.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS returns the real file system.
func DefaultFS() FileSystem { return osFS{} }

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termforge", "config.toml")
}

// Load reads the configuration at path, layering defaults, file, and
// environment. A missing file is not an error; the defaults and
// environment still apply.
func Load(path string) (Config, error) {
	return LoadWithFS(DefaultFS(), path)
}

// LoadWithFS is Load with an injected file system.
func LoadWithFS(fs FileSystem, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := fs.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file, defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays TERMFORGE_* environment variables. Empty values
// are treated as unset.
func (c *Config) applyEnv() {
	if v := os.Getenv("TERMFORGE_BACKEND"); v != "" {
		c.Backend.Override = v
	}
	if v := os.Getenv("TERMFORGE_HELPER_TIMEOUT"); v != "" {
		c.Detect.HelperTimeout = v
	}
	if v := os.Getenv("TERMFORGE_DISABLED_PROBES"); v != "" {
		c.Detect.DisabledProbes = splitList(v)
	}
	if v := os.Getenv("TERMFORGE_CACHE"); v != "" {
		c.Detect.Cache = parseBool(v)
	}
	if v := os.Getenv("TERMFORGE_CACHE_PATH"); v != "" {
		c.Detect.CachePath = v
	}
	if v := os.Getenv("TERMFORGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TERMFORGE_LOG_PATH"); v != "" {
		c.Logging.Path = v
	}
}

// Validate checks every field and normalizes the parsed timeout.
func (c *Config) Validate() error {
	switch c.Backend.Override {
	case "", "auto", "vt", "console-vt":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend.Override)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	c.Detect.helperTimeout = DefaultHelperTimeout
	if c.Detect.HelperTimeout != "" {
		d, err := time.ParseDuration(c.Detect.HelperTimeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, c.Detect.HelperTimeout)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, c.Detect.HelperTimeout)
		}
		c.Detect.helperTimeout = d
	}

	for _, name := range c.Detect.DisabledProbes {
		if !knownProbes[name] {
			return fmt.Errorf("%w: %q", ErrUnknownProbe, name)
		}
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
