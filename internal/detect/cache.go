package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Cache persists the last successful detection so interactive tooling
// can skip the probe chain on subsequent runs. The cache is an
// acceleration only; a stored identity is revalidated against the
// search path before use.
type Cache struct {
	path string
}

// NewCache creates a cache at the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// DefaultCachePath returns the per-user cache location.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "termforge", "detect.json"), nil
}

// Store records a detection result. Not-found results are not cached;
// absence should be re-probed every run.
func (c *Cache) Store(res Result) error {
	if !res.Found {
		return nil
	}
	fields := []struct {
		path  string
		value any
	}{
		{"name", res.Identity.Name},
		{"category", res.Identity.Category.String()},
		{"syntax", res.Identity.Syntax.String()},
		{"method", res.Identity.Method.String()},
		{"detectedAt", time.Now().UTC().Format(time.RFC3339)},
	}
	var (
		data []byte
		err  error
	)
	for _, f := range fields {
		data, err = sjson.SetBytes(data, f.path, f.value)
		if err != nil {
			return fmt.Errorf("encode detection cache: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Load reads the cached result and revalidates the stored name against
// the environment's search path. Returns ErrNoCache when the cache is
// missing, malformed, or stale.
func (c *Cache) Load(env Env) (Result, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Result{}, ErrNoCache
	}
	name := gjson.GetBytes(data, "name").String()
	if name == "" {
		return Result{}, ErrNoCache
	}
	syntax, err := ParseSyntax(gjson.GetBytes(data, "syntax").String())
	if err != nil {
		return Result{}, ErrNoCache
	}
	if syntax != SyntaxNativeAPI {
		if _, err := env.LookPath(filepath.Base(name)); err != nil {
			return Result{}, ErrNoCache
		}
	}
	id := identify(name, parseMethod(gjson.GetBytes(data, "method").String()))
	id.Syntax = syntax
	return Result{Identity: id, Found: true}, nil
}

// Invalidate removes the cache file.
func (c *Cache) Invalidate() error {
	err := os.Remove(c.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
