// Package config loads termforge configuration from a TOML file with
// environment variable overrides. Loading is layered: defaults, then
// the file, then TERMFORGE_* variables, highest last.
package config
