// Package detect locates a usable terminal emulator on the host.
//
// Detection runs an ordered chain of probes (explicit environment
// override, desktop-session queries, helper commands) and falls back to
// a static candidate table searched against $PATH. The chain is
// deterministic: the same environment snapshot always produces the same
// result. Absence of a terminal is a value, not an error.
//
// The chain is composed per platform at construction time; the engine
// itself contains no platform branches.
package detect
