package term

// Override requests a specific output path from the selector.
type Override int

const (
	// OverrideAuto lets the platform decide.
	OverrideAuto Override = iota

	// OverrideVTOutput forces escape-sequence output. On the native
	// console platform input still uses the console API; only output
	// can be redirected to escape sequences.
	OverrideVTOutput
)

// ParseOverride parses a configuration string into an Override.
func ParseOverride(s string) Override {
	switch s {
	case "vt", "console-vt":
		return OverrideVTOutput
	default:
		return OverrideAuto
	}
}

// Select instantiates the backend variant for this platform. Selection
// is a pure function of platform and override: variant capabilities
// are statically known, so no runtime probing happens here. The
// selected backend is verified against MinCapabilities before it is
// returned; ErrBackendUnsupported means the caller has no terminal to
// drive (e.g. input is not a tty).
func Select(override Override) (Backend, error) {
	b, err := newPlatformBackend(override)
	if err != nil {
		return nil, err
	}
	if !b.Capabilities().Meets(MinCapabilities) {
		return nil, ErrBackendUnsupported
	}
	return b, nil
}
