//go:build !windows

package term

// newPlatformBackend selects the escape-sequence variant. On
// terminal-based platforms it is unconditional; the override exists
// for the native-console platform and is a no-op here.
func newPlatformBackend(Override) (Backend, error) {
	return NewVT(), nil
}
