//go:build windows

package term

// newPlatformBackend selects the console-API variant. The override
// redirects output to escape sequences while input stays on the
// console API.
func newPlatformBackend(override Override) (Backend, error) {
	return NewConsole(override == OverrideVTOutput)
}
