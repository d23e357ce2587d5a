//go:build !windows

package launch

import "syscall"

// detachAttr puts the spawned terminal in its own session so closing
// or killing the caller cannot take it down.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
