//go:build windows

package launch

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// detachAttr detaches the spawned process from the caller's console.
// Rarely exercised: on Windows the native console path bypasses
// spawning entirely.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
