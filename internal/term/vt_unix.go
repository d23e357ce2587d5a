//go:build !windows

package term

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResize wires SIGWINCH to resize events. Returns a stop
// function that releases the signal registration.
func (v *VT) notifyResize() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)

	go func() {
		for {
			select {
			case <-ch:
				v.postResize()
			case <-v.done:
				return
			}
		}
	}()

	return func() { signal.Stop(ch) }
}
