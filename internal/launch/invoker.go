package launch

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/uuid"
)

// Handle identifies a spawned terminal process. The invoker does not
// wait for the terminal to become interactive; the handle is for
// diagnostics, not supervision.
type Handle struct {
	// ID tags this launch attempt.
	ID string

	// PID is the spawned process id.
	PID int

	// Path is the executable that was spawned.
	Path string
}

// String returns a short description of the handle.
func (h *Handle) String() string {
	return fmt.Sprintf("%s (pid %d, launch %s)", h.Path, h.PID, h.ID)
}

// Invoker executes spawn plans.
type Invoker struct{}

// NewInvoker creates an invoker.
func NewInvoker() *Invoker { return &Invoker{} }

// Launch spawns the process described by the plan, detached so the
// terminal survives independent of the caller. The call blocks only
// for process creation. Failures wrap ErrSpawnFailed; there are no
// retries.
func (inv *Invoker) Launch(plan SpawnPlan) (*Handle, error) {
	cmd := exec.Command(plan.Path, plan.Args...)
	cmd.Dir = plan.Dir
	if len(plan.Env) > 0 {
		cmd.Env = append(os.Environ(), plan.Env...)
	}
	cmd.SysProcAttr = detachAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	pid := cmd.Process.Pid
	// Release rather than Wait: the terminal is not our child to
	// supervise, and holding it would leak a zombie on exit.
	_ = cmd.Process.Release()

	return &Handle{ID: uuid.NewString(), PID: pid, Path: plan.Path}, nil
}
