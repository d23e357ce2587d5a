// Package launch turns a detected terminal identity into a running
// terminal emulator process.
//
// The planner resolves the identity's launch syntax into a concrete
// spawn plan; the invoker executes the plan detached from the caller,
// so the spawned terminal outlives it. On platforms whose console is
// allocated in-process there is nothing to spawn and both stages are
// degenerate no-ops.
package launch
