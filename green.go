// Package green implements a minimal userspace cooperative scheduler —
// "green threads" — with an integrated actor-style mailbox for passing
// messages between tasks.
//
// Exactly one scheduler may run per process. Bootstrap starts it,
// blocking the calling goroutine until the last task exits; Spawn,
// Send, Recv, and Yield are only valid when called from inside a task
// running under that scheduler.
package green

import "github.com/ehrlich-b/go-green/internal/runtime"

// EntryFunc is the signature every task, including the one passed to
// Bootstrap, runs.
type EntryFunc func()

// Options configures a Bootstrap call.
type Options struct {
	// Logger receives scheduler debug output. Defaults to the package
	// logger's current default if nil.
	Logger *Logger
	// Observer receives scheduler events. Defaults to NopObserver if nil.
	Observer Observer
}

// Bootstrap starts the scheduler on the calling goroutine and runs entry
// as the first task, returning once entry and everything it transitively
// spawns has finished. Calling Bootstrap again before the outer call has
// returned — directly or from within a running task — panics with a
// *Error of code ErrCodeDoubleBootstrap.
func Bootstrap(entry EntryFunc, stackSize int, opts Options) {
	runtime.Bootstrap(func() { entry() }, stackSize, toConfig(opts))
}

// Spawn creates a new task running entry on a stack of stackSize bytes
// and yields to the scheduler, which may run the new task (or any other
// runnable task) before Spawn returns. It must be called from within a
// running task. The returned id addresses the new task's mailbox.
func Spawn(entry EntryFunc, stackSize int) uint64 {
	return runtime.Spawn(func() { entry() }, stackSize)
}

// Send appends msg to the mailbox of the task identified by id, waking
// it if it is blocked in Recv, then yields to the scheduler. It must be
// called from within a running task.
func Send(id uint64, msg uint64) {
	runtime.Send(id, msg)
}

// Recv returns the next message addressed to the calling task, blocking
// until one arrives. If the calling task is the only runnable task and
// its mailbox is empty, no other task can ever send it one, so Recv
// panics with a *Error of code ErrCodeDeadlock instead of hanging.
func Recv() uint64 {
	return runtime.Recv()
}

// Yield gives up the calling task's turn to the next runnable task. If
// no other task is runnable, Yield returns immediately.
func Yield() {
	runtime.Yield()
}
