// Package runtime implements the cooperative scheduler: the runnable and
// waiting task queues, the per-task mailbox, the entry trampoline every
// spawned task starts at, and the teardown that runs when the last task
// exits back to the host program.
//
// Exactly one Runtime may be alive in a process at a time, mirroring the
// single-OS-thread assumption the register save/restore in internal/arch
// depends on: nothing here takes a lock, because nothing here is ever
// entered from more than one goroutine.
package runtime

import (
	"reflect"

	"github.com/ehrlich-b/go-green/internal/arch"
	"github.com/ehrlich-b/go-green/internal/constants"
	"github.com/ehrlich-b/go-green/internal/errs"
	"github.com/ehrlich-b/go-green/internal/ids"
	"github.com/ehrlich-b/go-green/internal/interfaces"
	"github.com/ehrlich-b/go-green/internal/logging"
	"github.com/ehrlich-b/go-green/internal/stack"
)

// task is one green thread: its saved registers, its backing stack
// region, and the user function it runs.
type task struct {
	id     uint64
	regs   arch.Registers
	region *stack.Region
	entry  func()
}

// Config carries the ambient dependencies a Runtime is built with.
type Config struct {
	Logger   interfaces.Logger
	Observer interfaces.Observer
	IDSource ids.Source
}

// Runtime owns every table the scheduler needs: the round-robin runnable
// queue, the table of tasks parked on an empty mailbox, the per-id
// mailbox, and the one-slot deferred stack release. A *Runtime replaces
// the raw static pointers of the reference implementation this package
// is modeled on, which is what lets Bootstrap tear one fully down
// instead of leaking dangling pointers into stack locals that have gone
// out of scope.
type Runtime struct {
	runnable []*task
	waiting  map[uint64]*task
	mailbox  map[uint64][]uint64
	alloc    *ids.Allocator

	mainRegs arch.Registers
	unused   *stack.Region

	logger   interfaces.Logger
	observer interfaces.Observer
}

// current is the single live Runtime, non-nil only between Bootstrap and
// its return. The entry trampoline reads it because it cannot otherwise
// be handed arguments: it is jumped into, not called.
var current *Runtime

var trampolinePC = func() uintptr {
	return reflect.ValueOf(trampoline).Pointer()
}()

func newRuntime(cfg Config) *Runtime {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	idSrc := cfg.IDSource
	if idSrc == nil {
		idSrc = ids.DefaultSource
	}
	return &Runtime{
		waiting:  make(map[uint64]*task),
		mailbox:  make(map[uint64][]uint64),
		alloc:    ids.New(idSrc),
		logger:   logger,
		observer: observer,
	}
}

type noopObserver struct{}

func (noopObserver) ObserveSpawn(uint64)         {}
func (noopObserver) ObserveExit(uint64)          {}
func (noopObserver) ObserveYield(uint64)         {}
func (noopObserver) ObserveSend(uint64, uint64)  {}
func (noopObserver) ObserveRecv(uint64, uint64)  {}
func (noopObserver) ObserveBlock(uint64)         {}
func (noopObserver) ObserveWake(uint64)          {}

// Bootstrap starts the scheduler on the calling goroutine, running entry
// as the first and only initially-runnable task. It returns once entry
// (and anything it transitively spawns) has run to completion. Calling
// Bootstrap while another Bootstrap is active on this goroutine is a
// programming error and panics.
func Bootstrap(entry func(), stackSize int, cfg Config) {
	if current != nil {
		panic(errs.New("Bootstrap", errs.CodeDoubleBootstrap, "Bootstrap called while a runtime is already active"))
	}
	if stackSize <= 0 {
		stackSize = constants.DefaultStackSize
	}

	rt := newRuntime(cfg)
	current = rt

	rt.spawnLocked(entry, stackSize)

	if arch.Save(&rt.mainRegs) == 0 {
		first := rt.runnable[0]
		arch.Restore(&first.regs)
	}
	rt.drainUnused()

	current = nil
}

// Spawn creates a new task and yields to the scheduler, matching the
// reference implementation's spawn-then-schedule behavior: the caller
// does not resume until the round-robin has come back around to it.
func Spawn(entry func(), stackSize int) uint64 {
	rt := requireCurrent("Spawn")
	if stackSize <= 0 {
		stackSize = constants.DefaultStackSize
	}
	id := rt.spawnLocked(entry, stackSize)
	rt.yield_()
	return id
}

func (rt *Runtime) spawnLocked(entry func(), stackSize int) uint64 {
	region := stack.Get(stackSize)
	id := rt.alloc.Fresh()
	t := &task{
		id:     id,
		region: region,
		entry:  entry,
		regs:   arch.New(region.Top(), trampolinePC),
	}
	rt.runnable = append(rt.runnable, t)
	rt.observer.ObserveSpawn(id)
	rt.logger.Task(logging.LevelDebug, id, "spawned", "stack_size", stackSize)
	return id
}

// Yield gives up the calling task's turn. If it is the only runnable
// task, Yield returns immediately.
func Yield() {
	rt := requireCurrent("Yield")
	rt.observer.ObserveYield(rt.runnable[0].id)
	rt.yield_()
}

// yield_ moves the front task to the back of the runnable queue and
// switches to whatever is now in front, or returns immediately if there
// is nothing else runnable.
func (rt *Runtime) yield_() {
	if len(rt.runnable) == 1 {
		return
	}
	t := rt.runnable[0]
	rt.runnable = append(rt.runnable[1:], t)

	if arch.Save(&t.regs) == 0 {
		next := rt.runnable[0]
		arch.Restore(&next.regs)
	}
	rt.drainUnused()
}

// Send appends msg to id's mailbox. If a task is parked waiting on id, it
// is moved back onto the runnable queue. Send always yields afterward,
// matching the reference scheduler's send-then-schedule behavior.
func Send(id uint64, msg uint64) {
	rt := requireCurrent("Send")
	rt.mailbox[id] = append(rt.mailbox[id], msg)
	rt.observer.ObserveSend(rt.runnable[0].id, id)

	if t, ok := rt.waiting[id]; ok {
		delete(rt.waiting, id)
		rt.runnable = append(rt.runnable, t)
		rt.observer.ObserveWake(id)
	}
	rt.yield_()
}

// Recv returns the next message addressed to the calling task, blocking
// until one arrives. If the calling task is the only runnable task and
// its mailbox is empty, no other task can ever make progress to send it
// one, so Recv panics with a fatal deadlock error rather than hanging
// forever.
func Recv() uint64 {
	rt := requireCurrent("Recv")
	for {
		t := rt.runnable[0]

		if msg, ok := rt.popMail(t.id); ok {
			rt.observer.ObserveRecv(t.id, msg)
			return msg
		}

		if len(rt.runnable) == 1 {
			panic(errs.Deadlock(t.id))
		}

		rt.runnable = rt.runnable[1:]
		rt.waiting[t.id] = t
		rt.observer.ObserveBlock(t.id)

		if arch.Save(&t.regs) == 0 {
			next := rt.runnable[0]
			arch.Restore(&next.regs)
		}
		rt.drainUnused()
		// Resumed by Send. Loop back and recheck the mailbox rather than
		// assuming the message that woke us is still there to be had:
		// nothing prevents another task from being scheduled first if the
		// sender and this task share recipients.
	}
}

func (rt *Runtime) popMail(id uint64) (uint64, bool) {
	q := rt.mailbox[id]
	if len(q) == 0 {
		return 0, false
	}
	msg := q[0]
	rt.mailbox[id] = q[1:]
	return msg, true
}

// trampoline is the fixed entry point every spawned task's registers
// point to. It is reached by an indirect jump, not a call, so it takes
// no arguments and must not assume a return address below it; it
// recovers which task is running from the package-level current Runtime.
// Like every other point where control resumes inside a task after a
// context switch, it drains whatever stack exitTask deferred before
// doing anything else.
//
//go:nosplit
func trampoline() {
	rt := current
	rt.drainUnused()
	t := rt.runnable[0]
	t.entry()
	rt.exitTask(t)
}

// exitTask runs when a task's entry function returns. It removes the
// task from the runnable queue, releases its id and mailbox, and
// switches to whatever runs next — another runnable task, or the main
// context if none remain. exitTask never returns: Restore always
// transfers control elsewhere, so falling through past it indicates a
// corrupted scheduler table, not a recoverable condition.
func (rt *Runtime) exitTask(t *task) {
	rt.runnable = rt.runnable[1:]
	rt.alloc.Release(t.id)
	delete(rt.mailbox, t.id)
	delete(rt.waiting, t.id)
	rt.observer.ObserveExit(t.id)
	rt.logger.Task(logging.LevelDebug, t.id, "exited")

	// The stack we are currently running on cannot be unmapped until
	// execution has moved off it; stash it for the next yield point to
	// release.
	rt.unused = t.region

	if len(rt.runnable) > 0 {
		next := rt.runnable[0]
		arch.Restore(&next.regs)
	} else {
		arch.Restore(&rt.mainRegs)
	}

	panic(errs.New("trampoline", errs.CodeTrampolineFallthrough, "entry trampoline fell through after Restore"))
}

// drainUnused releases a stack region deferred by exitTask once it is
// safe to do so: we are no longer running on it.
func (rt *Runtime) drainUnused() {
	if rt.unused == nil {
		return
	}
	r := rt.unused
	rt.unused = nil
	stack.Put(r)
}

func requireCurrent(op string) *Runtime {
	if current == nil {
		panic(errs.New(op, errs.CodeUnknownTask, "called with no active runtime; call Bootstrap first"))
	}
	return current
}
