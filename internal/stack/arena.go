// Package stack allocates and recycles the raw memory regions tasks run
// on: a low guard page backed by PROT_NONE, immediately below a region
// of read/write stack memory.
package stack

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ehrlich-b/go-green/internal/constants"
	"github.com/ehrlich-b/go-green/internal/errs"
)

// Region is one task's stack: a guard page followed by usable memory.
// The zero value is not valid; build one with Allocate.
type Region struct {
	mem      []byte // the full mapping, guard page included
	released bool
}

// Allocate maps size bytes of stack (page-rounded) plus one leading guard
// page. size must be a multiple of the page size and at least
// constants.MinStackSize; anything else is a configuration error, not a
// recoverable one, so Allocate panics via *errs.Error rather than
// returning one.
func Allocate(size int) *Region {
	if size < constants.MinStackSize || size%constants.PageSize != 0 {
		panic(errs.New("stack.Allocate", errs.CodeInvalidStackSize,
			fmt.Sprintf("stack size %d must be a multiple of %d and at least %d", size, constants.PageSize, constants.MinStackSize)))
	}

	total := size + constants.PageSize
	mem, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		panic(errs.Wrap("stack.Allocate", errs.CodeAllocFailure, err))
	}

	if err := unix.Mprotect(mem[:constants.PageSize], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mem)
		panic(errs.Wrap("stack.Allocate", errs.CodeAllocFailure, err))
	}

	return &Region{mem: mem}
}

// Top returns the address one past the end of usable memory: the initial
// stack pointer for a task that has never run, since both amd64 and
// arm64 stacks grow down.
func (r *Region) Top() uintptr {
	base := uintptr(unsafe.Pointer(&r.mem[0]))
	return base + uintptr(len(r.mem))
}

// Size returns the usable (non-guard) stack size in bytes.
func (r *Region) Size() int {
	return len(r.mem) - constants.PageSize
}

// Release unmaps the region. Calling Release twice on the same Region is
// a programming error, not a transient failure, and panics.
func (r *Region) Release() {
	if r.released {
		panic(errs.New("stack.Release", errs.CodeAllocFailure, "stack region released twice"))
	}
	r.released = true
	if err := unix.Munmap(r.mem); err != nil {
		panic(errs.Wrap("stack.Release", errs.CodeAllocFailure, err))
	}
}

// reguard re-asserts PROT_NONE on the region's leading guard page. It
// exists for the pool: a Region sitting in sync.Pool between tasks is
// handed back out without ever having been unmapped, so unlike a fresh
// Allocate there is nothing stopping some other, buggy caller with a
// pointer into the guard page from having mprotected it back to
// readable/writable in the meantime. Put calls this before a region
// goes back in the pool, so a pooled region is never handed out with an
// unprotected guard page; it panics with an allocation failure only if
// the mprotect call itself fails.
func (r *Region) reguard() {
	if err := unix.Mprotect(r.mem[:constants.PageSize], unix.PROT_NONE); err != nil {
		panic(errs.Wrap("stack.reguard", errs.CodeAllocFailure, err))
	}
}
