// Package errs defines the structured, fatal error type the scheduler
// panics with. Every condition this package names is unrecoverable by
// design: there is no partial-failure mode for a corrupted scheduler
// table, so none of these are returned as ordinary Go errors.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes a fatal scheduler error.
type Code string

const (
	CodeDoubleBootstrap        Code = "double bootstrap"
	CodeDeadlock               Code = "deadlock"
	CodeTrampolineFallthrough  Code = "trampoline fallthrough"
	CodeInvalidStackSize       Code = "invalid stack size"
	CodeAllocFailure           Code = "stack allocation failure"
	CodeUnknownTask            Code = "unknown task id"
)

// Error is a structured, fatal scheduler error.
type Error struct {
	Op    string // operation that failed, e.g. "Spawn", "Recv"
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op != "" {
		return fmt.Sprintf("green: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("green: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// New builds a fatal error ready to be panicked.
func New(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// Wrap attaches op/code context to an inner error.
func Wrap(op string, code Code, inner error) *Error {
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// Is reports whether err is a *Error of the given code, unwrapping as needed.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Deadlock builds the fatal deadlock error. Its message must contain the
// literal substring "dead lock", matching the panic text a caller blocked
// on an empty mailbox with no other runnable task should see.
func Deadlock(taskID uint64) *Error {
	return New("Recv", CodeDeadlock, fmt.Sprintf("dead lock: task %d is the only runnable task and its mailbox is empty", taskID))
}
