package green

import "github.com/ehrlich-b/go-green/internal/errs"

// Error is the structured, fatal error type Bootstrap, Spawn, Send, and
// Recv panic with. There is no recoverable error path in this package:
// every condition Error names — a double Bootstrap, a deadlocked Recv, a
// corrupted scheduler table — means the scheduler's invariants have
// already been violated, so there is nothing a caller could sensibly do
// but let the process crash. Error exists so that crash still carries a
// readable operation, code, and message instead of an opaque panic
// value.
type Error = errs.Error

// ErrorCode categorizes an Error.
type ErrorCode = errs.Code

// Error codes a caller may match against with errors.Is (see Error.Is).
const (
	ErrCodeDoubleBootstrap       = errs.CodeDoubleBootstrap
	ErrCodeDeadlock              = errs.CodeDeadlock
	ErrCodeTrampolineFallthrough = errs.CodeTrampolineFallthrough
	ErrCodeInvalidStackSize      = errs.CodeInvalidStackSize
	ErrCodeAllocFailure          = errs.CodeAllocFailure
	ErrCodeUnknownTask           = errs.CodeUnknownTask
)
