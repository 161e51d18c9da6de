// Package interfaces provides internal interface definitions shared
// across the runtime. These are separate from the public package to
// avoid circular imports between it and internal/runtime.
package interfaces

import "github.com/ehrlich-b/go-green/internal/logging"

// Logger is the logging surface internal/runtime depends on: one
// scheduler-event method, rather than the concrete *logging.Logger
// type, so Runtime.logger is substitutable in tests without dragging in
// the concrete logger's internals.
type Logger interface {
	Task(level logging.LogLevel, taskID uint64, msg string, args ...any)
}

// Observer interface for scheduler event collection.
// Implementations must be thread-safe: although the scheduler itself
// only ever runs on one OS thread, an Observer may be read concurrently
// from a reporting goroutine in the host program.
type Observer interface {
	ObserveSpawn(taskID uint64)
	ObserveExit(taskID uint64)
	ObserveYield(taskID uint64)
	ObserveSend(taskID uint64, to uint64)
	ObserveRecv(taskID uint64, msg uint64)
	ObserveBlock(taskID uint64)
	ObserveWake(taskID uint64)
}
