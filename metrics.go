package green

import "sync/atomic"

// Metrics tracks scheduler activity: how many tasks have been spawned
// and exited, how often the scheduler has yielded, and how often tasks
// have sent, received, blocked, and been woken.
type Metrics struct {
	SpawnCount atomic.Uint64
	ExitCount  atomic.Uint64
	YieldCount atomic.Uint64
	SendCount  atomic.Uint64
	RecvCount  atomic.Uint64
	BlockCount atomic.Uint64
	WakeCount  atomic.Uint64

	// TasksLive is SpawnCount - ExitCount, tracked directly so a reader
	// doesn't need to subtract two counters that could be sampled at
	// different instants.
	TasksLive atomic.Int64
}

// NewMetrics returns a zeroed Metrics ready to be wrapped in a
// MetricsObserver and handed to Bootstrap via Options.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of a Metrics' counters.
type MetricsSnapshot struct {
	SpawnCount uint64
	ExitCount  uint64
	YieldCount uint64
	SendCount  uint64
	RecvCount  uint64
	BlockCount uint64
	WakeCount  uint64
	TasksLive  int64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		SpawnCount: m.SpawnCount.Load(),
		ExitCount:  m.ExitCount.Load(),
		YieldCount: m.YieldCount.Load(),
		SendCount:  m.SendCount.Load(),
		RecvCount:  m.RecvCount.Load(),
		BlockCount: m.BlockCount.Load(),
		WakeCount:  m.WakeCount.Load(),
		TasksLive:  m.TasksLive.Load(),
	}
}

// Observer receives scheduler events as they happen. Implementations
// must be safe to call from the scheduler's single OS thread only; they
// are never invoked concurrently with each other, but a reporting
// goroutine reading the backing Metrics may race with them, which is why
// MetricsObserver stores into atomics rather than plain fields.
type Observer interface {
	ObserveSpawn(taskID uint64)
	ObserveExit(taskID uint64)
	ObserveYield(taskID uint64)
	ObserveSend(taskID uint64, to uint64)
	ObserveRecv(taskID uint64, msg uint64)
	ObserveBlock(taskID uint64)
	ObserveWake(taskID uint64)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) ObserveSpawn(uint64)        {}
func (NopObserver) ObserveExit(uint64)         {}
func (NopObserver) ObserveYield(uint64)        {}
func (NopObserver) ObserveSend(uint64, uint64) {}
func (NopObserver) ObserveRecv(uint64, uint64) {}
func (NopObserver) ObserveBlock(uint64)        {}
func (NopObserver) ObserveWake(uint64)         {}

// MetricsObserver is an Observer that records every event into a Metrics.
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver builds an Observer backed by m.
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) ObserveSpawn(uint64) {
	o.metrics.SpawnCount.Add(1)
	o.metrics.TasksLive.Add(1)
}

func (o *MetricsObserver) ObserveExit(uint64) {
	o.metrics.ExitCount.Add(1)
	o.metrics.TasksLive.Add(-1)
}

func (o *MetricsObserver) ObserveYield(uint64) { o.metrics.YieldCount.Add(1) }

func (o *MetricsObserver) ObserveSend(uint64, uint64) { o.metrics.SendCount.Add(1) }

func (o *MetricsObserver) ObserveRecv(uint64, uint64) { o.metrics.RecvCount.Add(1) }

func (o *MetricsObserver) ObserveBlock(uint64) { o.metrics.BlockCount.Add(1) }

func (o *MetricsObserver) ObserveWake(uint64) { o.metrics.WakeCount.Add(1) }

var _ Observer = (*MetricsObserver)(nil)
var _ Observer = NopObserver{}
