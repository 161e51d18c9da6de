package green

import "sync"

// RecordingObserver records every scheduler event it receives, in order,
// for assertions in tests of code built on this package. It is safe for
// concurrent reads from a goroutine other than the one running the
// scheduler.
type RecordingObserver struct {
	mu     sync.Mutex
	Events []Event
}

// Event is one observed scheduler event.
type Event struct {
	Kind   string // "spawn", "exit", "yield", "send", "recv", "block", "wake"
	TaskID uint64
	Other  uint64 // Send's recipient or Recv's message; zero otherwise
}

func (o *RecordingObserver) record(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, e)
}

func (o *RecordingObserver) ObserveSpawn(id uint64)          { o.record(Event{Kind: "spawn", TaskID: id}) }
func (o *RecordingObserver) ObserveExit(id uint64)           { o.record(Event{Kind: "exit", TaskID: id}) }
func (o *RecordingObserver) ObserveYield(id uint64)          { o.record(Event{Kind: "yield", TaskID: id}) }
func (o *RecordingObserver) ObserveSend(id, to uint64)       { o.record(Event{Kind: "send", TaskID: id, Other: to}) }
func (o *RecordingObserver) ObserveRecv(id, msg uint64)      { o.record(Event{Kind: "recv", TaskID: id, Other: msg}) }
func (o *RecordingObserver) ObserveBlock(id uint64)          { o.record(Event{Kind: "block", TaskID: id}) }
func (o *RecordingObserver) ObserveWake(id uint64)           { o.record(Event{Kind: "wake", TaskID: id}) }

// Snapshot returns a copy of the events recorded so far.
func (o *RecordingObserver) Snapshot() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Event, len(o.Events))
	copy(out, o.Events)
	return out
}

var _ Observer = (*RecordingObserver)(nil)
