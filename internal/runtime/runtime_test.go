package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ehrlich-b/go-green/internal/constants"
	"github.com/ehrlich-b/go-green/internal/errs"
)

func TestProducerConsumer(t *testing.T) {
	var got []uint64

	Bootstrap(func() {
		consumerID := Spawn(func() {
			for i := 0; i < 5; i++ {
				got = append(got, Recv())
			}
		}, constants.MinStackSize)

		for i := uint64(0); i < 5; i++ {
			Send(consumerID, i)
		}
	}, constants.MinStackSize, Config{})

	require.Equal(t, []uint64{0, 1, 2, 3, 4}, got)
}

func TestRecvBeforeSend(t *testing.T) {
	var got uint64
	var ok bool

	Bootstrap(func() {
		consumerID := Spawn(func() {
			got = Recv()
			ok = true
		}, constants.MinStackSize)

		// The consumer runs and blocks in Recv before any message exists,
		// since Spawn yields to it immediately.
		Send(consumerID, 42)
	}, constants.MinStackSize, Config{})

	require.True(t, ok)
	require.Equal(t, uint64(42), got)
}

func TestSpawnYieldsRoundRobin(t *testing.T) {
	var order []string

	Bootstrap(func() {
		order = append(order, "main-before-spawn")
		Spawn(func() {
			order = append(order, "child")
		}, constants.MinStackSize)
		order = append(order, "main-after-spawn")
	}, constants.MinStackSize, Config{})

	// Spawn immediately yields round-robin to the newly queued task, so the
	// child runs to completion before the spawning task resumes.
	require.Equal(t, []string{"main-before-spawn", "child", "main-after-spawn"}, order)
}

// The remaining tests exercise Recv/Send/Bootstrap's fatal-error checks
// directly against a hand-built Runtime rather than through a live
// Bootstrap/Spawn task. A panic raised from inside a running task
// unwinds the synthetic stack that task's trampoline jumped onto, not
// the real call stack of whatever test or host goroutine called
// Bootstrap, so it cannot be recovered from the outside; only a panic
// raised before control ever leaves the calling goroutine's own stack
// (the checks below, plus the requireCurrent guard) is recoverable here.

func TestSoleRunnableEmptyMailboxDeadlocks(t *testing.T) {
	prev := current
	defer func() { current = prev }()

	rt := newRuntime(Config{})
	rt.runnable = []*task{{id: 99}}
	current = rt

	defer func() {
		r := recover()
		require.NotNil(t, r)
		require.True(t, errs.Is(r.(error), errs.CodeDeadlock))
		require.Contains(t, r.(error).Error(), "dead lock")
	}()

	Recv()
	t.Fatal("Recv returned instead of deadlocking")
}

func TestDoubleBootstrapPanics(t *testing.T) {
	prev := current
	defer func() { current = prev }()
	current = newRuntime(Config{})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		require.True(t, errs.Is(r.(error), errs.CodeDoubleBootstrap))
	}()

	Bootstrap(func() {}, constants.MinStackSize, Config{})
	t.Fatal("Bootstrap did not panic while a runtime was already active")
}

func TestOperationsRequireActiveRuntime(t *testing.T) {
	prev := current
	current = nil
	defer func() { current = prev }()

	for _, op := range []func(){
		func() { Spawn(func() {}, constants.MinStackSize) },
		func() { Send(1, 2) },
		func() { Recv() },
		func() { Yield() },
	} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				require.True(t, errs.Is(r.(error), errs.CodeUnknownTask))
			}()
			op()
		}()
	}
}
