package green_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	green "github.com/ehrlich-b/go-green"
)

func TestProducerConsumer(t *testing.T) {
	var consumed []uint64
	observer := &green.RecordingObserver{}

	green.Bootstrap(func() {
		consumer := green.Spawn(func() {
			for i := 0; i < 3; i++ {
				consumed = append(consumed, green.Recv())
			}
		}, green.DefaultStackSize)

		for i := uint64(0); i < 3; i++ {
			green.Send(consumer, i*10)
		}
	}, green.DefaultStackSize, green.Options{Observer: observer})

	require.Equal(t, []uint64{0, 10, 20}, consumed)

	var spawns, recvs int
	for _, e := range observer.Snapshot() {
		switch e.Kind {
		case "spawn":
			spawns++
		case "recv":
			recvs++
		}
	}
	require.Equal(t, 2, spawns) // Bootstrap's first task plus the consumer
	require.Equal(t, 3, recvs)
}

func TestSpawnReturnsDistinctIDs(t *testing.T) {
	var a, b uint64

	green.Bootstrap(func() {
		a = green.Spawn(func() {}, green.MinStackSize)
		b = green.Spawn(func() {}, green.MinStackSize)
	}, green.DefaultStackSize, green.Options{})

	require.NotEqual(t, a, b)
}
