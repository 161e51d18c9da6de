// Command green-demo runs a configurable producer/consumer pair on top
// of the scheduler and prints a metrics summary once both tasks have
// exited.
package main

import (
	"flag"
	"fmt"
	"os"

	green "github.com/ehrlich-b/go-green"
)

func main() {
	var (
		count     = flag.Int("n", 10, "number of messages the producer sends")
		stackSize = flag.Int("stack-size", green.DefaultStackSize, "stack size in bytes for each task")
		verbose   = flag.Bool("v", false, "verbose scheduler logging")
	)
	flag.Parse()

	logConfig := green.DefaultLogConfig()
	if *verbose {
		logConfig.Level = green.LevelDebug
	}
	logger := green.NewLogger(logConfig)
	green.SetDefaultLogger(logger)

	metrics := green.NewMetrics()
	options := green.Options{
		Logger:   logger,
		Observer: green.NewMetricsObserver(metrics),
	}

	if *stackSize < green.MinStackSize {
		fmt.Fprintf(os.Stderr, "stack-size %d is below the minimum %d\n", *stackSize, green.MinStackSize)
		os.Exit(1)
	}

	n := *count
	green.Bootstrap(func() {
		consumerID := green.Spawn(func() {
			for i := 0; i < n; i++ {
				msg := green.Recv()
				fmt.Printf("consume: %d\n", msg)
			}
		}, *stackSize)

		for i := uint64(0); i < uint64(n); i++ {
			fmt.Printf("produce: %d\n", i)
			green.Send(consumerID, i)
		}
	}, *stackSize, options)

	snap := metrics.Snapshot()
	fmt.Printf("\nspawned=%d exited=%d yields=%d sends=%d recvs=%d blocks=%d wakes=%d\n",
		snap.SpawnCount, snap.ExitCount, snap.YieldCount, snap.SendCount, snap.RecvCount, snap.BlockCount, snap.WakeCount)
}
