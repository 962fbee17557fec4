package loop_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/loop"
)

// ExampleScheduler drives an engine by hand. Hosts that own their own frame
// callback, such as ebiten, call Once with the elapsed host time every frame.
func ExampleScheduler() {
	e := engine.New(nil, engine.WithSeed(1))
	scheduler := loop.NewScheduler(loop.EngineSystems(e)...)

	for frame := range 120 {
		scheduler.Once(time.Duration(frame) * 50 * time.Millisecond)
	}

	fmt.Println("Row:", e.State().Current.Y)
	fmt.Println("Frames:", scheduler.GetStats().Frames)
	// Output:
	// Row: 5
	// Frames: 120
}

// ExampleScheduler_Run shows the blocking loop used by headless hosts.
func ExampleScheduler_Run() {
	e := engine.New(nil, engine.WithSeed(1))
	scheduler := loop.NewScheduler(loop.EngineSystems(e)...)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}
