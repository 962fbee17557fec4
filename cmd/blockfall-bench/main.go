package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/session"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall-clock time to keep playing for.")
	step := flag.Duration("step", 16*time.Millisecond, "Simulated time between frames.")
	seed := flag.Uint64("seed", 1, "Randomizer seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting autoplay benchmark...")

	s := session.New(session.Options{
		EngineOptions: []engine.Option{engine.WithSeed(*seed)},
	})
	player := autoplay.NewPlayer(s)
	player.AutoRestart = true
	s.Scheduler.Register(player)

	report := &Report{
		Duration:       *duration,
		Step:           *step,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var now time.Duration

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			s.Frame(now)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			now += *step
		}
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = now
	report.FrameTime.Finalize()
	report.Scheduler = s.Scheduler.GetStats()
	report.Games = summarize(player.Results)
	report.Pieces = player.Pieces
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Autoplay Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
