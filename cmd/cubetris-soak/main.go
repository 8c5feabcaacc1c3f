// Command cubetris-soak plays the game headlessly with random keys for a fixed time and prints
// a timing report. The last frame can be saved as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/cubetris/game"
	"github.com/plus3/cubetris/input"
	"github.com/plus3/cubetris/render/raster"
	"github.com/plus3/cubetris/settings"
	"github.com/plus3/cubetris/tick"
)

var moveKeys = []input.Key{input.KeyRotate, input.KeyLeft, input.KeyRight, input.KeyDown}

// autopilot presses and releases random movement keys.
type autopilot struct {
	rng     *rand.Rand
	tracker *input.Tracker
}

func (a *autopilot) act() {
	k := moveKeys[a.rng.IntN(len(moveKeys))]
	switch {
	case a.tracker.Down(k):
		a.tracker.Release(k)
	case a.rng.IntN(3) == 0:
		a.tracker.Press(k)
	}
}

// driver runs the autopilot and then one session frame per tick, restarting finished games
// and timing each session frame into r.
func driver(session *game.Session, pilot *autopilot, r *Report, dt float64) *tick.Scheduler {
	d := tick.NewScheduler()
	d.Register(tick.Func("pilot", func(*tick.Frame) {
		if !session.Running() {
			if r.TotalFrames > 0 {
				r.recordGame(session.Score())
			}
			if err := session.Start(); err != nil {
				log.Fatalf("Failed to start game: %v", err)
			}
		}
		pilot.act()
	}))
	d.Register(tick.Func("session", func(*tick.Frame) {
		start := time.Now()
		session.Tick(dt)
		r.TickTime.Samples = append(r.TickTime.Samples, time.Since(start))
		r.TotalFrames++
	}))
	return d
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Uint64("seed", 1, "Seed for piece selection and the autopilot.")
	difficulty := flag.String("difficulty", "Normal", "Difficulty: Easy, Normal or Hard.")
	bricks := flag.String("bricks", "Standard", "Brick set: Standard or Extended.")
	pngPath := flag.String("png", "", "Write the final board frame to this PNG file.")
	width := flag.Int("width", 240, "Board surface width in pixels.")
	height := flag.Int("height", 440, "Board surface height in pixels.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	realtime := flag.Bool("realtime", false, "Pace frames at the game's frame rate instead of running flat out.")
	verbose := flag.Bool("v", false, "Log game events.")
	flag.Parse()

	if *verbose {
		game.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	log.Println("Starting soak...")

	board, err := raster.New(*width, *height)
	if err != nil {
		log.Fatalf("Failed to create board surface: %v", err)
	}
	defer board.Close()
	preview, err := raster.New(*width/2, *width/2)
	if err != nil {
		log.Fatalf("Failed to create preview surface: %v", err)
	}
	defer preview.Close()

	store := settings.NewMemoryStore()
	if err := store.Set(settings.NameDifficulty, *difficulty); err != nil {
		log.Fatal(err)
	}
	if err := store.Set(settings.NameBrickSet, *bricks); err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()
	session, err := game.New(cfg, board, preview,
		game.WithSettingsStore(store),
		game.WithRand(rand.New(rand.NewPCG(*seed, *seed))),
	)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	session.Resize(*width, *height, *width/2, *width/2)

	pilot := &autopilot{rng: rand.New(rand.NewPCG(*seed, ^*seed)), tracker: session.Input()}

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Difficulty:     *difficulty,
		Bricks:         *bricks,
		Realtime:       *realtime,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	d := driver(session, pilot, report, 1.0/float64(cfg.FramesPerSecond))
	startTime := time.Now()
	if *realtime {
		d.Run(ctx, time.Second/time.Duration(cfg.FramesPerSecond))
	} else {
		for ctx.Err() == nil {
			d.Once(0)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	report.Systems = session.Scheduler().Stats().Systems
	report.HighScore = session.HighScore()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")
	if err := board.Err(); err != nil {
		log.Printf("Board surface reported: %v", err)
	}

	if *pngPath != "" {
		if err := board.SavePNG(*pngPath); err != nil {
			log.Fatalf("Failed to save %s: %v", *pngPath, err)
		}
		log.Printf("Final frame written to %s\n", *pngPath)
	}

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
