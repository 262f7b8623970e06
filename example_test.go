package fpsthrottle_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/adamwoolhether/fpsthrottle"
	"github.com/adamwoolhether/fpsthrottle/fps"
)

// hostRate stands in for a frame-rate measurement the host already has.
type hostRate float64

func (r hostRate) Value() float64 { return float64(r) }

func ExampleInstall() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	frames := fps.NewFrameQueue()
	p, err := fpsthrottle.Install(context.Background(),
		fpsthrottle.WithFrameScheduler(frames),
		fpsthrottle.WithObservingInterval(100*time.Millisecond),
		fpsthrottle.WithLogger(logger),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer p.Close()

	fmt.Println("threshold:", p.Threshold())
	fmt.Println("fps:", p.FPS().Value())
	// Output:
	// threshold: 30
	// fps: 1
}

func ExamplePlugin_Throttle() {
	p, err := fpsthrottle.Install(context.Background(), fpsthrottle.WithFPS(hostRate(60)))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer p.Close()

	redraw, err := p.Throttle(func() { fmt.Println("redraw") }, 50*time.Millisecond, 400*time.Millisecond)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// At 60 fps the first call runs at once; the rest of the burst is dropped.
	for i := 0; i < 5; i++ {
		redraw()
	}
	// Output: redraw
}

func ExampleMinMaxThrottle() {
	p, err := fpsthrottle.Install(context.Background(), fpsthrottle.WithFPS(hostRate(60)))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer p.Close()

	type scroll struct{ x, y int }
	t, err := fpsthrottle.MinMaxThrottle(p, func(s scroll) { fmt.Println("scrolled to", s.x, s.y) },
		50*time.Millisecond, 400*time.Millisecond)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	t.Call(scroll{x: 0, y: 120})
	t.Call(scroll{x: 0, y: 240})
	// Output: scrolled to 0 120
}
