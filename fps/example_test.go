package fps_test

import (
	"context"
	"fmt"
	"time"

	"github.com/adamwoolhether/fpsthrottle/fps"
)

func ExampleSampler_Start() {
	cell := fps.NewCell()
	s, err := fps.NewSampler(cell, 100*time.Millisecond)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := fps.NewFrameQueue()
	s.Start(ctx, frames)

	fmt.Println("before first window:", cell.Value())

	// Drive 20 frames, 20ms apart, from the host render loop.
	start := time.Now()
	for i := 1; i <= 20; i++ {
		frames.Flush(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}

	fmt.Println("after first window:", cell.Value() > 1)
	// Output:
	// before first window: 1
	// after first window: true
}

func ExampleSampler_Tick() {
	cell := fps.NewCell()
	s, _ := fps.NewSampler(cell, 100*time.Millisecond)

	start := time.Now()
	for i := 0; i <= 5; i++ {
		if rate, ok := s.Tick(start.Add(time.Duration(i) * 20 * time.Millisecond)); ok {
			fmt.Println("fps:", rate)
		}
	}
	// Output: fps: 60
}
