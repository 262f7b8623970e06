// Package fps estimates the current rendering frame rate by sampling
// display-refresh callbacks over a sliding time window.
//
// # Usage
//
// Create a [Cell], a [Sampler] bound to it, and start sampling against a
// [FrameScheduler]:
//
//	cell := fps.NewCell()
//	s, err := fps.NewSampler(cell, 100*time.Millisecond)
//	if err != nil { ... }
//
//	frames := fps.NewFrameQueue()
//	s.Start(ctx, frames)
//
//	// in the render loop, once per frame:
//	frames.Flush(time.Now())
//
// Readers call [Cell.Value] from any goroutine. The value starts at 1 and is
// replaced each time a sampling window closes.
//
// Hosts without a render loop of their own can drive sampling with a
// [Refresher], which fires frames from a clock at a fixed refresh rate.
package fps
