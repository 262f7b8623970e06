package fps

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// FrameQueue is a FrameScheduler driven by the host's own render loop,
// which calls Flush once per rendered frame.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func(ts time.Time)
}

// NewFrameQueue returns an empty FrameQueue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func(ts time.Time)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, fn)
}

// Flush runs the callbacks queued before it was called, passing ts.
// Callbacks requested while flushing wait for the next Flush.
// It returns the number of callbacks run.
func (q *FrameQueue) Flush(ts time.Time) int {
	q.mu.Lock()
	fns := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn(ts)
	}

	return len(fns)
}

// Len returns the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// /////////////////////////////////////////////////////////////////

// Refresher is a FrameScheduler that fires frames from a clock at a fixed
// refresh rate, for hosts that have no render loop to drive a FrameQueue.
type Refresher struct {
	clock  clockwork.Clock
	period time.Duration

	mu      sync.Mutex
	timer   clockwork.Timer
	stopped bool
}

// NewRefresher returns a Refresher firing hz frames per second on clock.
// A nil clock uses the real clock.
func NewRefresher(hz float64, clock clockwork.Clock) (*Refresher, error) {
	if hz <= 0 {
		return nil, fmt.Errorf("refresh rate[%v] %w", hz, ErrMustNotBeZero)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	r := Refresher{
		clock:  clock,
		period: time.Duration(float64(time.Second) / hz),
	}

	return &r, nil
}

// Period returns the time between two frames.
func (r *Refresher) Period() time.Duration {
	return r.period
}

// RequestFrame schedules fn one period from now. Requests made after Stop
// are dropped.
func (r *Refresher) RequestFrame(fn func(ts time.Time)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}

	r.timer = r.clock.AfterFunc(r.period, func() {
		fn(r.clock.Now())
	})
}

// Stop cancels the most recently requested frame, if still outstanding,
// and drops later requests.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
