package fps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sampler measures the frame rate from the timestamps of consecutive frames
// and publishes it to a Cell whenever a window of samples spans at least
// the observing interval.
type Sampler struct {
	cell     *Cell
	interval time.Duration
	clock    clockwork.Clock
	logFn    func() *slog.Logger

	mu      sync.Mutex
	samples []time.Time
}

// NewSampler returns a Sampler writing to cell. The interval must be positive.
func NewSampler(cell *Cell, interval time.Duration, opts ...SamplerOption) (*Sampler, error) {
	if cell == nil {
		return nil, errors.New("cell must not be nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("observing interval[%s] %w", interval, ErrMustNotBeZero)
	}

	var o samplerOpts
	for _, opt := range opts {
		opt(&o)
	}

	s := Sampler{
		cell:     cell,
		interval: interval,
		clock:    clockwork.NewRealClock(),
		logFn:    func() *slog.Logger { return nil },
	}

	if o.clock != nil {
		s.clock = o.clock
	}
	if o.logFn != nil {
		s.logFn = o.logFn
	}

	return &s, nil
}

// Interval returns the observing interval.
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Tick records a frame at ts. Once the recorded frames span the observing
// interval, the rate is published to the Cell, rounded to one decimal place,
// and the window starts over. The returned bool reports whether that happened.
func (s *Sampler) Tick(ts time.Time) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append(s.samples, ts)

	elapsed := s.samples[len(s.samples)-1].Sub(s.samples[0])
	if elapsed < s.interval {
		return 0, false
	}

	count := len(s.samples)
	rate := frameRate(count, elapsed)
	s.cell.store(rate)
	s.samples = s.samples[:0]

	if logger := s.logFn(); logger != nil {
		logger.Debug("frame rate window closed", "fps", rate, "frames", count, "elapsed", elapsed.String())
	}

	return rate, true
}

// Start takes the first sample immediately and from then on requests one
// frame at a time from fs, sampling each. It returns at once; sampling
// continues for as long as fs keeps delivering frames and ctx is not done.
func (s *Sampler) Start(ctx context.Context, fs FrameScheduler) {
	var tick func(ts time.Time)
	tick = func(ts time.Time) {
		if ctx.Err() != nil {
			return
		}

		s.Tick(ts)
		fs.RequestFrame(tick)
	}

	tick(s.clock.Now())
}

// frameRate returns count frames over elapsed in frames per second,
// rounded to one decimal place.
func frameRate(count int, elapsed time.Duration) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)

	return math.Round(float64(count)/ms*1000*10) / 10
}
