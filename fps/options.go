package fps

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// SamplerOption configures a Sampler.
type SamplerOption func(*samplerOpts)

type samplerOpts struct {
	clock clockwork.Clock
	logFn func() *slog.Logger
}

// WithClock sets the clock used to stamp the first sample taken by
// [Sampler.Start]. Default is the real clock.
func WithClock(clock clockwork.Clock) SamplerOption {
	return func(opts *samplerOpts) {
		opts.clock = clock
	}
}

// WithLogger sets a lazily resolved logger. A nil-returning logFn disables logging.
func WithLogger(logFn func() *slog.Logger) SamplerOption {
	return func(opts *samplerOpts) {
		opts.logFn = logFn
	}
}
