package throttle

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Throttle.
type Option func(*options)

// WithClock sets the clock driving the leading-edge limiter and deferred
// calls. Default is the real clock.
func WithClock(clock clockwork.Clock) Option {
	return func(opts *options) {
		opts.clock = clock
	}
}

// WithLogger sets a lazily resolved logger, making option ordering at the
// caller irrelevant. A nil-returning logFn disables logging.
func WithLogger(logFn func() *slog.Logger) Option {
	return func(opts *options) {
		opts.logFn = logFn
	}
}

// WithTracer sets the tracer used to record callback executions.
// Default is a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(opts *options) {
		opts.tracer = tracer
	}
}

// WithObserver registers an Observer for call outcomes.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}
