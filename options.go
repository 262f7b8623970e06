package fpsthrottle

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/fpsthrottle/fps"
)

// Option is a functional option for configuring a [Plugin] via [Install].
type Option func(*options) error
type options struct {
	cfg        Config
	fps        fps.Reader
	scheduler  fps.FrameScheduler
	clock      clockwork.Clock
	logger     *slog.Logger
	tracer     trace.Tracer
	registerer prometheus.Registerer
}

// WithConfig replaces the whole configuration, e.g. one decoded from JSON.
// Options applied after it override individual fields.
func WithConfig(cfg Config) Option {
	return func(o *options) error {
		o.cfg = cfg
		return nil
	}
}

// WithFPS supplies an existing frame-rate source. No sampling takes place and
// the observing interval is ignored.
func WithFPS(r fps.Reader) Option {
	return func(o *options) error {
		if r == nil {
			return errors.New("frame rate source must not be nil")
		}
		o.fps = r
		return nil
	}
}

// WithObservingInterval sets the sampling window. Default is 100ms.
func WithObservingInterval(d time.Duration) Option {
	return func(o *options) error {
		o.cfg.ObservingInterval = d
		return nil
	}
}

// WithFPSThrottlingLimit sets the frame rate at or below which throttles
// back off. Default is 30.
func WithFPSThrottlingLimit(limit float64) Option {
	return func(o *options) error {
		o.cfg.FPSThrottlingLimit = limit
		return nil
	}
}

// WithRefreshRate sets the rate, in Hz, of the default clock-driven frame
// source. Ignored with WithFrameScheduler or WithFPS. Default is 60.
func WithRefreshRate(hz float64) Option {
	return func(o *options) error {
		o.cfg.RefreshRate = hz
		return nil
	}
}

// WithFrameScheduler sets the display-refresh source sampled for frames,
// typically an [fps.FrameQueue] flushed by the host's render loop.
func WithFrameScheduler(fs fps.FrameScheduler) Option {
	return func(o *options) error {
		if fs == nil {
			return errors.New("frame scheduler must not be nil")
		}
		o.scheduler = fs
		return nil
	}
}

// WithClock sets the clock used for sampling and throttling.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) error {
		if clock == nil {
			return errors.New("clock must not be nil")
		}
		o.clock = clock
		return nil
	}
}

// WithLogger injects a custom [slog.Logger]. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer injects the tracer recording throttled callback executions.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithRegisterer enables Prometheus metrics for the frame rate and every
// throttle created from the plugin.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registerer must not be nil")
		}
		o.registerer = reg
		return nil
	}
}
