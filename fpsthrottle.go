// Package fpsthrottle measures the rendering frame rate of a host and hands
// out throttles whose interval adapts to it.
//
// # Usage
//
// Install once per host:
//
//	p, err := fpsthrottle.Install(ctx,
//		fpsthrottle.WithObservingInterval(100*time.Millisecond),
//		fpsthrottle.WithFPSThrottlingLimit(30),
//	)
//	if err != nil { ... }
//	defer p.Close()
//
// Read the current frame rate with p.FPS().Value(), and wrap expensive
// handlers:
//
//	onScroll, err := p.Throttle(redraw, 50*time.Millisecond, 400*time.Millisecond)
//
// Handlers taking an argument use [MinMaxThrottle].
//
// By default frames come from a clock-driven [fps.Refresher] at 60 Hz. Hosts
// with a render loop should pass an [fps.FrameQueue] via [WithFrameScheduler]
// and flush it once per rendered frame. Hosts that already measure their
// frame rate pass it via [WithFPS] and no sampling takes place.
package fpsthrottle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/fpsthrottle/fps"
	"github.com/adamwoolhether/fpsthrottle/metrics"
	"github.com/adamwoolhether/fpsthrottle/throttle"
)

// Plugin is an installed frame-rate source bound to a throttling threshold.
type Plugin struct {
	fps       fps.Reader
	threshold float64
	clock     clockwork.Clock
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *metrics.Metrics

	refresher *fps.Refresher
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Install validates the configuration and, unless a frame-rate source was
// supplied with WithFPS, starts sampling frames. Sampling stops when ctx is
// done or Close is called.
func Install(ctx context.Context, optFns ...Option) (*Plugin, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	if err := Validate(opts.cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg := opts.cfg.withDefaults()

	p := Plugin{
		threshold: cfg.FPSThrottlingLimit,
		clock:     clockwork.NewRealClock(),
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer("no-op tracer"),
		cancel:    func() {},
	}

	if opts.clock != nil {
		p.clock = opts.clock
	}
	if opts.logger != nil {
		p.logger = opts.logger
	}
	if opts.tracer != nil {
		p.tracer = opts.tracer
	}

	if opts.fps != nil {
		p.fps = opts.fps
		p.logger.Info("using host frame rate source", "threshold", p.threshold)
	}

	var sampler *fps.Sampler
	if p.fps == nil {
		cell := fps.NewCell()

		s, err := fps.NewSampler(cell, cfg.ObservingInterval,
			fps.WithClock(p.clock),
			fps.WithLogger(func() *slog.Logger { return p.logger }),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring sampler: %w", err)
		}

		p.fps = cell
		sampler = s
	}

	if opts.registerer != nil {
		m, err := metrics.New(opts.registerer, p.fps)
		if err != nil {
			return nil, fmt.Errorf("configuring metrics: %w", err)
		}
		p.metrics = m
	}

	if sampler != nil {
		scheduler := opts.scheduler
		if scheduler == nil {
			r, err := fps.NewRefresher(cfg.RefreshRate, p.clock)
			if err != nil {
				return nil, fmt.Errorf("configuring refresher: %w", err)
			}
			p.refresher = r
			scheduler = r
		}

		ctx, p.cancel = context.WithCancel(ctx)
		sampler.Start(ctx, scheduler)

		p.logger.Info("frame rate sampling started", "interval", cfg.ObservingInterval.String(), "threshold", p.threshold)
	}

	return &p, nil
}

// FPS returns the frame-rate source throttles read from. Consumers treat it
// as read-only.
func (p *Plugin) FPS() fps.Reader {
	return p.fps
}

// Threshold returns the frame rate at or below which throttles back off.
func (p *Plugin) Threshold() float64 {
	return p.threshold
}

// Throttle wraps callback in an adaptive throttle bound to the plugin's
// frame rate and threshold. A maxDelay of zero gives a plain throttle with
// interval minDelay.
func (p *Plugin) Throttle(callback func(), minDelay, maxDelay time.Duration) (func(), error) {
	if callback == nil {
		return nil, throttle.ErrNilCallback
	}

	t, err := MinMaxThrottle(p, func(struct{}) { callback() }, minDelay, maxDelay)
	if err != nil {
		return nil, err
	}

	return func() { t.Call(struct{}{}) }, nil
}

// MinMaxThrottle is the typed form of Plugin.Throttle, for callbacks taking
// an argument. Multiple arguments travel in a struct.
func MinMaxThrottle[T any](p *Plugin, callback func(T), minDelay, maxDelay time.Duration) (*throttle.Throttle[T], error) {
	opts := []throttle.Option{
		throttle.WithClock(p.clock),
		throttle.WithLogger(func() *slog.Logger { return p.logger }),
		throttle.WithTracer(p.tracer),
	}
	if p.metrics != nil {
		opts = append(opts, throttle.WithObserver(p.metrics))
	}

	t, err := throttle.New(p.fps, p.threshold, callback, minDelay, maxDelay, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating throttle: %w", err)
	}

	return t, nil
}

// Close stops frame sampling. Throttles handed out keep working against the
// last measured frame rate. Close is idempotent.
func (p *Plugin) Close() error {
	p.closeOnce.Do(func() {
		p.cancel()
		if p.refresher != nil {
			p.refresher.Stop()
		}
		p.logger.Info("frame rate sampling stopped")
	})

	return nil
}
