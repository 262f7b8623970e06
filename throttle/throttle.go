package throttle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/adamwoolhether/fpsthrottle/fps"
)

// Throttle rate-limits calls to a callback taking a T. Its interval grows
// from a minimum toward a maximum while the frame rate read from an
// fps.Reader stays at or below a threshold.
type Throttle[T any] struct {
	id        uuid.UUID
	fps       fps.Reader
	threshold float64
	callback  func(T)
	min       time.Duration
	max       time.Duration

	limiter  *rate.Limiter
	clock    clockwork.Clock
	logFn    func() *slog.Logger
	tracer   trace.Tracer
	observer Observer

	mu      sync.Mutex
	backoff time.Duration
	pending clockwork.Timer
	gen     uint64
}

// New returns a Throttle for callback. A maxDelay below minDelay is raised
// to minDelay, which disables the adaptive backoff.
func New[T any](fr fps.Reader, threshold float64, callback func(T), minDelay, maxDelay time.Duration, opts ...Option) (*Throttle[T], error) {
	if fr == nil {
		return nil, ErrNilRate
	}
	if callback == nil {
		return nil, ErrNilCallback
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := Throttle[T]{
		id:        uuid.New(),
		fps:       fr,
		threshold: threshold,
		callback:  callback,
		min:       minDelay,
		max:       max(maxDelay, minDelay),
		limiter:   rate.NewLimiter(rate.Every(minDelay), 1),
		clock:     clockwork.NewRealClock(),
		logFn:     func() *slog.Logger { return nil },
		tracer:    noop.NewTracerProvider().Tracer(""),
		observer:  nopObserver{},
		backoff:   minDelay,
	}

	if o.clock != nil {
		t.clock = o.clock
	}
	if o.logFn != nil {
		t.logFn = o.logFn
	}
	if o.tracer != nil {
		t.tracer = o.tracer
	}
	if o.observer != nil {
		t.observer = o.observer
	}

	return &t, nil
}

// Call passes arg through the leading-edge limiter and, if admitted, either
// runs the callback now or defers it according to the current frame rate.
// It is safe for concurrent use.
func (t *Throttle[T]) Call(arg T) {
	if !t.limiter.AllowN(t.clock.Now(), 1) {
		t.observer.ObserveCoalesce()
		return
	}

	t.mu.Lock()
	d := t.evaluate(arg)
	t.mu.Unlock()

	if d.run {
		t.invoke(arg, d)
	}
}

// Func returns Call as a function value with the callback's signature.
func (t *Throttle[T]) Func() func(T) {
	return t.Call
}

// Stop cancels the deferred call, if any. It reports whether one was pending.
func (t *Throttle[T]) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cancel()
}

// Backoff returns the current backoff. It is the minimum interval unless
// calls have been deferred since the callback last ran.
func (t *Throttle[T]) Backoff() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.backoff
}

// Config returns the effective minimum and maximum intervals.
func (t *Throttle[T]) Config() Config {
	return Config{Min: t.min, Max: t.max}
}

// ID identifies the throttle in logs and traces.
func (t *Throttle[T]) ID() string {
	return t.id.String()
}

// decision is the outcome of one evaluation of a call.
type decision struct {
	run     bool
	fps     float64
	backoff time.Duration // backoff reached before the evaluation
}

// evaluate replaces any deferred call and decides whether arg runs now.
// When it does not, a deferred evaluation of arg is scheduled. The frame
// rate is read on every evaluation, deferred ones included.
// t.mu must be held.
func (t *Throttle[T]) evaluate(arg T) decision {
	t.cancel()

	d := decision{
		fps:     t.fps.Value(),
		backoff: t.backoff,
	}

	if t.backoff >= t.max || d.fps > t.threshold {
		t.backoff = t.min
		d.run = true
		return d
	}

	t.backoff += t.min
	gen := t.gen
	t.pending = t.clock.AfterFunc(t.min, func() {
		t.fire(gen, arg)
	})

	t.observer.ObserveDefer(t.backoff)
	if logger := t.logFn(); logger != nil {
		logger.Debug("throttle call deferred", "id", t.id.String(), "fps", d.fps, "threshold", t.threshold, "backoff", t.backoff.String())
	}

	return d
}

// fire re-evaluates a deferred call unless a newer call replaced it after
// its timer had already fired.
func (t *Throttle[T]) fire(gen uint64, arg T) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	d := t.evaluate(arg)
	t.mu.Unlock()

	if d.run {
		t.invoke(arg, d)
	}
}

// cancel stops the deferred call and invalidates any fire already in flight.
// t.mu must be held.
func (t *Throttle[T]) cancel() bool {
	t.gen++

	if t.pending == nil {
		return false
	}

	t.pending.Stop()
	t.pending = nil

	return true
}

func (t *Throttle[T]) invoke(arg T, d decision) {
	_, span := t.tracer.Start(context.Background(), "throttle.invoke")
	span.SetAttributes(
		attribute.String("throttle.id", t.id.String()),
		attribute.Float64("fps", d.fps),
		attribute.Int64("backoff_ms", d.backoff.Milliseconds()),
	)
	defer span.End()

	t.observer.ObserveInvoke()
	if logger := t.logFn(); logger != nil {
		logger.Debug("throttle call invoked", "id", t.id.String(), "fps", d.fps, "threshold", t.threshold, "backoff", d.backoff.String())
	}

	t.callback(arg)
}
