package throttle

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNilCallback = errors.New("callback must not be nil")
	ErrNilRate     = errors.New("frame rate reader must not be nil")
)

// Observer is notified of the outcome of every call passed to a Throttle.
type Observer interface {
	// ObserveInvoke is called each time the callback runs.
	ObserveInvoke()
	// ObserveDefer is called each time a call is deferred, with the grown backoff.
	ObserveDefer(backoff time.Duration)
	// ObserveCoalesce is called for each call dropped by the leading-edge limiter.
	ObserveCoalesce()
}

// Config defines the throttle's minimum and maximum intervals.
type Config struct {
	Min time.Duration
	Max time.Duration
}

type options struct {
	clock    clockwork.Clock
	logFn    func() *slog.Logger
	tracer   trace.Tracer
	observer Observer
}

type nopObserver struct{}

func (nopObserver) ObserveInvoke()             {}
func (nopObserver) ObserveDefer(time.Duration) {}
func (nopObserver) ObserveCoalesce()           {}
