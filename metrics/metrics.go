// Package metrics exports the sampled frame rate and throttle call outcomes
// as Prometheus collectors.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adamwoolhether/fpsthrottle/fps"
)

const namespace = "fpsthrottle"

// Outcome label values of the calls counter.
const (
	OutcomeInvoked   = "invoked"
	OutcomeDeferred  = "deferred"
	OutcomeCoalesced = "coalesced"
)

// Metrics holds the collectors. It implements throttle.Observer, so one
// Metrics can be shared by every throttle bound to the same frame rate.
type Metrics struct {
	frameRate prometheus.GaugeFunc
	calls     *prometheus.CounterVec
	backoff   prometheus.Histogram
}

// New registers the collectors with reg. The frame-rate gauge reads fr at
// scrape time.
func New(reg prometheus.Registerer, fr fps.Reader) (*Metrics, error) {
	if reg == nil {
		return nil, errors.New("registerer must not be nil")
	}
	if fr == nil {
		return nil, errors.New("frame rate reader must not be nil")
	}

	m := Metrics{
		frameRate: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frame_rate",
			Help:      "Frame rate measured over the last completed sampling window, in frames per second.",
		}, fr.Value),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Throttled calls by outcome.",
		}, []string{"outcome"}),
		backoff: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backoff_seconds",
			Help:      "Backoff reached by deferred calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.frameRate, m.calls, m.backoff} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return &m, nil
}

// ObserveInvoke counts a callback execution.
func (m *Metrics) ObserveInvoke() {
	m.calls.WithLabelValues(OutcomeInvoked).Inc()
}

// ObserveDefer counts a deferred call and records its backoff.
func (m *Metrics) ObserveDefer(backoff time.Duration) {
	m.calls.WithLabelValues(OutcomeDeferred).Inc()
	m.backoff.Observe(backoff.Seconds())
}

// ObserveCoalesce counts a call dropped by the leading-edge limiter.
func (m *Metrics) ObserveCoalesce() {
	m.calls.WithLabelValues(OutcomeCoalesced).Inc()
}
