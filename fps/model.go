package fps

import (
	"errors"
	"time"
)

const (
	// DefaultObservingInterval is the sampling window used when none is configured.
	DefaultObservingInterval = 100 * time.Millisecond

	// DefaultRefreshRate is the frame rate, in Hz, of a Refresher built without one.
	DefaultRefreshRate = 60

	// InitialRate is reported until the first sampling window closes.
	InitialRate = 1
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
)

// Reader exposes the most recently measured frame rate in frames per second.
type Reader interface {
	Value() float64
}

// FrameScheduler invokes fn once, before the next display refresh, with the
// time of that refresh. Each call schedules exactly one invocation.
type FrameScheduler interface {
	RequestFrame(fn func(ts time.Time))
}
