// Package throttle provides a rate limiter for callbacks whose interval
// adapts to the current frame rate.
//
// # Usage
//
// Wrap a callback with [New], bound to a frame-rate [fps.Reader] and a
// threshold:
//
//	t, err := throttle.New(cell, 30, func(e Event) { redraw(e) },
//		100*time.Millisecond, // minimum interval
//		500*time.Millisecond, // maximum backoff
//	)
//	handler := t.Func()
//
// Calls are first passed through a leading-edge limiter: the first call in
// each minimum interval goes through, later calls in the same interval are
// dropped. While the frame rate is above the threshold a call that goes
// through runs the callback immediately. At or below the threshold it is
// deferred by the minimum interval, and each deferral grows the backoff by
// the minimum interval; once the backoff reaches the maximum the callback
// runs and the backoff resets. A newer call always replaces a deferred one.
//
// With a maximum of zero (or anything below the minimum) the backoff never
// grows and the throttle behaves as a plain fixed-interval limiter.
package throttle
