package fps

import (
	"go.uber.org/atomic"
)

// Cell holds the frame rate written by a Sampler. It has a single writer and
// any number of readers on any goroutine.
type Cell struct {
	v *atomic.Float64
}

// NewCell returns a Cell holding InitialRate.
func NewCell() *Cell {
	return &Cell{v: atomic.NewFloat64(InitialRate)}
}

// Value returns the rate computed by the last completed sampling window.
func (c *Cell) Value() float64 {
	return c.v.Load()
}

func (c *Cell) store(rate float64) {
	c.v.Store(rate)
}
