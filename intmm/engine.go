// engine.go
package intmm

import "gorgonia.org/tensor"

// IntEng is a tensor.Engine that routes integer matrix products (and
// last-axis sums built on them) through a Multiplier. Everything else,
// including every float op, is delegated to the embedded tensor.StdEng.
type IntEng struct {
	tensor.StdEng
	mul *Multiplier
}

// NewIntEng constructs a new IntEng. Options are passed to the underlying
// Multiplier; without WithSelector the engine follows the process-wide
// acceleration flag.
func NewIntEng(opts ...Option) *IntEng {
	return &IntEng{
		StdEng: tensor.StdEng{},
		mul:    NewMultiplier(opts...),
	}
}

// Multiplier returns the Multiplier backing e.
func (e *IntEng) Multiplier() *Multiplier {
	return e.mul
}

// Compile-time check that *IntEng satisfies tensor.Engine.
var _ tensor.Engine = (*IntEng)(nil)
