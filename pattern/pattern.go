// Package pattern provides the closed 2D point patterns that feed the
// synthesis pipeline.
package pattern

import (
	"errors"

	"github.com/pipelined/scope/signal"
)

// ErrInvalidPattern is returned when axes are empty or of different length.
var ErrInvalidPattern = errors.New("invalid pattern: axes must be non-empty and of equal length")

// Pattern is an ordered sequence of (x, y) pairs. Both axes always have
// the same length.
type Pattern struct {
	X []float64
	Y []float64
}

// New creates a pattern from two equal-length axes.
func New(x, y []float64) (Pattern, error) {
	p := Pattern{X: x, Y: y}
	if err := p.Validate(); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

// Validate checks the axes invariant.
func (p Pattern) Validate() error {
	if len(p.X) == 0 || len(p.X) != len(p.Y) {
		return ErrInvalidPattern
	}
	return nil
}

// Len returns the number of points.
func (p Pattern) Len() int {
	return len(p.X)
}

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	x := make([]float64, len(p.X))
	y := make([]float64, len(p.Y))
	copy(x, p.X)
	copy(y, p.Y)
	return Pattern{X: x, Y: y}
}

// Normalized returns the pattern with both axes min-max normalized into
// [-1, 1] independently. A constant axis maps to zeros.
func (p Pattern) Normalized() Pattern {
	return Pattern{
		X: signal.Normalize(p.X),
		Y: signal.Normalize(p.Y),
	}
}
