// Package effect composes the transform stages that turn a normalized
// point pattern into the base cycle of an XY stream. Stages apply in a
// fixed order: Y fade, X fade, mirror reflection, rotation. The
// configured repeat count contributes to the output length exactly once
// per pipeline run, no matter which stages are enabled.
package effect

import (
	"errors"
	"math"

	"github.com/pipelined/scope/pattern"
	"github.com/pipelined/scope/signal"
)

// ErrEmptyPattern is returned when the pipeline produces a zero-length
// base cycle.
var ErrEmptyPattern = errors.New("effect: empty base cycle")

// RotationMode selects the rotation stage behavior.
type RotationMode int

const (
	// RotationOff disables rotation.
	RotationOff RotationMode = iota
	// RotationStatic rotates the whole cycle by a fixed angle.
	RotationStatic
	// RotationCW sweeps clockwise, one step per repeat.
	RotationCW
	// RotationCCW sweeps counter-clockwise, one step per repeat.
	RotationCCW
)

// Config holds the independent effect toggles for one pipeline run.
type Config struct {
	YFade      bool
	YFadeSteps int
	YFadeSpeed int // fade factors held this many steps
	XFade      bool
	XFadeSteps int
	XFadeSpeed int
	// AlternateFade runs the X fade sequence then the Y fade sequence
	// per repeat instead of the factor cross product. Requires both
	// fades enabled.
	AlternateFade bool

	Shrink      bool
	ShrinkSteps int
	ShrinkSpeed int

	Mirror bool

	Rotation RotationMode
	Angle    float64 // degrees, static rotation
	Speed    float64 // degrees per repeat step, sweep rotation

	Repeat int
}

// sanitized returns a copy with out-of-range values raised to their
// minimums.
func (c Config) sanitized() Config {
	if c.YFadeSteps < 2 {
		c.YFadeSteps = 2
	}
	if c.XFadeSteps < 2 {
		c.XFadeSteps = 2
	}
	if c.ShrinkSteps < 2 {
		c.ShrinkSteps = 2
	}
	if c.YFadeSpeed < 1 {
		c.YFadeSpeed = 1
	}
	if c.XFadeSpeed < 1 {
		c.XFadeSpeed = 1
	}
	if c.ShrinkSpeed < 1 {
		c.ShrinkSpeed = 1
	}
	if c.Repeat < 1 {
		c.Repeat = 1
	}
	return c
}

// ramp returns n points linearly spaced from one value to another, both
// ends included.
func ramp(from, to float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = from
		return out
	}
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out
}

// FadeCycle builds one full fade traversal 1 → 0 → -1 → 0 → 1 with the
// given step count per ramp. Ramps after the first drop their leading
// sample, so the cycle length is 4*steps-3 and both ends equal 1.
func FadeCycle(steps int) []float64 {
	cycle := ramp(1, 0, steps)
	cycle = append(cycle, ramp(0, -1, steps)[1:]...)
	cycle = append(cycle, ramp(-1, 0, steps)[1:]...)
	cycle = append(cycle, ramp(0, 1, steps)[1:]...)
	return cycle
}

// ShrinkCycle builds one full scale traversal 1 → 0 → 1 of length
// 2*steps-1.
func ShrinkCycle(steps int) []float64 {
	cycle := ramp(1, 0, steps)
	cycle = append(cycle, ramp(0, 1, steps)[1:]...)
	return cycle
}

// repeatEach holds every value of v for k consecutive steps.
func repeatEach(v []float64, k int) []float64 {
	if k <= 1 {
		return v
	}
	out := make([]float64, 0, len(v)*k)
	for _, s := range v {
		for i := 0; i < k; i++ {
			out = append(out, s)
		}
	}
	return out
}

// Rotate rotates every point by deg degrees around the origin.
func Rotate(x, y []float64, deg float64) ([]float64, []float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	xr := make([]float64, len(x))
	yr := make([]float64, len(y))
	for i := range x {
		xr[i] = x[i]*cos - y[i]*sin
		yr[i] = x[i]*sin + y[i]*cos
	}
	return xr, yr
}

// MirrorReflect emits the four-stage reflection sequence: the pattern
// itself, its mirror about the x axis, then two stages with x negated
// and restored while y holds the final value of stage two. The held y
// produces the flag-like traces of the original scope art, it is not
// collapsed into a plain four-quadrant mirror.
func MirrorReflect(x, y []float64) ([]float64, []float64) {
	n := len(x)
	xr := make([]float64, 0, 4*n)
	yr := make([]float64, 0, 4*n)

	// stage 1: unchanged
	xr = append(xr, x...)
	yr = append(yr, y...)

	// stage 2: mirror about the x axis
	xr = append(xr, x...)
	for _, v := range y {
		yr = append(yr, -v)
	}

	yHold := 0.0
	if n > 0 {
		yHold = -y[n-1]
	}

	// stage 3: x negated, y held
	for _, v := range x {
		xr = append(xr, -v)
	}
	for i := 0; i < n; i++ {
		yr = append(yr, yHold)
	}

	// stage 4: x restored, y still held
	xr = append(xr, x...)
	for i := 0; i < n; i++ {
		yr = append(yr, yHold)
	}

	return xr, yr
}

// BaseCycle runs the pipeline over a normalized pattern and returns the
// fully composed cycle prior to duration tiling.
func (c Config) BaseCycle(p pattern.Pattern) (pattern.Pattern, error) {
	if err := p.Validate(); err != nil {
		return pattern.Pattern{}, err
	}
	c = c.sanitized()

	x, y := p.X, p.Y
	repeatConsumed := false

	if c.YFade || c.XFade || c.Shrink {
		x, y = c.expand(p)
		repeatConsumed = true
	}

	if c.Mirror {
		x, y = MirrorReflect(x, y)
	}

	switch c.Rotation {
	case RotationOff:
		if !repeatConsumed {
			x, y = tile(x, y, c.Repeat)
		}
	case RotationStatic:
		x, y = Rotate(x, y, c.Angle)
		x, y = signal.Normalize(x), signal.Normalize(y)
		if !repeatConsumed {
			x, y = tile(x, y, c.Repeat)
		}
	case RotationCW, RotationCCW:
		x, y = c.sweep(x, y, repeatConsumed)
	}

	if len(x) == 0 {
		return pattern.Pattern{}, ErrEmptyPattern
	}
	return pattern.Pattern{X: x, Y: y}, nil
}

// expand runs the fade and shrink stages. The per-value replication
// loop runs Repeat full factor cycles, which consumes the repeat count.
// Shrink factors cycle across the emitted copies, they never add a
// second factor of Repeat.
func (c Config) expand(p pattern.Pattern) ([]float64, []float64) {
	var xf, yf, sh []float64
	if c.XFade {
		xf = repeatEach(FadeCycle(c.XFadeSteps), c.XFadeSpeed)
	}
	if c.YFade {
		yf = repeatEach(FadeCycle(c.YFadeSteps), c.YFadeSpeed)
	}
	if c.Shrink {
		sh = repeatEach(ShrinkCycle(c.ShrinkSteps), c.ShrinkSpeed)
	}

	n := p.Len()
	var x, y []float64
	step := 0
	emit := func(xFactor, yFactor float64) {
		scale := 1.0
		if sh != nil {
			scale = sh[step%len(sh)]
		}
		for i := 0; i < n; i++ {
			x = append(x, p.X[i]*xFactor*scale)
			y = append(y, p.Y[i]*yFactor*scale)
		}
		step++
	}

	for cycle := 0; cycle < c.Repeat; cycle++ {
		switch {
		case xf != nil && yf != nil && c.AlternateFade:
			for _, fx := range xf {
				emit(fx, 1)
			}
			for _, fy := range yf {
				emit(1, fy)
			}
		case xf != nil && yf != nil:
			for _, fx := range xf {
				for _, fy := range yf {
					emit(fx, fy)
				}
			}
		case yf != nil:
			for _, fy := range yf {
				emit(1, fy)
			}
		case xf != nil:
			for _, fx := range xf {
				emit(fx, 1)
			}
		default: // shrink only
			emit(1, 1)
		}
	}
	return x, y
}

// sweep produces one rotated step per repeat. When an earlier stage
// already consumed the repeat count, the sequence is split into Repeat
// contiguous blocks and block i takes angle i; otherwise Repeat rotated
// copies of the whole sequence are emitted. A single global min-max
// pass renormalizes each axis afterwards, so amplitude may compress
// where the bounding box varies across the sweep.
func (c Config) sweep(x, y []float64, repeatConsumed bool) ([]float64, []float64) {
	direction := 1.0
	if c.Rotation == RotationCW {
		direction = -1
	}

	var xs, ys []float64
	if repeatConsumed {
		block := len(x) / c.Repeat
		xs = make([]float64, 0, len(x))
		ys = make([]float64, 0, len(y))
		for i := 0; i < c.Repeat; i++ {
			lo, hi := i*block, (i+1)*block
			if i == c.Repeat-1 {
				hi = len(x)
			}
			xr, yr := Rotate(x[lo:hi], y[lo:hi], direction*c.Speed*float64(i))
			xs = append(xs, xr...)
			ys = append(ys, yr...)
		}
	} else {
		xs = make([]float64, 0, len(x)*c.Repeat)
		ys = make([]float64, 0, len(y)*c.Repeat)
		for i := 0; i < c.Repeat; i++ {
			xr, yr := Rotate(x, y, direction*c.Speed*float64(i))
			xs = append(xs, xr...)
			ys = append(ys, yr...)
		}
	}
	return signal.Normalize(xs), signal.Normalize(ys)
}

// tile concatenates r copies of the sequence.
func tile(x, y []float64, r int) ([]float64, []float64) {
	if r <= 1 {
		return x, y
	}
	xs := make([]float64, 0, len(x)*r)
	ys := make([]float64, 0, len(y)*r)
	for i := 0; i < r; i++ {
		xs = append(xs, x...)
		ys = append(ys, y...)
	}
	return xs, ys
}
