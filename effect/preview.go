package effect

import (
	"github.com/pipelined/scope/pattern"
	"github.com/pipelined/scope/signal"
)

// preview cycle caps, keyed by the longest factor table. Larger tables
// render fewer cycles to keep the instant preview cheap.
const (
	previewHeavy  = 500
	previewMedium = 200
)

// Preview builds a capped render of the effect chain for instant visual
// feedback while the full regeneration is still debounced. The number
// of fade and shrink cycles is limited by table length; sweeps are shown
// as a static frame. The result is never used for the playable buffer.
func (c Config) Preview(p pattern.Pattern) pattern.Pattern {
	if p.Validate() != nil {
		return pattern.Pattern{}
	}
	c = c.sanitized()

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

	x, y := p.X, p.Y
	if xf != nil || yf != nil || sh != nil {
		x, y = previewExpand(p, xf, yf, sh, c.AlternateFade)
	}

	if c.Mirror {
		x, y = MirrorReflect(x, y)
	}

	if c.Rotation == RotationStatic {
		x, y = Rotate(x, y, c.Angle)
		x, y = signal.Normalize(x), signal.Normalize(y)
	}

	return pattern.Pattern{X: x, Y: y}
}

func previewCycles(maxTable int) int {
	switch {
	case maxTable > previewHeavy:
		return 1
	case maxTable > previewMedium:
		return 2
	default:
		return 3
	}
}

func previewExpand(p pattern.Pattern, xf, yf, sh []float64, alternate bool) ([]float64, []float64) {
	maxTable := len(xf)
	if len(yf) > maxTable {
		maxTable = len(yf)
	}
	if len(sh) > maxTable {
		maxTable = len(sh)
	}
	cycles := previewCycles(maxTable)

	n := p.Len()
	var x, y []float64
	emit := func(xFactor, yFactor, scale float64) {
		for i := 0; i < n; i++ {
			x = append(x, p.X[i]*xFactor*scale)
			y = append(y, p.Y[i]*yFactor*scale)
		}
	}

	if alternate && xf != nil && yf != nil && sh == nil {
		for cycle := 0; cycle < cycles; cycle++ {
			for _, fx := range xf {
				emit(fx, 1, 1)
			}
			for _, fy := range yf {
				emit(1, fy, 1)
			}
		}
		return x, y
	}

	// blended: every table cycles through its own sequence per frame
	total := maxTable * cycles
	for frame := 0; frame < total; frame++ {
		xFactor, yFactor, scale := 1.0, 1.0, 1.0
		if xf != nil {
			xFactor = xf[frame%len(xf)]
		}
		if yf != nil {
			yFactor = yf[frame%len(yf)]
		}
		if sh != nil {
			scale = sh[frame%len(sh)]
		}
		emit(xFactor, yFactor, scale)
	}
	return x, y
}
