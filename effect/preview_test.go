package effect_test

import (
	"testing"

	"github.com/pipelined/scope/effect"
	"github.com/pipelined/scope/pattern"
	"github.com/stretchr/testify/assert"
)

func TestPreviewPassthrough(t *testing.T) {
	p, err := pattern.New([]float64{1, 0, -1}, []float64{0, 1, 0})
	assert.Nil(t, err)
	preview := effect.Config{Repeat: 200}.Preview(p)
	// no effects enabled: the pattern itself, repeat is irrelevant here
	assert.Equal(t, p.X, preview.X)
	assert.Equal(t, p.Y, preview.Y)
}

func TestPreviewInvalidPattern(t *testing.T) {
	preview := effect.Config{}.Preview(pattern.Pattern{})
	assert.Equal(t, 0, preview.Len())
}

func TestPreviewCaps(t *testing.T) {
	p, err := pattern.New([]float64{1, -1}, []float64{1, -1})
	assert.Nil(t, err)
	n := p.Len()

	tests := []struct {
		steps  int
		cycles int
	}{
		// table 4*steps-3 against the caps
		{steps: 10, cycles: 3},
		{steps: 60, cycles: 2},
		{steps: 200, cycles: 1},
	}

	for _, test := range tests {
		cfg := effect.Config{YFade: true, YFadeSteps: test.steps, Repeat: 500}
		preview := cfg.Preview(p)
		table := 4*test.steps - 3
		assert.Equal(t, test.cycles*table*n, preview.Len())
	}
}

func TestPreviewBlendsTables(t *testing.T) {
	p, err := pattern.New([]float64{1, 1}, []float64{1, 1})
	assert.Nil(t, err)
	cfg := effect.Config{
		YFade: true, YFadeSteps: 2,
		Shrink: true, ShrinkSteps: 2,
		Repeat: 100,
	}
	preview := cfg.Preview(p)

	// both tables advance per frame: fade 1,0,-1,0,1 against shrink 1,0,1
	yf := effect.FadeCycle(2)
	sh := effect.ShrinkCycle(2)
	frames := preview.Len() / p.Len()
	for frame := 0; frame < frames; frame++ {
		expected := yf[frame%len(yf)] * sh[frame%len(sh)]
		assert.InDelta(t, expected, preview.Y[frame*p.Len()], 1e-12)
	}
}

func TestPreviewAlternate(t *testing.T) {
	p, err := pattern.New([]float64{1, -1}, []float64{1, -1})
	assert.Nil(t, err)
	cfg := effect.Config{
		XFade: true, XFadeSteps: 2,
		YFade: true, YFadeSteps: 2,
		AlternateFade: true,
		Repeat:        100,
	}
	preview := cfg.Preview(p)
	table := 4*2 - 3
	// three cycles of the x sequence followed by the y sequence
	assert.Equal(t, 3*2*table*p.Len(), preview.Len())
}

func TestPreviewSweepShownStatic(t *testing.T) {
	p, err := pattern.New([]float64{1, -1}, []float64{0, 0})
	assert.Nil(t, err)
	cfg := effect.Config{Rotation: effect.RotationCCW, Speed: 90, Repeat: 50}
	preview := cfg.Preview(p)
	// sweeps render as a single unrotated frame
	assert.Equal(t, p.Len(), preview.Len())
	assert.Equal(t, p.X, preview.X)
}

func TestPreviewMirror(t *testing.T) {
	p, err := pattern.New([]float64{1, -1}, []float64{1, -1})
	assert.Nil(t, err)
	preview := effect.Config{Mirror: true, Repeat: 10}.Preview(p)
	assert.Equal(t, 4*p.Len(), preview.Len())
}
