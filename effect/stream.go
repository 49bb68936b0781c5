package effect

import (
	"math"
	"math/rand"

	"github.com/pipelined/scope/signal"
)

// Waveform selects the tremolo modulation shape.
type Waveform int

const (
	// WaveSine is a sine modulator.
	WaveSine Waveform = iota
	// WaveTriangle is a triangle modulator.
	WaveTriangle
	// WaveSquare is a square modulator.
	WaveSquare
)

// DistortionKind selects the clipping curve.
type DistortionKind int

const (
	// DistortSoft is tanh-style soft clipping.
	DistortSoft DistortionKind = iota
	// DistortHard is hard clipping at the threshold.
	DistortHard
	// DistortFold folds excursions beyond the threshold back inwards.
	DistortFold
)

// StreamConfig holds the effects applied to the tiled stream after
// synthesis. They run in a fixed order: noise, wavy, tremolo, ring
// modulation, distortion, echo, kaleidoscope.
type StreamConfig struct {
	XNoise    bool
	XNoiseAmp float64
	YNoise    bool
	YNoiseAmp float64

	XWavy     bool
	XWavyAmp  float64
	XWavyFreq float64
	YWavy     bool
	YWavyAmp  float64
	YWavyFreq float64

	Tremolo      bool
	TremoloDepth float64 // 0..1
	TremoloRate  float64 // Hz
	TremoloWave  Waveform

	RingMod     bool
	RingCarrier float64 // Hz
	RingMix     float64 // 0..1

	Distortion     bool
	DistortionKind DistortionKind
	Threshold      float64

	Echo      bool
	EchoCount int
	EchoDecay float64
	EchoDelay float64 // fraction of stream length

	Kaleidoscope bool
	Sections     int
	KMirror      bool
}

// Enabled reports whether any stream effect is switched on.
func (c StreamConfig) Enabled() bool {
	return c.XNoise || c.YNoise || c.XWavy || c.YWavy || c.Tremolo ||
		c.RingMod || c.Distortion || c.Echo || c.Kaleidoscope
}

// Apply runs the enabled stream effects over a stereo buffer and
// returns a new buffer; the input is never mutated. Kaleidoscope is the
// only stage that changes the stream length.
func (c StreamConfig) Apply(buf signal.Float64, sampleRate int) signal.Float64 {
	if buf.NumChannels() < 2 || buf.Size() == 0 || !c.Enabled() {
		return buf
	}
	x := append([]float64(nil), buf[0]...)
	y := append([]float64(nil), buf[1]...)

	if c.XNoise {
		addNoise(x, c.XNoiseAmp)
	}
	if c.YNoise {
		addNoise(y, c.YNoiseAmp)
	}

	if c.XWavy {
		addWavy(x, c.XWavyAmp, c.XWavyFreq, sampleRate)
	}
	if c.YWavy {
		addWavy(y, c.YWavyAmp, c.YWavyFreq, sampleRate)
	}

	if c.Tremolo {
		c.tremolo(x, y, sampleRate)
	}

	if c.RingMod {
		c.ringMod(x, y, sampleRate)
	}

	if c.Distortion {
		c.distort(x)
		c.distort(y)
	}

	if c.Echo {
		x = c.echo(x)
		y = c.echo(y)
	}

	if c.Kaleidoscope {
		x, y = c.kaleidoscope(x, y)
	}

	return signal.Stereo(x, y)
}

func addNoise(v []float64, amp float64) {
	for i := range v {
		v[i] += amp * (2*rand.Float64() - 1)
	}
}

func addWavy(v []float64, amp, freq float64, sampleRate int) {
	w := 2 * math.Pi * freq
	for i := range v {
		t := float64(i) / float64(sampleRate)
		v[i] += amp * math.Sin(w*t)
	}
}

func (c StreamConfig) tremolo(x, y []float64, sampleRate int) {
	depth := math.Min(math.Max(c.TremoloDepth, 0), 1)
	for i := range x {
		t := float64(i) / float64(sampleRate)
		var mod float64
		switch c.TremoloWave {
		case WaveTriangle:
			phase := c.TremoloRate * t
			mod = 2*math.Abs(2*(phase-math.Floor(phase+0.5))) - 1
		case WaveSquare:
			if math.Sin(2*math.Pi*c.TremoloRate*t) >= 0 {
				mod = 1
			} else {
				mod = -1
			}
		default:
			mod = math.Sin(2 * math.Pi * c.TremoloRate * t)
		}
		// keeps amplitude between (1-depth) and 1
		m := (1 - depth) + depth*(mod+1)/2
		x[i] *= m
		y[i] *= m
	}
}

func (c StreamConfig) ringMod(x, y []float64, sampleRate int) {
	mix := math.Min(math.Max(c.RingMix, 0), 1)
	for i := range x {
		t := float64(i) / float64(sampleRate)
		carrier := math.Sin(2 * math.Pi * c.RingCarrier * t)
		x[i] = (1-mix)*x[i] + mix*x[i]*carrier
		y[i] = (1-mix)*y[i] + mix*y[i]*carrier
	}
}

func (c StreamConfig) distort(v []float64) {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = 1
	}
	switch c.DistortionKind {
	case DistortHard:
		for i := range v {
			if v[i] > threshold {
				v[i] = threshold
			} else if v[i] < -threshold {
				v[i] = -threshold
			}
		}
	case DistortFold:
		for i := range v {
			if abs := math.Abs(v[i]); abs > threshold {
				folded := threshold - (abs - threshold)
				v[i] = math.Copysign(folded, v[i])
			}
		}
	default:
		for i := range v {
			v[i] = math.Tanh(v[i]/threshold) * threshold
		}
	}
}

func (c StreamConfig) echo(v []float64) []float64 {
	delay := int(float64(len(v)) * c.EchoDelay)
	if delay <= 0 {
		return v
	}
	out := append([]float64(nil), v...)
	for i := 1; i <= c.EchoCount; i++ {
		offset := i * delay
		if offset >= len(v) {
			break
		}
		amp := math.Pow(c.EchoDecay, float64(i))
		for j := offset; j < len(v); j++ {
			out[j] += v[j-offset] * amp
		}
	}
	return out
}

func (c StreamConfig) kaleidoscope(x, y []float64) ([]float64, []float64) {
	sections := c.Sections
	if sections < 2 {
		sections = 2
	}
	factor := sections
	if c.KMirror {
		factor *= 2
	}
	xs := make([]float64, 0, len(x)*factor)
	ys := make([]float64, 0, len(y)*factor)
	for i := 0; i < sections; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sections)
		sin, cos := math.Sincos(angle)
		for j := range x {
			xs = append(xs, x[j]*cos-y[j]*sin)
			ys = append(ys, x[j]*sin+y[j]*cos)
		}
		if c.KMirror {
			for j := range x {
				xs = append(xs, x[j]*cos+y[j]*sin)
				ys = append(ys, -x[j]*sin+y[j]*cos)
			}
		}
	}
	return xs, ys
}
