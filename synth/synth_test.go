package synth_test

import (
	"testing"
	"time"

	"github.com/pipelined/scope/effect"
	"github.com/pipelined/scope/pattern"
	"github.com/pipelined/scope/synth"
	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	assert.Equal(t, 100000, synth.Rate(1000, 100))
	assert.Equal(t, 44100, synth.Rate(44100, 1))
}

func TestSynthesize(t *testing.T) {
	base, err := pattern.New([]float64{1, 0, -1, 0}, []float64{0, 1, 0, -1})
	assert.Nil(t, err)

	tests := []struct {
		sampleRate int
		duration   time.Duration
		expected   int
	}{
		{
			sampleRate: 100000,
			duration:   time.Second,
			expected:   100000,
		},
		{
			// target is not a multiple of the cycle length
			sampleRate: 10,
			duration:   time.Second,
			expected:   10,
		},
		{
			sampleRate: 1000,
			duration:   1500 * time.Millisecond,
			expected:   1500,
		},
		{
			// sub-sample durations round
			sampleRate: 3,
			duration:   500 * time.Millisecond,
			expected:   2,
		},
		{
			sampleRate: 1000,
			duration:   0,
			expected:   0,
		},
	}

	for _, test := range tests {
		buf, err := synth.Synthesize(base, test.sampleRate, test.duration)
		assert.Nil(t, err)
		assert.Equal(t, 2, buf.NumChannels())
		assert.Equal(t, test.expected, buf.Size())
	}
}

func TestSynthesizeTiling(t *testing.T) {
	base, err := pattern.New([]float64{1, 2, 3}, []float64{4, 5, 6})
	assert.Nil(t, err)
	buf, err := synth.Synthesize(base, 7, time.Second)
	assert.Nil(t, err)
	// the cycle repeats and the last repetition truncates mid-cycle
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1}, buf[0])
	assert.Equal(t, []float64{4, 5, 6, 4, 5, 6, 4}, buf[1])
}

func TestSynthesizeEmpty(t *testing.T) {
	_, err := synth.Synthesize(pattern.Pattern{}, 1000, time.Second)
	assert.Equal(t, effect.ErrEmptyPattern, err)
}

func TestSynthesizeScenario(t *testing.T) {
	// a four point diamond at 1000x100 for one second fills exactly
	// one second of samples with the diamond repeated end to end
	base, err := pattern.New([]float64{1, 0, -1, 0}, []float64{0, 1, 0, -1})
	assert.Nil(t, err)
	rate := synth.Rate(1000, 100)
	buf, err := synth.Synthesize(base, rate, time.Second)
	assert.Nil(t, err)
	assert.Equal(t, 100000, buf.Size())
	assert.Equal(t, 1.0, buf[0][0])
	assert.Equal(t, 1.0, buf[0][4])
	assert.Equal(t, -1.0, buf[1][99999])
}
