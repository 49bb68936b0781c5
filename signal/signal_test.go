package signal_test

import (
	"math"
	"testing"
	"time"

	"github.com/pipelined/scope/signal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       []float64
		expected []float64
	}{
		{
			in:       []float64{0, 5, 10},
			expected: []float64{-1, 0, 1},
		},
		{
			in:       []float64{-1, 1},
			expected: []float64{-1, 1},
		},
		{
			in:       []float64{3, 3, 3},
			expected: []float64{0, 0, 0},
		},
		{
			in:       []float64{-10, -5},
			expected: []float64{-1, 1},
		},
		{
			in:       []float64{},
			expected: []float64{},
		},
	}

	for _, test := range tests {
		result := signal.Normalize(test.in)
		assert.Equal(t, len(test.expected), len(result))
		for i, v := range test.expected {
			assert.InDelta(t, v, result[i], 1e-12)
		}
	}
}

func TestFloat64Normalize(t *testing.T) {
	floats := signal.Float64{
		[]float64{0, 2, 4},
		[]float64{7, 7, 7},
	}
	result := floats.Normalize()
	assert.Equal(t, []float64{-1, 0, 1}, result[0])
	assert.Equal(t, []float64{0, 0, 0}, result[1])
	// source is untouched
	assert.Equal(t, []float64{0, 2, 4}, floats[0])
}

func TestTile(t *testing.T) {
	tests := []struct {
		in       []float64
		target   int
		expected []float64
	}{
		{
			in:       []float64{1, 2, 3},
			target:   7,
			expected: []float64{1, 2, 3, 1, 2, 3, 1},
		},
		{
			in:       []float64{1, 2, 3},
			target:   3,
			expected: []float64{1, 2, 3},
		},
		{
			in:       []float64{1, 2, 3},
			target:   2,
			expected: []float64{1, 2},
		},
		{
			in:       []float64{5},
			target:   4,
			expected: []float64{5, 5, 5, 5},
		},
		{
			in:       nil,
			target:   3,
			expected: []float64{0, 0, 0},
		},
		{
			in:       []float64{1, 2},
			target:   0,
			expected: []float64{},
		},
	}

	for _, test := range tests {
		result := signal.Tile(test.in, test.target)
		assert.Equal(t, test.expected, result)
	}
}

func TestStereo(t *testing.T) {
	buf := signal.Stereo([]float64{1, 2}, []float64{3, 4})
	assert.Equal(t, 2, buf.NumChannels())
	assert.Equal(t, 2, buf.Size())
	assert.Equal(t, []float64{1, 2}, buf[0])
	assert.Equal(t, []float64{3, 4}, buf[1])
}

func TestDurationOf(t *testing.T) {
	assert.Equal(t, time.Second, signal.DurationOf(100000, 100000))
	assert.Equal(t, 500*time.Millisecond, signal.DurationOf(1000, 500))
}

func TestSlice(t *testing.T) {
	buf := signal.Float64{
		[]float64{1, 2, 3, 4},
		[]float64{5, 6, 7, 8},
	}
	chunk := buf.Slice(2, 512)
	assert.Equal(t, 2, chunk.Size())
	assert.Equal(t, []float64{3, 4}, chunk[0])
	assert.Nil(t, buf.Slice(4, 1))
	assert.Nil(t, buf.Slice(-1, 1))
}

func TestAsInterInt(t *testing.T) {
	buf := signal.Float64{
		[]float64{1},
		[]float64{-1},
	}
	ints := buf.AsInterInt(signal.BitDepth16)
	assert.Equal(t, []int{math.MaxInt16 - 1, -(math.MaxInt16 - 1)}, ints)
	assert.Nil(t, signal.Float64(nil).AsInterInt(signal.BitDepth16))
}
