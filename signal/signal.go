// Package signal provides an API to manipulate digital signals. It allows to:
//	- normalize channels into the [-1, 1] range expected by an XY display
//	- tile a short cycle into a stream of exact length
//	- convert non-interleaved data to interleaved ints for encoding
package signal

import (
	"math"
	"time"
)

// Float64 is a non-interleaved float64 signal.
type Float64 [][]float64

const (
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// BitDepth contains values required for float-to-int conversion.
type BitDepth int

// multiplier is used when float to int conversion is done.
func (bitDepth BitDepth) multiplier() int {
	switch bitDepth {
	case BitDepth16:
		return math.MaxInt16 - 1
	case BitDepth32:
		return math.MaxInt32 - 1
	default:
		return 1
	}
}

// Stereo packs x and y slices into a two-channel signal:
// channel 0 is x, channel 1 is y.
func Stereo(x, y []float64) Float64 {
	return Float64{x, y}
}

// DurationOf returns time duration of passed samples for this sample rate.
func DurationOf(sampleRate int, samples int64) time.Duration {
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second))
}

// NumChannels returns number of channels in this sample slice
func (floats Float64) NumChannels() int {
	return len(floats)
}

// Size returns number of samples in single block in this sample slice
func (floats Float64) Size() int {
	if floats.NumChannels() == 0 {
		return 0
	}
	return len(floats[0])
}

// Normalize maps v into [-1, 1] with a min-max pass. A constant slice
// maps to all zeros, not NaN.
func Normalize(v []float64) []float64 {
	result := make([]float64, len(v))
	if len(v) == 0 {
		return result
	}
	min, max := v[0], v[0]
	for _, s := range v {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if max == min {
		return result
	}
	scale := 2 / (max - min)
	for i, s := range v {
		result[i] = scale*(s-min) - 1
	}
	return result
}

// Normalize runs min-max normalization on every channel independently.
// Aspect ratio between channels is not preserved.
func (floats Float64) Normalize() Float64 {
	result := make([][]float64, floats.NumChannels())
	for i := range floats {
		result[i] = Normalize(floats[i])
	}
	return result
}

// Tile repeats v cyclically until target samples are produced. The last
// repetition is truncated, so the result length is exactly target.
func Tile(v []float64, target int) []float64 {
	result := make([]float64, target)
	if len(v) == 0 {
		return result
	}
	for i := 0; i < target; i += len(v) {
		copy(result[i:], v)
	}
	return result
}

// Tile tiles every channel to target samples.
func (floats Float64) Tile(target int) Float64 {
	result := make([][]float64, floats.NumChannels())
	for i := range floats {
		result[i] = Tile(floats[i], target)
	}
	return result
}

// Append buffers set to existing one one
// new buffer is returned if b is nil
func (floats Float64) Append(source Float64) Float64 {
	if floats == nil {
		floats = make([][]float64, source.NumChannels())
		for i := range floats {
			floats[i] = make([]float64, 0, source.Size())
		}
	}
	for i := range source {
		floats[i] = append(floats[i], source[i]...)
	}
	return floats
}

// Slice creates a new copy of buffer from start position with defined legth
// if buffer doesn't have enough samples - shorten block is returned
//
// if start >= buffer size, nil is returned
// if start + len >= buffer size, len is decreased till the end of slice
// if start < 0, nil is returned
func (floats Float64) Slice(start int, len int) Float64 {
	if floats == nil || start >= floats.Size() || start < 0 {
		return nil
	}
	end := start + len
	result := make([][]float64, floats.NumChannels())
	for i := range floats {
		if end > floats.Size() {
			end = floats.Size()
		}
		result[i] = append(result[i], floats[i][start:end]...)
	}
	return result
}

// AsInterInt converts float64 signal to interleaved int.
func (floats Float64) AsInterInt(bitDepth BitDepth) []int {
	var numChannels int
	if numChannels = len(floats); numChannels == 0 {
		return nil
	}

	// determine the multiplier for bit depth conversion
	multiplier := float64(bitDepth.multiplier())

	ints := make([]int, len(floats[0])*numChannels)

	for j := range floats {
		for i := range floats[j] {
			ints[i*numChannels+j] = int(floats[j][i] * multiplier)
		}
	}
	return ints
}
