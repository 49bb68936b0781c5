// Package synth tiles a finalized base cycle into a stereo stream of
// exact duration.
package synth

import (
	"math"
	"time"

	"github.com/pipelined/scope/effect"
	"github.com/pipelined/scope/pattern"
	"github.com/pipelined/scope/signal"
)

// Rate returns the output sample rate for a base rate and playback
// multiplier.
func Rate(base, multiplier int) int {
	return base * multiplier
}

// Synthesize tiles the base cycle cyclically and truncates to exactly
// round(sampleRate * duration) samples per channel. Channel 0 carries x,
// channel 1 carries y. The returned buffer is never mutated afterwards;
// replacements are produced by new calls.
func Synthesize(base pattern.Pattern, sampleRate int, duration time.Duration) (signal.Float64, error) {
	if base.Len() == 0 {
		return nil, effect.ErrEmptyPattern
	}
	target := int(math.Round(float64(sampleRate) * duration.Seconds()))
	if target < 0 {
		target = 0
	}
	return signal.Stereo(
		signal.Tile(base.X, target),
		signal.Tile(base.Y, target),
	), nil
}
