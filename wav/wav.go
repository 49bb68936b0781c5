// Package wav exports a synthesized stereo stream to a WAV container.
package wav

import (
	"errors"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pipelined/scope/signal"
)

// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
var ErrUnsupportedBitDepth = errors.New("only 16 and 32 bit depth is supported")

// chunkSize is the number of frames written per encoder call.
const chunkSize = 512

// wavFormat is PCM.
const wavFormat = 1

// Encode writes the buffer to a WAV file at path, preserving the sample
// rate the stream was synthesized at.
func Encode(path string, buf signal.Float64, sampleRate int, bitDepth signal.BitDepth) error {
	if bitDepth != signal.BitDepth16 && bitDepth != signal.BitDepth32 {
		return ErrUnsupportedBitDepth
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	numChannels := buf.NumChannels()
	e := wav.NewEncoder(f, sampleRate, int(bitDepth), numChannels, wavFormat)

	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: int(bitDepth),
	}
	for pos := 0; pos < buf.Size(); pos += chunkSize {
		chunk := buf.Slice(pos, chunkSize)
		ib.Data = chunk.AsInterInt(bitDepth)
		if err = e.Write(ib); err != nil {
			f.Close()
			return err
		}
	}
	if err = e.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
