// Package portaudio plays stereo buffers through the default audio
// device. Player satisfies the playback.Player contract: Play blocks
// for one full pass and Stop interrupts it between chunk writes.
package portaudio

import (
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/pipelined/scope/signal"
)

// chunkSize is the number of frames written to the stream at once.
const chunkSize = 512

// Player writes buffers to a portaudio stream.
type Player struct {
	mu   sync.Mutex
	quit chan struct{}
}

// New returns a new player for the default output device.
func New() *Player {
	return &Player{}
}

// Play initializes portaudio, opens the default stream and writes the
// buffer chunk by chunk until the end or until Stop is called.
func (p *Player) Play(buf signal.Float64, sampleRate int) error {
	if buf.Size() == 0 {
		return nil
	}
	quit := make(chan struct{})
	p.mu.Lock()
	p.quit = quit
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		if p.quit == quit {
			p.quit = nil
		}
		p.mu.Unlock()
	}()

	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	numChannels := buf.NumChannels()
	out := make([]float32, chunkSize*numChannels)
	stream, err := portaudio.OpenDefaultStream(0, numChannels, float64(sampleRate), chunkSize, &out)
	if err != nil {
		return err
	}
	defer stream.Close()
	if err = stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	for pos := 0; pos < buf.Size(); pos += chunkSize {
		select {
		case <-quit:
			return nil
		default:
		}
		chunk := buf.Slice(pos, chunkSize)
		for i := range out {
			out[i] = 0
		}
		for i := 0; i < chunk.Size(); i++ {
			for j := 0; j < numChannels; j++ {
				out[i*numChannels+j] = float32(chunk[j][i])
			}
		}
		if err = stream.Write(); err != nil {
			return err
		}
	}
	return nil
}

// Stop interrupts the pass in flight. Consequent calls do nothing.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.quit != nil {
		select {
		case <-p.quit:
		default:
			close(p.quit)
		}
		p.quit = nil
	}
	return nil
}
