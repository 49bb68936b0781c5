// Package mock provides a controllable play primitive for tests.
package mock

import (
	"sync"
	"time"

	"github.com/pipelined/scope/signal"
)

// Player counts passes and simulates a blocking device. Pass duration
// and an injected failure are configurable.
type Player struct {
	// PassDuration is how long one blocking pass takes.
	PassDuration time.Duration
	// Err is returned by Play when set.
	Err error

	mu     sync.Mutex
	passes int
	quit   chan struct{}
}

// Play blocks for one simulated pass or until Stop.
func (p *Player) Play(buf signal.Float64, sampleRate int) error {
	if p.Err != nil {
		return p.Err
	}
	quit := make(chan struct{})
	p.mu.Lock()
	p.passes++
	p.quit = quit
	p.mu.Unlock()

	select {
	case <-time.After(p.PassDuration):
	case <-quit:
	}
	return nil
}

// Stop interrupts the pass in flight.
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

// Passes returns how many passes were started.
func (p *Player) Passes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passes
}
