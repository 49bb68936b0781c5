// Package preview derives a bounded rolling window of recently played
// samples from elapsed wall-clock time. The sampler only reads playback
// state; it keeps a private anchor so sessions stay immutable and the
// playback task itself is never touched.
package preview

import (
	"context"
	"sync"
	"time"

	"github.com/pipelined/scope/playback"
	"github.com/pipelined/scope/signal"
)

// DefaultCapacity is the default window size in samples.
const DefaultCapacity = 5000

// DefaultInterval matches a 25 FPS display refresh.
const DefaultInterval = 40 * time.Millisecond

// minViable is the smallest window worth rendering.
const minViable = 10

// Source exposes the playback state the sampler reads.
type Source interface {
	Playing() bool
	Session() *playback.Session
}

// Sampler maintains the rolling preview window.
type Sampler struct {
	source   Source
	interval time.Duration

	mu        sync.Mutex
	capacity  int
	winX      []float64
	winY      []float64
	sessionID string
	anchor    time.Time
	lastPos   int
}

// Option configures the sampler.
type Option func(*Sampler)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(s *Sampler) {
		s.interval = d
	}
}

// WithCapacity sets the initial window capacity.
func WithCapacity(w int) Option {
	return func(s *Sampler) {
		s.capacity = w
	}
}

// New creates a sampler over a playback source.
func New(source Source, options ...Option) *Sampler {
	s := &Sampler{
		source:   source,
		interval: DefaultInterval,
		capacity: DefaultCapacity,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// SetCapacity adjusts the window bound. The next trim enforces it.
func (s *Sampler) SetCapacity(w int) {
	if w < 1 {
		return
	}
	s.mu.Lock()
	s.capacity = w
	s.mu.Unlock()
}

// Run ticks until the context is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// tick advances the window to the sample position implied by elapsed
// wall-clock time against the session being played.
func (s *Sampler) tick(now time.Time) {
	sess := s.source.Session()
	if !s.source.Playing() || sess == nil || sess.StartedAt.IsZero() {
		s.drop()
		return
	}
	total := sess.Buffer.Size()
	if total == 0 {
		s.drop()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID != s.sessionID {
		// lost synchronization: rebuild from the new session
		s.sessionID = sess.ID
		s.anchor = sess.StartedAt
		s.lastPos = 0
		s.winX = s.winX[:0]
		s.winY = s.winY[:0]
	}

	elapsed := now.Sub(s.anchor)
	pos := int(elapsed.Seconds() * float64(sess.SampleRate))
	if pos < 0 {
		return
	}
	if pos >= total {
		// stream wraparound: reset the window and re-anchor the private
		// clock so elapsed stays consistent without touching playback
		pos %= total
		s.anchor = now.Add(-signal.DurationOf(sess.SampleRate, int64(pos)))
		s.lastPos = 0
		s.winX = s.winX[:0]
		s.winY = s.winY[:0]
	}

	if pos > s.lastPos {
		s.winX = append(s.winX, sess.Buffer[0][s.lastPos:pos]...)
		s.winY = append(s.winY, sess.Buffer[1][s.lastPos:pos]...)
		s.lastPos = pos
	}

	if excess := len(s.winX) - s.capacity; excess > 0 {
		s.winX = append(s.winX[:0], s.winX[excess:]...)
		s.winY = append(s.winY[:0], s.winY[excess:]...)
	}
}

// drop clears the window and forgets the session.
func (s *Sampler) drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.lastPos = 0
	s.winX = s.winX[:0]
	s.winY = s.winY[:0]
}

// Frame returns a copy of the current window, nil when the window holds
// fewer samples than are worth rendering.
func (s *Sampler) Frame() (x, y []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.winX) < minViable {
		return nil, nil
	}
	x = append([]float64(nil), s.winX...)
	y = append([]float64(nil), s.winY...)
	return x, y
}
