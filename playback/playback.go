// Package playback owns the looping playback task. A controller plays
// the installed stereo buffer in a loop through an external blocking
// play primitive and supports atomic buffer replacement while playing.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/pipelined/scope/log"
	"github.com/pipelined/scope/signal"
)

// ErrNotReady is returned when playback is started without a buffer.
var ErrNotReady = errors.New("playback: no buffer installed")

// Error wraps a failure of the external play primitive. It is non-fatal:
// the controller forces itself to the stopped state and surfaces the
// error through Err.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("playback: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Player is the external play primitive. Play blocks for one full pass
// over the buffer and must return promptly after Stop is called.
type Player interface {
	Play(buf signal.Float64, sampleRate int) error
	Stop() error
}

// Session is an immutable snapshot of what is being played. It is
// exchanged whole via an atomic pointer, so a reader always observes a
// consistent (buffer, sample rate, start timestamp) triple. StartedAt
// is zero until the playback loop picks the session up.
type Session struct {
	ID         string
	Buffer     signal.Float64
	SampleRate int
	StartedAt  time.Time
}

// started returns a copy of the session stamped with a start timestamp.
func (s *Session) started(at time.Time) *Session {
	stamped := *s
	stamped.StartedAt = at
	return &stamped
}

// Controller runs the playback loop over the current session.
type Controller struct {
	player   Player
	logger   *logrus.Logger
	grace    time.Duration
	stopWait time.Duration

	session atomic.Pointer[Session]
	playing atomic.Bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	err  error
}

// Option configures the controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithGrace sets the device release interval used by Restart.
func WithGrace(d time.Duration) Option {
	return func(c *Controller) {
		c.grace = d
	}
}

// WithStopTimeout bounds the wait for the playback task on Stop.
func WithStopTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.stopWait = d
	}
}

// New creates a stopped controller around the play primitive.
func New(player Player, options ...Option) *Controller {
	c := &Controller{
		player:   player,
		logger:   log.GetLogger(),
		grace:    50 * time.Millisecond,
		stopWait: 2 * time.Second,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Swap installs a new buffer. While playing, the loop picks it up at
// its next iteration; the in-flight pass finishes its run.
func (c *Controller) Swap(buf signal.Float64, sampleRate int) {
	c.session.Store(&Session{
		ID:         xid.New().String(),
		Buffer:     buf,
		SampleRate: sampleRate,
	})
}

// Session returns the current session, nil if none was installed.
func (c *Controller) Session() *Session {
	return c.session.Load()
}

// Playing reports whether the playback loop is running.
func (c *Controller) Playing() bool {
	return c.playing.Load()
}

// Err returns the last playback error, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Start spawns the playback loop over the installed buffer and records
// a fresh start timestamp. ErrNotReady is returned without a buffer.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing.Load() {
		return nil
	}
	s := c.session.Load()
	if s == nil || s.Buffer.Size() == 0 {
		return ErrNotReady
	}
	c.session.Store(s.started(time.Now()))
	c.err = nil
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.playing.Store(true)
	c.logger.WithFields(logrus.Fields{
		"session": s.ID,
		"samples": s.Buffer.Size(),
		"rate":    s.SampleRate,
	}).Debug("playback started")
	go c.loop(c.stop, c.done)
	return nil
}

// loop plays the current session until the stop signal is observed or
// the primitive fails.
func (c *Controller) loop(stop, done chan struct{}) {
	defer close(done)
	defer c.playing.Store(false)
	for {
		s := c.session.Load()
		if s == nil {
			return
		}
		if err := c.player.Play(s.Buffer, s.SampleRate); err != nil {
			c.mu.Lock()
			c.err = &Error{Err: err}
			c.mu.Unlock()
			c.logger.WithField("session", s.ID).Info("playback failed: ", err)
			return
		}
		select {
		case <-stop:
			return
		default:
		}
		// a swapped session has no start timestamp yet
		if next := c.session.Load(); next != s && next != nil && next.StartedAt.IsZero() {
			c.session.Store(next.started(time.Now()))
		}
	}
}

// Stop raises the stop signal, interrupts the blocking primitive and
// waits for the playback task to observe the signal. The wait is
// bounded by the stop timeout.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return
	}
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	if err := c.player.Stop(); err != nil {
		c.logger.Info("play primitive stop: ", err)
	}
	select {
	case <-c.done:
	case <-time.After(c.stopWait):
		c.logger.Info("playback task did not stop in time")
	}
	c.stop = nil
	c.done = nil
	c.playing.Store(false)
}

// Restart applies a new buffer with the restart-for-cleanliness policy:
// stop first, give the device a short grace interval to release, then
// start over with the new buffer. When stopped it only installs the
// buffer.
func (c *Controller) Restart(buf signal.Float64, sampleRate int) error {
	wasPlaying := c.playing.Load()
	if wasPlaying {
		c.Stop()
		time.Sleep(c.grace)
	}
	c.Swap(buf, sampleRate)
	if wasPlaying {
		return c.Start()
	}
	return nil
}
