// Package scope synthesizes continuous stereo waveforms from closed 2D
// point patterns for driving a display in XY mode. The engine owns the
// current pattern, the effect configuration and the synthesis
// parameters; parameter edits are debounced into a single deferred
// resynthesis while an instant capped preview gives visual feedback.
package scope

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/pipelined/scope/effect"
	"github.com/pipelined/scope/log"
	"github.com/pipelined/scope/matfile"
	"github.com/pipelined/scope/pattern"
	"github.com/pipelined/scope/playback"
	"github.com/pipelined/scope/preview"
	"github.com/pipelined/scope/signal"
	"github.com/pipelined/scope/synth"
	"github.com/pipelined/scope/wav"
)

// defaults match the original instrument setup.
const (
	DefaultSampleRate = 1000
	DefaultMultiplier = 100
	DefaultDuration   = 15 * time.Second
	DefaultDebounce   = 300 * time.Millisecond
	defaultPoints     = 500
	defaultRepeat     = 200
)

// Engine composes the pipeline, the synthesizer, the playback
// controller and the preview sampler.
type Engine struct {
	logger     *logrus.Logger
	controller *playback.Controller
	sampler    *preview.Sampler

	mu         sync.Mutex
	pat        pattern.Pattern
	cfg        effect.Config
	stream     effect.StreamConfig
	sampleRate int
	multiplier int
	duration   time.Duration
	debounce   time.Duration
	timer      *time.Timer

	previewCapacity int

	inFlight atomic.Bool
}

// Option provides a way to set functional parameters to the engine.
type Option func(*Engine) error

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) error {
		e.logger = l
		return nil
	}
}

// WithSampleRate sets the base sample rate.
func WithSampleRate(rate int) Option {
	return func(e *Engine) error {
		e.sampleRate = rate
		return nil
	}
}

// WithMultiplier sets the playback rate multiplier.
func WithMultiplier(m int) Option {
	return func(e *Engine) error {
		e.multiplier = m
		return nil
	}
}

// WithDuration sets the synthesized stream duration.
func WithDuration(d time.Duration) Option {
	return func(e *Engine) error {
		e.duration = d
		return nil
	}
}

// WithDebounce sets the quiet interval before a full regeneration.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) error {
		e.debounce = d
		return nil
	}
}

// WithPreviewCapacity sets the preview window size in samples.
func WithPreviewCapacity(w int) Option {
	return func(e *Engine) error {
		e.previewCapacity = w
		return nil
	}
}

// WithConfig sets the initial effect configuration.
func WithConfig(cfg effect.Config) Option {
	return func(e *Engine) error {
		e.cfg = cfg
		return nil
	}
}

// New creates an engine around the play primitive. The engine starts
// with the default sine pattern loaded and no buffer synthesized.
func New(player playback.Player, options ...Option) (*Engine, error) {
	e := &Engine{
		logger:     log.GetLogger(),
		pat:        pattern.Default(defaultPoints).Normalized(),
		cfg:        effect.Config{Repeat: defaultRepeat},
		sampleRate: DefaultSampleRate,
		multiplier: DefaultMultiplier,
		duration:   DefaultDuration,
		debounce:   DefaultDebounce,
	}
	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	e.controller = playback.New(player, playback.WithLogger(e.logger))
	if e.previewCapacity > 0 {
		e.sampler = preview.New(e.controller, preview.WithCapacity(e.previewCapacity))
	} else {
		e.sampler = preview.New(e.controller)
	}
	return e, nil
}

// Sampler returns the live preview sampler. Run it on its own context
// to enable the rolling window.
func (e *Engine) Sampler() *preview.Sampler {
	return e.sampler
}

// LoadPattern validates and installs a new source pattern. Invalid
// input is rejected before any synthesis; prior state is unaffected.
func (e *Engine) LoadPattern(p pattern.Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.pat = p.Normalized()
	e.mu.Unlock()
	return nil
}

// LoadFile reads a pattern from a persisted pattern file.
func (e *Engine) LoadFile(path string) error {
	p, err := matfile.LoadFile(path)
	if err != nil {
		return err
	}
	return e.LoadPattern(p)
}

// SaveFile writes the current source pattern to a pattern file.
func (e *Engine) SaveFile(path string) error {
	e.mu.Lock()
	p := e.pat.Clone()
	e.mu.Unlock()
	return matfile.SaveFile(path, p)
}

// Pattern returns a copy of the current normalized source pattern.
func (e *Engine) Pattern() pattern.Pattern {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pat.Clone()
}

// Config returns the current effect configuration.
func (e *Engine) Config() effect.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Update applies a parameter edit, reschedules the deferred full
// resynthesis and returns a cheap capped preview for instant feedback.
// The preview is never used for the playable buffer.
func (e *Engine) Update(edit func(*effect.Config)) pattern.Pattern {
	e.mu.Lock()
	edit(&e.cfg)
	p := e.pat
	cfg := e.cfg
	e.reschedule()
	e.mu.Unlock()
	return cfg.Preview(p)
}

// UpdateStream applies a stream-effect edit and reschedules the
// deferred full resynthesis.
func (e *Engine) UpdateStream(edit func(*effect.StreamConfig)) {
	e.mu.Lock()
	edit(&e.stream)
	e.reschedule()
	e.mu.Unlock()
}

// SetTiming changes base rate, multiplier and duration, rescheduling
// the deferred resynthesis.
func (e *Engine) SetTiming(sampleRate, multiplier int, duration time.Duration) {
	e.mu.Lock()
	e.sampleRate = sampleRate
	e.multiplier = multiplier
	e.duration = duration
	e.reschedule()
	e.mu.Unlock()
}

// Preview returns the capped preview of the current configuration.
func (e *Engine) Preview() pattern.Pattern {
	e.mu.Lock()
	p := e.pat
	cfg := e.cfg
	e.mu.Unlock()
	return cfg.Preview(p)
}

// reschedule cancels the pending regeneration timer and arms a new one.
// Callers hold the engine lock.
func (e *Engine) reschedule() {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		if err := e.Regenerate(); err != nil {
			e.logger.Info("deferred regeneration: ", err)
		}
	})
}

// Regenerate runs the full pipeline and synthesizer and installs the
// new buffer, restarting playback if it was active. Only one
// regeneration may be in flight; a concurrent trigger is discarded.
// Failures leave the previously installed buffer intact.
func (e *Engine) Regenerate() error {
	if !e.inFlight.CompareAndSwap(false, true) {
		e.logger.Debug("regeneration already in flight, trigger dropped")
		return nil
	}
	defer e.inFlight.Store(false)

	e.mu.Lock()
	p := e.pat
	cfg := e.cfg
	stream := e.stream
	rate := synth.Rate(e.sampleRate, e.multiplier)
	duration := e.duration
	e.mu.Unlock()

	run := xid.New().String()
	logger := e.logger.WithFields(logrus.Fields{
		"run":  run,
		"rate": rate,
	})

	base, err := cfg.BaseCycle(p)
	if err != nil {
		logger.Info("pipeline failed: ", err)
		return err
	}
	buf, err := synth.Synthesize(base, rate, duration)
	if err != nil {
		logger.Info("synthesis failed: ", err)
		return err
	}
	if stream.Enabled() {
		buf = stream.Apply(buf, rate)
	}
	logger.WithFields(logrus.Fields{
		"cycle":   base.Len(),
		"samples": buf.Size(),
	}).Debug("stream synthesized")

	return e.controller.Restart(buf, rate)
}

// Play starts looping playback of the installed buffer, synthesizing
// one first if none exists yet.
func (e *Engine) Play() error {
	if e.controller.Session() == nil {
		if err := e.Regenerate(); err != nil {
			return err
		}
	}
	return e.controller.Start()
}

// Stop halts playback; subsequent preview ticks no-op until playback
// resumes.
func (e *Engine) Stop() {
	e.controller.Stop()
}

// Playing reports whether the playback loop is running.
func (e *Engine) Playing() bool {
	return e.controller.Playing()
}

// Window returns the current rolling preview frame.
func (e *Engine) Window() (x, y []float64) {
	return e.sampler.Frame()
}

// Export writes the currently installed stream to a WAV file,
// synthesizing one first if none exists yet.
func (e *Engine) Export(path string, bitDepth signal.BitDepth) error {
	if e.controller.Session() == nil {
		if err := e.Regenerate(); err != nil {
			return err
		}
	}
	s := e.controller.Session()
	return wav.Encode(path, s.Buffer, s.SampleRate, bitDepth)
}

// Close stops playback and cancels any pending regeneration.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()
	e.controller.Stop()
}
