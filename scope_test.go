package scope_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pipelined/scope"
	"github.com/pipelined/scope/effect"
	"github.com/pipelined/scope/mock"
	"github.com/pipelined/scope/pattern"
	"github.com/pipelined/scope/playback"
	"github.com/pipelined/scope/signal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fast returns an engine whose full regeneration is cheap enough for
// tests.
func fast(t *testing.T, player playback.Player) *scope.Engine {
	t.Helper()
	e, err := scope.New(
		player,
		scope.WithConfig(effect.Config{Repeat: 1}),
		scope.WithSampleRate(100),
		scope.WithMultiplier(1),
		scope.WithDuration(100*time.Millisecond),
		scope.WithDebounce(20*time.Millisecond),
	)
	assert.Nil(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestNewDefaults(t *testing.T) {
	e, err := scope.New(&mock.Player{})
	assert.Nil(t, err)
	defer e.Close()

	p := e.Pattern()
	assert.Equal(t, 500, p.Len())
	assert.False(t, e.Playing())
	x, y := e.Window()
	assert.Nil(t, x)
	assert.Nil(t, y)
}

func TestLoadPattern(t *testing.T) {
	e := fast(t, &mock.Player{})

	err := e.LoadPattern(pattern.Pattern{X: []float64{1}, Y: []float64{1, 2}})
	assert.Equal(t, pattern.ErrInvalidPattern, err)

	p, err := pattern.New([]float64{0, 10}, []float64{5, 5})
	assert.Nil(t, err)
	assert.Nil(t, e.LoadPattern(p))

	loaded := e.Pattern()
	assert.Equal(t, []float64{-1, 1}, loaded.X)
	assert.Equal(t, []float64{0, 0}, loaded.Y)
}

func TestPatternFileRoundTrip(t *testing.T) {
	e := fast(t, &mock.Player{})
	path := filepath.Join(t.TempDir(), "pattern.txt")

	assert.Nil(t, e.SaveFile(path))
	assert.Nil(t, e.LoadFile(path))
	assert.Equal(t, 500, e.Pattern().Len())

	assert.Error(t, e.LoadFile(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestUpdateReturnsPreview(t *testing.T) {
	e := fast(t, &mock.Player{})
	n := e.Pattern().Len()

	preview := e.Update(func(c *effect.Config) {
		c.Mirror = true
	})
	assert.Equal(t, 4*n, preview.Len())
	assert.True(t, e.Config().Mirror)
}

func TestPlayStop(t *testing.T) {
	player := &mock.Player{PassDuration: 5 * time.Millisecond}
	e := fast(t, player)

	assert.Nil(t, e.Play())
	assert.True(t, e.Playing())
	assert.Eventually(t, func() bool {
		return player.Passes() > 0
	}, time.Second, time.Millisecond)

	e.Stop()
	assert.False(t, e.Playing())
}

func TestPlayEmptyStream(t *testing.T) {
	e, err := scope.New(
		&mock.Player{},
		scope.WithConfig(effect.Config{Repeat: 1}),
		scope.WithSampleRate(100),
		scope.WithMultiplier(1),
		scope.WithDuration(0),
	)
	assert.Nil(t, err)
	defer e.Close()

	// zero duration synthesizes an empty stream, nothing to play
	assert.Equal(t, playback.ErrNotReady, e.Play())
}

func TestExport(t *testing.T) {
	e := fast(t, &mock.Player{})
	path := filepath.Join(t.TempDir(), "out.wav")

	err := e.Export(path, signal.BitDepth16)
	assert.Nil(t, err)

	content, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.True(t, len(content) > 44)
	assert.Equal(t, "RIFF", string(content[0:4]))
	assert.Equal(t, "WAVE", string(content[8:12]))
}

func TestSetTiming(t *testing.T) {
	e := fast(t, &mock.Player{})
	e.SetTiming(200, 2, 50*time.Millisecond)
	assert.Nil(t, e.Regenerate())
	// 200 * 2 = 400 Hz over 50ms is 20 samples
	path := filepath.Join(t.TempDir(), "out.wav")
	assert.Nil(t, e.Export(path, signal.BitDepth16))
}
