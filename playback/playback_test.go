package playback_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pipelined/scope/mock"
	"github.com/pipelined/scope/playback"
	"github.com/pipelined/scope/signal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func stereo() signal.Float64 {
	return signal.Stereo([]float64{1, 0, -1, 0}, []float64{0, 1, 0, -1})
}

func TestStartWithoutBuffer(t *testing.T) {
	c := playback.New(&mock.Player{})
	err := c.Start()
	assert.Equal(t, playback.ErrNotReady, err)
	assert.False(t, c.Playing())
}

func TestStartStop(t *testing.T) {
	player := &mock.Player{PassDuration: 5 * time.Millisecond}
	c := playback.New(player)
	c.Swap(stereo(), 100000)

	err := c.Start()
	assert.Nil(t, err)
	assert.True(t, c.Playing())
	assert.False(t, c.Session().StartedAt.IsZero())

	// the loop re-plays the same buffer until stopped
	assert.Eventually(t, func() bool {
		return player.Passes() > 1
	}, time.Second, time.Millisecond)

	c.Stop()
	assert.False(t, c.Playing())
}

func TestStartTwice(t *testing.T) {
	player := &mock.Player{PassDuration: 5 * time.Millisecond}
	c := playback.New(player)
	c.Swap(stereo(), 100000)

	assert.Nil(t, c.Start())
	assert.Nil(t, c.Start())
	c.Stop()
}

func TestSwapWhilePlaying(t *testing.T) {
	player := &mock.Player{PassDuration: time.Millisecond}
	c := playback.New(player)
	c.Swap(stereo(), 100000)
	first := c.Session().ID

	assert.Nil(t, c.Start())
	c.Swap(stereo(), 200000)
	second := c.Session().ID
	assert.NotEqual(t, first, second)

	// the loop stamps the swapped session when it picks it up
	assert.Eventually(t, func() bool {
		s := c.Session()
		return s.ID == second && !s.StartedAt.IsZero()
	}, time.Second, time.Millisecond)

	c.Stop()
}

func TestPlayerError(t *testing.T) {
	errDevice := errors.New("device gone")
	player := &mock.Player{Err: errDevice}
	c := playback.New(player)
	c.Swap(stereo(), 100000)

	assert.Nil(t, c.Start())
	// the failure forces the stopped state and surfaces through Err
	assert.Eventually(t, func() bool {
		return !c.Playing()
	}, time.Second, time.Millisecond)

	err := c.Err()
	var playbackErr *playback.Error
	assert.ErrorAs(t, err, &playbackErr)
	assert.True(t, errors.Is(err, errDevice))

	c.Stop()
}

func TestRestartWhilePlaying(t *testing.T) {
	player := &mock.Player{PassDuration: time.Millisecond}
	c := playback.New(player, playback.WithGrace(time.Millisecond))
	c.Swap(stereo(), 100000)
	assert.Nil(t, c.Start())

	err := c.Restart(stereo(), 200000)
	assert.Nil(t, err)
	assert.True(t, c.Playing())
	assert.Equal(t, 200000, c.Session().SampleRate)
	assert.False(t, c.Session().StartedAt.IsZero())

	c.Stop()
}

func TestRestartWhileStopped(t *testing.T) {
	c := playback.New(&mock.Player{})
	err := c.Restart(stereo(), 100000)
	assert.Nil(t, err)
	// only installs the buffer, playback stays stopped
	assert.False(t, c.Playing())
	assert.NotNil(t, c.Session())
	assert.True(t, c.Session().StartedAt.IsZero())
}

func TestStopWithoutStart(t *testing.T) {
	c := playback.New(&mock.Player{})
	c.Stop()
	assert.False(t, c.Playing())
}
