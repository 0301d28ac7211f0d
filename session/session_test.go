package session

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSessionStartsPlaying(t *testing.T) {
	s := New(time.Second, nil, quietLog())
	assert.Equal(t, Playing, s.State())
	assert.True(t, s.Playing())
	assert.False(t, s.Can(EventRestart))
}

func TestTogglePause(t *testing.T) {
	s := New(time.Second, nil, quietLog())

	s.TogglePause()
	assert.True(t, s.Paused())

	s.TogglePause()
	assert.True(t, s.Playing())
}

func TestTogglePauseIgnoredWhileDefeated(t *testing.T) {
	s := New(time.Second, nil, quietLog())
	s.Defeat()
	s.TogglePause()
	assert.True(t, s.Defeated())
}

func TestDefeatedRestartsAfterDelay(t *testing.T) {
	rebuilds := 0
	s := New(100*time.Millisecond, func() error {
		rebuilds++
		return nil
	}, quietLog())

	s.Defeat()
	require.True(t, s.Defeated())

	for i := 0; i < 6; i++ {
		require.NoError(t, s.Update(16*time.Millisecond))
	}
	assert.True(t, s.Defeated(), "96ms is still inside the delay")
	assert.Zero(t, rebuilds)

	require.NoError(t, s.Update(16*time.Millisecond))
	assert.True(t, s.Playing())
	assert.Equal(t, 1, rebuilds)
	assert.Equal(t, 1, s.Restarts())
}

func TestDefeatResetsCountdown(t *testing.T) {
	s := New(100*time.Millisecond, nil, quietLog())

	s.Defeat()
	require.NoError(t, s.Update(90*time.Millisecond))
	require.NoError(t, s.Restart())

	s.Defeat()
	require.NoError(t, s.Update(90*time.Millisecond))
	assert.True(t, s.Defeated())
}

func TestUpdateIgnoredOutsideDefeated(t *testing.T) {
	rebuilds := 0
	s := New(0, func() error {
		rebuilds++
		return nil
	}, quietLog())

	require.NoError(t, s.Update(time.Second))
	s.TogglePause()
	require.NoError(t, s.Update(time.Second))

	assert.True(t, s.Paused())
	assert.Zero(t, rebuilds)
}

func TestRestartFromPause(t *testing.T) {
	rebuilds := 0
	s := New(time.Second, func() error {
		rebuilds++
		return nil
	}, quietLog())

	s.TogglePause()
	require.NoError(t, s.Restart())
	assert.True(t, s.Playing())
	assert.Equal(t, 1, rebuilds)
}

func TestRestartRejectedWhilePlaying(t *testing.T) {
	s := New(time.Second, nil, quietLog())
	assert.Error(t, s.Restart())
	assert.True(t, s.Playing())
}

func TestFailedRebuildKeepsState(t *testing.T) {
	boom := errors.New("level missing")
	fail := true
	s := New(50*time.Millisecond, func() error {
		if fail {
			return boom
		}
		return nil
	}, quietLog())

	s.Defeat()
	err := s.Update(50 * time.Millisecond)
	require.ErrorIs(t, err, boom)
	assert.True(t, s.Defeated())
	assert.Zero(t, s.Restarts())

	fail = false
	require.NoError(t, s.Update(20*time.Millisecond), "countdown starts over")
	assert.True(t, s.Defeated())
	require.NoError(t, s.Update(30*time.Millisecond))
	assert.True(t, s.Playing())
}
