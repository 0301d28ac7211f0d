package script

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/penguin/controller"
)

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBundledPatrol(t *testing.T) {
	p, err := LoadPatrol("patrol.tengo", quietLog())
	require.NoError(t, err)

	cases := []struct {
		name string
		in   PatrolInput
		want controller.Direction
	}{
		{"low_roll", PatrolInput{Roll: 10, X: 300, LevelWidth: 1000}, controller.Left},
		{"high_roll", PatrolInput{Roll: 90, X: 300, LevelWidth: 1000}, controller.Right},
		{"boundary_roll", PatrolInput{Roll: 50, X: 300, LevelWidth: 1000}, controller.Right},
		{"near_left_wall", PatrolInput{Roll: 10, X: 20, LevelWidth: 1000}, controller.Right},
		{"near_right_wall", PatrolInput{Roll: 90, X: 980, LevelWidth: 1000}, controller.Left},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := p.Pick(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestPatrolErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"no_direction", `z := 1`},
		{"bad_direction", `direction := "up"`},
		{"runtime_error", `direction := undefined_fn()`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := CompilePatrol(c.name, []byte(c.src), quietLog())
			if err != nil {
				// unresolved names fail at compile time
				return
			}
			_, err = p.Pick(PatrolInput{Roll: 1})
			assert.Error(t, err)
		})
	}
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	p, err := CompilePatrol("fixed", []byte(`direction := "right"`), quietLog())
	require.NoError(t, err)

	assert.Error(t, p.Reload([]byte(`direction := `)))
	dir, err := p.Pick(PatrolInput{Roll: 1})
	require.NoError(t, err)
	assert.Equal(t, controller.Right, dir)

	require.NoError(t, p.Reload([]byte(`direction := "left"`)))
	dir, err = p.Pick(PatrolInput{Roll: 99})
	require.NoError(t, err)
	assert.Equal(t, controller.Left, dir)
}

func TestPickerFallsBackToRoll(t *testing.T) {
	p, err := CompilePatrol("broken", []byte(`direction := 5`), quietLog())
	require.NoError(t, err)

	pk := p.Picker(1, 0, 0, 100)
	for i := 0; i < 10; i++ {
		dir := pk.PickDirection()
		assert.Contains(t, []controller.Direction{controller.Left, controller.Right}, dir)
	}
}

func TestPickerIsDeterministicPerSeed(t *testing.T) {
	p, err := LoadPatrol("patrol.tengo", quietLog())
	require.NoError(t, err)

	a := p.Picker(42, 500, 0, 1000)
	b := p.Picker(42, 500, 0, 1000)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.PickDirection(), b.PickDirection())
	}
}
