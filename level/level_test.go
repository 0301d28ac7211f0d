package level

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/controller"
	"github.com/milk9111/penguin/events"
	"github.com/milk9111/penguin/input"
	"github.com/milk9111/penguin/levels"
	"github.com/milk9111/penguin/obstacle"
	"github.com/milk9111/penguin/prefabs"
)

const tick = time.Second / 60

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testDeps(t *testing.T, in controller.Input) Deps {
	t.Helper()
	set, err := prefabs.LoadSet()
	require.NoError(t, err)
	if in == nil {
		in = input.NewScript()
	}
	return Deps{Prefabs: set, Input: in, Seed: 1, Log: quietLog()}
}

// box returns a width x 5 level with a solid floor on the bottom row.
func box(width int, row3 map[int]int, entities string) *levels.Level {
	tiles := make([]string, 0, width*5)
	for y := 0; y < 5; y++ {
		for x := 0; x < width; x++ {
			v := 0
			if y == 4 {
				v = 1
			} else if y == 3 {
				v = row3[x]
			}
			tiles = append(tiles, fmt.Sprint(v))
		}
	}
	src := fmt.Sprintf(`{"name":"test","width":%d,"height":5,"tiles":[%s],"entities":[%s]}`,
		width, strings.Join(tiles, ","), entities)
	lvl, err := levels.Parse([]byte(src))
	if err != nil {
		panic(err)
	}
	return lvl
}

func run(l *Level, max int, until func() bool) {
	for i := 0; i < max && !until(); i++ {
		l.Update(tick)
	}
}

func TestBuildDefaultLevel(t *testing.T) {
	def, err := levels.Load(levels.Default)
	require.NoError(t, err)

	l, err := Build(def, testDeps(t, nil))
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, "snowfield", l.Name())
	assert.Equal(t, controller.PlayerIdle, l.Player().State())
	assert.Equal(t, 100, l.Player().Health())
	assert.Len(t, l.Enemies(), 2)
	// spikes plus one entry per snowman
	assert.Equal(t, 3, l.Obstacles().Len())
	for _, e := range l.Enemies() {
		assert.True(t, l.Obstacles().Contains(obstacle.Enemy, e.ID()))
	}
	assert.Equal(t, 3, l.PickupsLeft(body.KindStar))
	assert.Equal(t, 2, l.PickupsLeft(body.KindHealth))

	for i := 0; i < 120; i++ {
		l.Update(tick)
	}
	assert.Equal(t, controller.PlayerIdle, l.Player().State())
	for _, e := range l.Enemies() {
		assert.Contains(t, []string{controller.EnemyMoveLeft, controller.EnemyMoveRight}, e.State())
	}
	assert.Equal(t, 120, l.Ticks())
}

func TestBuildRejects(t *testing.T) {
	def := box(4, nil, `{"type":"player","x":1,"y":2}`)

	_, err := Build(nil, testDeps(t, nil))
	assert.Error(t, err)

	deps := testDeps(t, nil)
	deps.Prefabs = nil
	_, err = Build(def, deps)
	assert.Error(t, err)

	deps = testDeps(t, nil)
	deps.Input = nil
	_, err = Build(def, deps)
	assert.Error(t, err)
}

func TestStarCollectedOnSpawn(t *testing.T) {
	def := box(4, nil, `{"type":"player","x":1,"y":2},{"type":"star","x":1,"y":2}`)
	l, err := Build(def, testDeps(t, nil))
	require.NoError(t, err)
	defer l.Close()

	run(l, 30, func() bool { return l.Stars() > 0 })

	assert.Equal(t, 1, l.Stars())
	assert.Zero(t, l.PickupsLeft(body.KindStar))
}

func TestHealthPickupIsClamped(t *testing.T) {
	def := box(4, nil, `{"type":"player","x":1,"y":2},{"type":"health","x":1,"y":2,"props":{"amount":25}}`)
	l, err := Build(def, testDeps(t, nil))
	require.NoError(t, err)
	defer l.Close()

	var changes []events.HealthChanged
	events.Subscribe(l.Bus(), events.HealthChangedTopic, func(e events.HealthChanged) { changes = append(changes, e) })

	run(l, 30, func() bool { return l.PickupsLeft(body.KindHealth) == 0 })

	assert.Zero(t, l.PickupsLeft(body.KindHealth))
	assert.Equal(t, []events.HealthChanged{{Previous: 100, Current: 100}}, changes)
}

func TestSpikesDefeatPlayer(t *testing.T) {
	def := box(4, map[int]int{1: 2}, `{"type":"player","x":1,"y":1}`)
	l, err := Build(def, testDeps(t, nil))
	require.NoError(t, err)
	defer l.Close()

	var changes []events.HealthChanged
	defeats := 0
	events.Subscribe(l.Bus(), events.HealthChangedTopic, func(e events.HealthChanged) { changes = append(changes, e) })
	events.Subscribe(l.Bus(), events.PlayerDefeatedTopic, func(events.PlayerDefeated) { defeats++ })

	run(l, 60*30, l.Defeated)

	require.True(t, l.Defeated())
	assert.Equal(t, controller.PlayerDefeated, l.Player().State())
	assert.Zero(t, l.Player().Health())
	assert.Equal(t, 1, defeats)
	require.Len(t, changes, 10)
	for i, c := range changes {
		assert.Equal(t, 100-10*i, c.Previous)
		assert.Equal(t, 90-10*i, c.Current)
	}
}

func TestStompRemovesSnowman(t *testing.T) {
	def := box(7, nil, `{"type":"player","x":3,"y":0},{"type":"snowman","x":3,"y":3}`)
	deps := testDeps(t, nil)
	l, err := Build(def, deps)
	require.NoError(t, err)
	defer l.Close()

	var stomped []body.ID
	events.Subscribe(l.Bus(), events.EnemyStompedTopic, func(e events.EnemyStomped) { stomped = append(stomped, e.Enemy) })
	snowman := l.Enemies()[0].ID()

	run(l, 180, func() bool { return len(l.Enemies()) == 0 })

	assert.Equal(t, []body.ID{snowman}, stomped)
	assert.Empty(t, l.Enemies())
	assert.Equal(t, 100, l.Player().Health())
}

func TestCloseEndsSubscriptions(t *testing.T) {
	def := box(4, nil, `{"type":"player","x":1,"y":2},{"type":"snowman","x":3,"y":3}`)
	l, err := Build(def, testDeps(t, nil))
	require.NoError(t, err)

	require.Positive(t, l.Bus().Subscribers(events.EnemyStompedTopic.Name()))
	l.Close()
	assert.Zero(t, l.Bus().Subscribers(events.EnemyStompedTopic.Name()))
}

func TestConfigureReachesControllers(t *testing.T) {
	def := box(4, nil, `{"type":"player","x":1,"y":2}`)
	deps := testDeps(t, nil)
	l, err := Build(def, deps)
	require.NoError(t, err)
	defer l.Close()

	spec := *deps.Prefabs.Player
	spec.MaxHealth = 40
	set := *deps.Prefabs
	set.Player = &spec
	l.Configure(&set)

	assert.Equal(t, 40, l.Player().Health())
}

func TestWalkRight(t *testing.T) {
	def := box(12, nil, `{"type":"player","x":1,"y":3}`)
	in := input.NewScript(input.Step{Ticks: 10}, input.Step{Ticks: 30, Held: []controller.Action{controller.ActionRight}})
	l, err := Build(def, testDeps(t, in))
	require.NoError(t, err)
	defer l.Close()

	x0, _ := l.Player().Position()
	for i := 0; i < 40; i++ {
		in.Poll()
		l.Update(tick)
	}
	x1, _ := l.Player().Position()

	assert.Equal(t, controller.PlayerWalk, l.Player().State())
	assert.Greater(t, x1, x0+50)
}

func TestCameraClamps(t *testing.T) {
	c := NewCamera(100, 50, 400, 60, 500)
	assert.Equal(t, 10.0, c.Y)

	c.Snap(0)
	assert.Zero(t, c.X)
	c.Snap(1000)
	assert.Equal(t, 300.0, c.X)

	c.Snap(200)
	c.Follow(260)
	assert.InDelta(t, 159.0, c.X, 1e-9)

	small := NewCamera(100, 50, 80, 40, 10)
	small.Snap(70)
	assert.Zero(t, small.X)
	assert.Zero(t, small.Y)
}
