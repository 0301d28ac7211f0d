package controller

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/events"
	"github.com/milk9111/penguin/fsm"
)

// Enemy state names.
const (
	EnemyIdle      = "idle"
	EnemyMoveLeft  = "move-left"
	EnemyMoveRight = "move-right"
	EnemyDead      = "dead"
)

// Enemy animation names.
const (
	AnimSnowmanIdle      = "snowman-idle"
	AnimSnowmanWalkLeft  = "snowman-walk-left"
	AnimSnowmanWalkRight = "snowman-walk-right"
)

// EnemyConfig holds the snowman's tuning.
type EnemyConfig struct {
	MoveSpeed float64
	// Dwell is how long one patrol leg lasts before turning around.
	Dwell        time.Duration
	FadeDuration time.Duration
}

func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		MoveSpeed:    60,
		Dwell:        2 * time.Second,
		FadeDuration: 300 * time.Millisecond,
	}
}

func (c EnemyConfig) withDefaults() EnemyConfig {
	d := DefaultEnemyConfig()
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	if c.Dwell <= 0 {
		c.Dwell = d.Dwell
	}
	if c.FadeDuration <= 0 {
		c.FadeDuration = d.FadeDuration
	}
	return c
}

// EnemyDeps are the collaborators of an Enemy.
type EnemyDeps struct {
	Sprite Sprite
	Body   Mover
	Bus    *events.Bus
	Picker DirectionPicker
	Log    logrus.FieldLogger
}

// Enemy drives a patrolling snowman.
type Enemy struct {
	sprite Sprite
	body   Mover
	bus    *events.Bus
	picker DirectionPicker
	log    logrus.FieldLogger
	cfg    EnemyConfig

	machine  *fsm.Machine[*Enemy]
	moveTime time.Duration
	stomped  *events.Subscription
	// dying is set by the stomp; a patrol leg queued before it hands straight
	// back to the dead state.
	dying bool
}

// NewEnemy builds the enemy controller, subscribes it to stomp notifications
// and enters the idle state.
func NewEnemy(deps EnemyDeps, cfg EnemyConfig) (*Enemy, error) {
	if deps.Sprite == nil || deps.Body == nil {
		return nil, fmt.Errorf("controller: enemy needs a sprite and a body")
	}
	if deps.Picker == nil {
		deps.Picker = NewRandomPicker(uint64(deps.Body.ID()))
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}

	e := &Enemy{
		sprite: deps.Sprite,
		body:   deps.Body,
		bus:    deps.Bus,
		picker: deps.Picker,
		log:    deps.Log.WithFields(logrus.Fields{"entity": "snowman", "body": deps.Body.ID()}),
		cfg:    cfg.withDefaults(),
	}

	e.machine = fsm.New(fmt.Sprintf("snowman-%d", deps.Body.ID()), e, fsm.WithLogger(e.log))
	e.machine.
		AddState(EnemyIdle, enemyStateIdle).
		AddState(EnemyMoveLeft, enemyStateMoveLeft).
		AddState(EnemyMoveRight, enemyStateMoveRight).
		AddState(EnemyDead, fsm.Sink[*Enemy]())

	if err := e.machine.Validate(EnemyIdle, EnemyMoveLeft, EnemyMoveRight, EnemyDead); err != nil {
		return nil, err
	}

	e.stomped = events.Subscribe(e.bus, events.EnemyStompedTopic, e.onStomped)

	if err := e.machine.SetState(EnemyIdle); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure swaps the tuning of a live enemy.
func (e *Enemy) Configure(cfg EnemyConfig) {
	e.cfg = cfg.withDefaults()
}

// Update advances the enemy's state machine.
func (e *Enemy) Update(dt time.Duration) {
	e.machine.Update(dt)
}

// State returns the current state name.
func (e *Enemy) State() string {
	name, _ := e.machine.Current()
	return name
}

// ID returns the identity of the enemy's body.
func (e *Enemy) ID() body.ID { return e.body.ID() }

// Dead reports whether the enemy was stomped.
func (e *Enemy) Dead() bool { return e.dying }

func (e *Enemy) onStomped(ev events.EnemyStomped) {
	if ev.Enemy != e.body.ID() {
		return
	}
	e.stomped.Unsubscribe()
	e.dying = true
	e.body.SetVelocity(0, 0)
	e.sprite.ShrinkFade(e.cfg.FadeDuration, e.body.Destroy)
	e.transition(EnemyDead)
}

// transition ignores the error; the machine logs unknown states itself.
func (e *Enemy) transition(name string) {
	_ = e.machine.SetState(name)
}

// patrol moves in dir and turns around once the leg has lasted longer than
// the dwell time.
func (e *Enemy) patrol(dir Direction, dt time.Duration) {
	_, vy := e.body.Velocity()
	next := EnemyMoveRight
	vx := -e.cfg.MoveSpeed
	if dir == Right {
		next = EnemyMoveLeft
		vx = e.cfg.MoveSpeed
	}
	e.body.SetVelocity(vx, vy)

	e.moveTime += dt
	if e.moveTime > e.cfg.Dwell {
		e.transition(next)
	}
}

var (
	enemyStateIdle      fsm.State[*Enemy] = enemyIdleState{}
	enemyStateMoveLeft  fsm.State[*Enemy] = enemyMoveState{dir: Left, anim: AnimSnowmanWalkLeft}
	enemyStateMoveRight fsm.State[*Enemy] = enemyMoveState{dir: Right, anim: AnimSnowmanWalkRight}
)

type enemyIdleState struct{}

// Enter picks a patrol direction right away; idle never lasts a full tick.
func (enemyIdleState) Enter(e *Enemy) {
	e.sprite.Play(AnimSnowmanIdle)
	if e.picker.PickDirection() == Left {
		e.transition(EnemyMoveLeft)
	} else {
		e.transition(EnemyMoveRight)
	}
}
func (enemyIdleState) Update(*Enemy, time.Duration) {}
func (enemyIdleState) Exit(*Enemy)                  {}

type enemyMoveState struct {
	dir  Direction
	anim string
}

func (s enemyMoveState) Enter(e *Enemy) {
	if e.dying {
		e.transition(EnemyDead)
		return
	}
	e.sprite.Play(s.anim)
	e.moveTime = 0
}
func (s enemyMoveState) Update(e *Enemy, dt time.Duration) {
	if e.dying {
		return
	}
	e.patrol(s.dir, dt)
}
func (enemyMoveState) Exit(*Enemy) {}
