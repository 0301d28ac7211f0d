package controller

import (
	"fmt"
	"image/color"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/events"
	"github.com/milk9111/penguin/fsm"
	"github.com/milk9111/penguin/obstacle"
)

// Player state names.
const (
	PlayerIdle         = "idle"
	PlayerWalk         = "walk"
	PlayerJump         = "jump"
	PlayerSpikeHit     = "spike-hit"
	PlayerSnowmanHit   = "snowman-hit"
	PlayerSnowmanStomp = "snowman-stomp"
	PlayerDefeated     = "defeated"
)

// Player animation names.
const (
	AnimPlayerIdle     = "player-idle"
	AnimPlayerWalk     = "player-walk"
	AnimPlayerDefeated = "player-defeated"
)

// PlayerConfig holds the player's tuning. Speeds are in pixels per second.
type PlayerConfig struct {
	MoveSpeed      float64
	JumpSpeed      float64
	BounceSpeed    float64
	KnockbackSpeed float64
	HazardDamage   int
	EnemyDamage    int
	MaxHealth      int
	// PickupHealth is used when a health pickup does not carry an amount.
	PickupHealth  int
	FlashDuration time.Duration
	FlashFrom     color.Color
	HazardFlash   color.Color
	EnemyFlash    color.Color
}

// DefaultPlayerConfig returns the built-in tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		MoveSpeed:      180,
		JumpSpeed:      420,
		BounceSpeed:    260,
		KnockbackSpeed: 220,
		HazardDamage:   10,
		EnemyDamage:    10,
		MaxHealth:      100,
		PickupHealth:   10,
		FlashDuration:  300 * time.Millisecond,
		FlashFrom:      color.White,
		HazardFlash:    color.NRGBA{R: 0xff, A: 0xff},
		EnemyFlash:     color.NRGBA{B: 0xff, A: 0xff},
	}
}

// PlayerDeps are the collaborators of a Player.
type PlayerDeps struct {
	Sprite    Sprite
	Body      Mover
	Input     Input
	Obstacles *obstacle.Registry
	Bus       *events.Bus
	Log       logrus.FieldLogger
}

// Player drives the penguin.
type Player struct {
	sprite    Sprite
	body      Mover
	input     Input
	obstacles *obstacle.Registry
	bus       *events.Bus
	log       logrus.FieldLogger
	cfg       PlayerConfig

	machine *fsm.Machine[*Player]
	health  int
	// enemy is the root body of the enemy behind the current hit or stomp.
	enemy body.Body
}

// NewPlayer builds the player controller, enters the idle state and starts
// listening for contacts on deps.Body.
func NewPlayer(deps PlayerDeps, cfg PlayerConfig) (*Player, error) {
	if deps.Sprite == nil || deps.Body == nil || deps.Input == nil {
		return nil, fmt.Errorf("controller: player needs a sprite, a body and input")
	}
	if deps.Obstacles == nil {
		deps.Obstacles = obstacle.NewRegistry()
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	cfg = cfg.withDefaults()

	p := &Player{
		sprite:    deps.Sprite,
		body:      deps.Body,
		input:     deps.Input,
		obstacles: deps.Obstacles,
		bus:       deps.Bus,
		log:       deps.Log.WithField("entity", "player"),
		cfg:       cfg,
		health:    cfg.MaxHealth,
	}

	p.machine = fsm.New("player", p, fsm.WithLogger(p.log))
	p.machine.
		AddState(PlayerIdle, playerStateIdle).
		AddState(PlayerWalk, playerStateWalk).
		AddState(PlayerJump, playerStateJump).
		AddState(PlayerSpikeHit, playerStateSpikeHit).
		AddState(PlayerSnowmanHit, playerStateSnowmanHit).
		AddState(PlayerSnowmanStomp, playerStateSnowmanStomp).
		AddState(PlayerDefeated, playerStateDefeated)

	if err := p.machine.Validate(playerTransitions...); err != nil {
		return nil, err
	}
	if err := p.machine.SetState(PlayerIdle); err != nil {
		return nil, err
	}

	p.body.OnCollide(p.HandleContact)
	return p, nil
}

func (c PlayerConfig) withDefaults() PlayerConfig {
	d := DefaultPlayerConfig()
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	if c.JumpSpeed <= 0 {
		c.JumpSpeed = d.JumpSpeed
	}
	if c.BounceSpeed <= 0 {
		c.BounceSpeed = d.BounceSpeed
	}
	if c.KnockbackSpeed <= 0 {
		c.KnockbackSpeed = d.KnockbackSpeed
	}
	if c.HazardDamage <= 0 {
		c.HazardDamage = d.HazardDamage
	}
	if c.EnemyDamage <= 0 {
		c.EnemyDamage = d.EnemyDamage
	}
	if c.MaxHealth <= 0 {
		c.MaxHealth = d.MaxHealth
	}
	if c.PickupHealth <= 0 {
		c.PickupHealth = d.PickupHealth
	}
	if c.FlashDuration <= 0 {
		c.FlashDuration = d.FlashDuration
	}
	if c.FlashFrom == nil {
		c.FlashFrom = d.FlashFrom
	}
	if c.HazardFlash == nil {
		c.HazardFlash = d.HazardFlash
	}
	if c.EnemyFlash == nil {
		c.EnemyFlash = d.EnemyFlash
	}
	return c
}

// Configure swaps the tuning of a live player. Health is clamped to the new
// maximum.
func (p *Player) Configure(cfg PlayerConfig) {
	p.cfg = cfg.withDefaults()
	if p.health > p.cfg.MaxHealth {
		p.setHealth(p.cfg.MaxHealth)
	}
}

// Update advances the player's state machine.
func (p *Player) Update(dt time.Duration) {
	p.machine.Update(dt)
}

// State returns the current state name.
func (p *Player) State() string {
	name, _ := p.machine.Current()
	return name
}

// Health returns the current health.
func (p *Player) Health() int { return p.health }

func (p *Player) MaxHealth() int { return p.cfg.MaxHealth }

// ID returns the identity of the player's body.
func (p *Player) ID() body.ID { return p.body.ID() }

// Position returns the player's body position.
func (p *Player) Position() (x, y float64) { return p.body.Position() }

// HandleContact classifies a physics contact and drives the state machine.
// Contacts are ignored once health has run out, including the tick between
// the final hit and entering the defeated state.
func (p *Player) HandleContact(c body.Contact) {
	if p.health <= 0 || p.machine.IsCurrentState(PlayerDefeated) {
		return
	}

	out := Classify(p.body.ID(), c, p.obstacles)
	switch out.Kind {
	case ContactHazard:
		p.transition(PlayerSpikeHit)
	case ContactEnemyStomp:
		p.enemy = out.Other
		p.transition(PlayerSnowmanStomp)
	case ContactEnemyHit:
		p.enemy = out.Other
		p.transition(PlayerSnowmanHit)
	case ContactGround:
		if p.machine.IsCurrentState(PlayerJump) {
			p.transition(PlayerIdle)
		}
	case ContactStar:
		events.Emit(p.bus, events.StarCollectedTopic, events.StarCollected{})
		out.Object.Destroy()
	case ContactHealth:
		amount := out.Object.Amount()
		if amount <= 0 {
			amount = p.cfg.PickupHealth
		}
		p.setHealth(p.health + amount)
		out.Object.Destroy()
	}
}

// transition ignores the error: every target is checked by Validate in
// NewPlayer and the machine logs unknown states itself.
func (p *Player) transition(name string) {
	_ = p.machine.SetState(name)
}

// setHealth is the only place health changes. Every call emits exactly one
// health-changed event.
func (p *Player) setHealth(value int) {
	prev := p.health
	p.health = clamp(value, 0, p.cfg.MaxHealth)
	events.Emit(p.bus, events.HealthChangedTopic, events.HealthChanged{Previous: prev, Current: p.health})
}

// recover queues the state that follows a hit.
func (p *Player) recover() {
	if p.health <= 0 {
		p.transition(PlayerDefeated)
		return
	}
	p.transition(PlayerIdle)
}

// steer applies horizontal velocity toward the held direction and reports
// whether a direction was held.
func (p *Player) steer() bool {
	_, vy := p.body.Velocity()
	switch {
	case p.input.IsHeld(ActionLeft):
		p.sprite.SetFlipHorizontal(true)
		p.body.SetVelocity(-p.cfg.MoveSpeed, vy)
		return true
	case p.input.IsHeld(ActionRight):
		p.sprite.SetFlipHorizontal(false)
		p.body.SetVelocity(p.cfg.MoveSpeed, vy)
		return true
	}
	return false
}

// bounce sets an upward velocity, keeping or replacing the horizontal part.
func (p *Player) bounce(vx float64) {
	p.body.SetVelocity(vx, -p.cfg.BounceSpeed)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
