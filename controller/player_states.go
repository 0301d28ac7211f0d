package controller

import (
	"time"

	"github.com/milk9111/penguin/events"
	"github.com/milk9111/penguin/fsm"
)

// Player state singletons.
var (
	playerStateIdle         fsm.State[*Player] = playerIdleState{}
	playerStateWalk         fsm.State[*Player] = playerWalkState{}
	playerStateJump         fsm.State[*Player] = playerJumpState{}
	playerStateSpikeHit     fsm.State[*Player] = playerSpikeHitState{}
	playerStateSnowmanHit   fsm.State[*Player] = playerSnowmanHitState{}
	playerStateSnowmanStomp fsm.State[*Player] = playerSnowmanStompState{}
	playerStateDefeated     fsm.State[*Player] = playerDefeatedState{}
)

// playerTransitions lists every state the player's hooks transition to.
var playerTransitions = []string{
	PlayerIdle, PlayerWalk, PlayerJump,
	PlayerSpikeHit, PlayerSnowmanHit, PlayerSnowmanStomp, PlayerDefeated,
}

type playerIdleState struct{}

type playerWalkState struct{}

type playerJumpState struct{}

type playerSpikeHitState struct{}

type playerSnowmanHitState struct{}

type playerSnowmanStompState struct{}

type playerDefeatedState struct{}

func (playerIdleState) Enter(p *Player) {
	_, vy := p.body.Velocity()
	p.body.SetVelocity(0, vy)
	p.sprite.Play(AnimPlayerIdle)
}
func (playerIdleState) Update(p *Player, _ time.Duration) {
	if p.input.IsHeld(ActionLeft) || p.input.IsHeld(ActionRight) {
		p.transition(PlayerWalk)
	} else if p.input.WasJustPressed(ActionJump) {
		p.transition(PlayerJump)
	}
}
func (playerIdleState) Exit(*Player) {}

func (playerWalkState) Enter(p *Player) {
	p.sprite.Play(AnimPlayerWalk)
}
func (playerWalkState) Update(p *Player, _ time.Duration) {
	jump := p.input.WasJustPressed(ActionJump)
	held := p.steer()
	if jump {
		p.transition(PlayerJump)
		return
	}
	if !held {
		p.transition(PlayerIdle)
	}
}
func (playerWalkState) Exit(*Player) {}

func (playerJumpState) Enter(p *Player) {
	vx, _ := p.body.Velocity()
	p.body.SetVelocity(vx, -p.cfg.JumpSpeed)
}

// Update only steers; the jump ends when a landing contact arrives.
func (playerJumpState) Update(p *Player, _ time.Duration) {
	p.steer()
}
func (playerJumpState) Exit(*Player) {}

func (playerSpikeHitState) Enter(p *Player) {
	vx, _ := p.body.Velocity()
	p.bounce(vx)
	p.setHealth(p.health - p.cfg.HazardDamage)
	p.sprite.Flash(p.cfg.FlashFrom, p.cfg.HazardFlash, p.cfg.FlashDuration)
	p.recover()
}
func (playerSpikeHitState) Update(*Player, time.Duration) {}
func (playerSpikeHitState) Exit(*Player)                  {}

// Enter takes the enemy stored by HandleContact. A second contact can arrive
// while this state is still current, so Exit must not clear it.
func (playerSnowmanHitState) Enter(p *Player) {
	enemy := p.enemy
	p.enemy = nil
	vx := p.cfg.KnockbackSpeed
	if enemy != nil {
		px, _ := p.body.Position()
		ex, _ := enemy.Position()
		if px < ex {
			vx = -vx
		}
	}
	p.bounce(vx)
	p.setHealth(p.health - p.cfg.EnemyDamage)
	p.sprite.Flash(p.cfg.FlashFrom, p.cfg.EnemyFlash, p.cfg.FlashDuration)
	p.recover()
}
func (playerSnowmanHitState) Update(*Player, time.Duration) {}
func (playerSnowmanHitState) Exit(*Player)                  {}

func (playerSnowmanStompState) Enter(p *Player) {
	enemy := p.enemy
	p.enemy = nil
	vx, _ := p.body.Velocity()
	p.bounce(vx)
	if enemy != nil {
		events.Emit(p.bus, events.EnemyStompedTopic, events.EnemyStomped{Enemy: enemy.ID()})
	}
	p.transition(PlayerIdle)
}
func (playerSnowmanStompState) Update(*Player, time.Duration) {}
func (playerSnowmanStompState) Exit(*Player)                  {}

// defeated is a sink: nothing leaves it until the level is rebuilt.
func (playerDefeatedState) Enter(p *Player) {
	p.body.SetVelocity(0, 0)
	p.sprite.Play(AnimPlayerDefeated)
	events.Emit(p.bus, events.PlayerDefeatedTopic, events.PlayerDefeated{})
}
func (playerDefeatedState) Update(*Player, time.Duration) {}
func (playerDefeatedState) Exit(*Player)                  {}
