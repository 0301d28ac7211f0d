package events

import "github.com/milk9111/penguin/body"

// StarCollected is emitted by the player when it touches a star.
type StarCollected struct{}

// HealthChanged carries both values so observers can animate the delta.
type HealthChanged struct {
	Previous int
	Current  int
}

// EnemyStomped is emitted by the player when it lands on an enemy.
type EnemyStomped struct {
	Enemy body.ID
}

// PlayerDefeated is emitted once when the player's health reaches zero.
type PlayerDefeated struct{}

var (
	StarCollectedTopic  = NewTopic[StarCollected]("star-collected")
	HealthChangedTopic  = NewTopic[HealthChanged]("health-changed")
	EnemyStompedTopic   = NewTopic[EnemyStomped]("enemy-stomped")
	PlayerDefeatedTopic = NewTopic[PlayerDefeated]("player-defeated")
)
