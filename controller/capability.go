// Package controller contains the behavior controllers of the game's
// entities. Each controller owns an fsm.Machine and drives the entity's
// sprite and physics body through the capabilities declared here.
package controller

import (
	"image/color"
	"time"

	"github.com/milk9111/penguin/body"
)

// Action is a logical input action.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Input answers questions about the current frame's input state.
type Input interface {
	IsHeld(a Action) bool
	WasJustPressed(a Action) bool
}

// Sprite is the visual side of an entity.
type Sprite interface {
	Play(animation string)
	SetFlipHorizontal(flip bool)
	// Flash tints the sprite from one colour to another and back over d.
	Flash(from, to color.Color, d time.Duration)
	// ShrinkFade scales the sprite down to nothing over d, then calls done.
	ShrinkFade(d time.Duration, done func())
}

// Mover is the physics side of an entity.
type Mover interface {
	body.Body
	Velocity() (x, y float64)
	SetVelocity(x, y float64)
	OnCollide(fn func(c body.Contact))
	Destroy()
}
