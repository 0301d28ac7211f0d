package controller

import "math/rand/v2"

// Direction is a horizontal patrol direction.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// DirectionPicker chooses the first patrol leg of an enemy.
type DirectionPicker interface {
	PickDirection() Direction
}

// DirectionFunc adapts a function to DirectionPicker.
type DirectionFunc func() Direction

func (f DirectionFunc) PickDirection() Direction { return f() }

// RandomPicker picks left or right with roughly equal odds.
type RandomPicker struct {
	rng *rand.Rand
}

func NewRandomPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomPicker) PickDirection() Direction {
	return DirectionForRoll(p.rng.IntN(100) + 1)
}

// DirectionForRoll maps a 1..100 roll to a direction.
func DirectionForRoll(roll int) Direction {
	if roll < 50 {
		return Left
	}
	return Right
}
