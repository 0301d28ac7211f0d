// Package body describes the physics bodies the game controllers reason
// about, independent of the physics engine that owns them.
package body

// ID identifies a physics body for the lifetime of a level.
type ID uint64

// Kind is the semantic tag attached to a body at spawn time.
type Kind string

const (
	KindPlayer  Kind = "player"
	KindSnowman Kind = "snowman"
	KindSpikes  Kind = "spikes"
	KindStar    Kind = "star"
	KindHealth  Kind = "health"
)

// Object is the game object attached to a body. Bare tile bodies carry none.
type Object interface {
	Kind() Kind
	// Amount is a kind specific quantity, e.g. the health restored by a
	// pickup. Zero means the kind's default.
	Amount() int
	// Destroy removes the object and its body from the level. It is safe to
	// call more than once.
	Destroy()
}

// Body is the read-only view of a physics body.
//
// Compound bodies report contacts on their child parts; Parent walks the
// ownership chain so callers can resolve the part to the body that was
// registered at spawn time. The root returns (nil, false).
type Body interface {
	ID() ID
	Parent() (Body, bool)
	Object() (Object, bool)
	Position() (x, y float64)
}

// Contact is a begin-contact notification for two overlapping bodies.
type Contact struct {
	A Body
	B Body
}

// Root returns the top of b's ownership chain.
func Root(b Body) Body {
	for b != nil {
		p, ok := b.Parent()
		if !ok || p == nil {
			return b
		}
		b = p
	}
	return nil
}

// InChain reports whether id is b or one of b's ancestors.
func InChain(b Body, id ID) bool {
	for b != nil {
		if b.ID() == id {
			return true
		}
		p, ok := b.Parent()
		if !ok {
			return false
		}
		b = p
	}
	return false
}

// ObjectOf returns the first object attached along b's ownership chain.
func ObjectOf(b Body) (Object, bool) {
	for b != nil {
		if obj, ok := b.Object(); ok && obj != nil {
			return obj, true
		}
		p, ok := b.Parent()
		if !ok {
			return nil, false
		}
		b = p
	}
	return nil, false
}
