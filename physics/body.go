package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/penguin/body"
)

// Body is a group of chipmunk shapes with a stable identity. Dynamic bodies
// own a chipmunk body; tiles, parts and sensors hang off the space's static
// body and keep their own position.
type Body struct {
	world  *World
	id     body.ID
	parent *Body
	object body.Object
	cp     *cp.Body
	shapes []*cp.Shape
	x, y   float64

	onCollide func(body.Contact)
	removed   bool
}

func (b *Body) ID() body.ID { return b.id }

func (b *Body) Parent() (body.Body, bool) {
	if b.parent == nil {
		return nil, false
	}
	return b.parent, true
}

func (b *Body) Object() (body.Object, bool) {
	if b.object == nil {
		return nil, false
	}
	return b.object, true
}

// SetObject attaches the game object reported to contact handlers.
func (b *Body) SetObject(obj body.Object) { b.object = obj }

// Position returns the centre of the body in world pixels.
func (b *Body) Position() (x, y float64) {
	if b.cp != nil {
		p := b.cp.Position()
		return p.X, p.Y
	}
	return b.x, b.y
}

func (b *Body) Velocity() (x, y float64) {
	if b.cp == nil {
		return 0, 0
	}
	v := b.cp.Velocity()
	return v.X, v.Y
}

// SetVelocity is a no-op on static bodies.
func (b *Body) SetVelocity(x, y float64) {
	if b.cp == nil || b.removed {
		return
	}
	b.cp.SetVelocity(x, y)
}

// OnCollide sets the callback that receives begin contacts of this body and
// of every part parented to it.
func (b *Body) OnCollide(fn func(c body.Contact)) { b.onCollide = fn }

// Destroy removes the body from its world. Removal requested during a
// physics step happens once the step finishes.
func (b *Body) Destroy() { b.world.Remove(b) }

// Removed reports whether Destroy was called.
func (b *Body) Removed() bool { return b.removed }

func (b *Body) collider() func(body.Contact) {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.onCollide != nil {
			return cur.onCollide
		}
	}
	return nil
}

func (b *Body) alive() bool {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.removed {
			return false
		}
	}
	return true
}
