// Package bodytest provides in-memory bodies for controller tests.
package bodytest

import "github.com/milk9111/penguin/body"

// Body is a settable body.Body.
type Body struct {
	BodyID body.ID
	Owner  *Body
	Obj    body.Object
	X, Y   float64
}

func (b *Body) ID() body.ID { return b.BodyID }

func (b *Body) Parent() (body.Body, bool) {
	if b.Owner == nil {
		return nil, false
	}
	return b.Owner, true
}

func (b *Body) Object() (body.Object, bool) {
	if b.Obj == nil {
		return nil, false
	}
	return b.Obj, true
}

func (b *Body) Position() (x, y float64) { return b.X, b.Y }

// Object is a body.Object that counts Destroy calls.
type Object struct {
	ObjKind   body.Kind
	ObjAmount int
	Destroyed int
}

func (o *Object) Kind() body.Kind { return o.ObjKind }
func (o *Object) Amount() int     { return o.ObjAmount }
func (o *Object) Destroy()        { o.Destroyed++ }
