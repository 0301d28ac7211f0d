// Package physics wraps a chipmunk space and reports begin contacts as
// body.Contact values, after each step and before controllers update.
package physics

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/common"
)

const (
	collisionTypeTile cp.CollisionType = iota + 1
	collisionTypeDynamic
	collisionTypeSensor
)

// Tile values in a level layer.
const (
	TileEmpty  = 0
	TileGround = 1
	TileSpikes = 2
)

const tileFriction = 0.8

type Options struct {
	Gravity    float64
	Iterations int
	TileSize   int
	Log        logrus.FieldLogger
}

// World owns the chipmunk space and every body in it. It is not safe for
// concurrent use.
type World struct {
	space    *cp.Space
	log      logrus.FieldLogger
	tileSize float64

	nextID  body.ID
	bodies  map[body.ID]*Body
	byShape map[*cp.Shape]*Body

	stepping bool
	removals []*Body
	contacts [][2]*Body
}

func NewWorld(opts Options) *World {
	if opts.Gravity == 0 {
		opts.Gravity = common.Gravity
	}
	if opts.Iterations <= 0 {
		opts.Iterations = 20
	}
	if opts.TileSize <= 0 {
		opts.TileSize = common.TileSize
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	space := cp.NewSpace()
	space.Iterations = uint(opts.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: opts.Gravity})

	w := &World{
		space:    space,
		log:      opts.Log.WithField("component", "physics"),
		tileSize: float64(opts.TileSize),
		bodies:   make(map[body.ID]*Body),
		byShape:  make(map[*cp.Shape]*Body),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space { return w.space }

// TileSize returns the edge length of one tile in pixels.
func (w *World) TileSize() float64 { return w.tileSize }

// Lookup returns a live body by id.
func (w *World) Lookup(id body.ID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Len returns the number of live bodies, parts included.
func (w *World) Len() int { return len(w.bodies) }

func (w *World) newBody(parent *Body) *Body {
	w.nextID++
	b := &Body{world: w, id: w.nextID, parent: parent}
	w.bodies[b.id] = b
	return b
}

func (w *World) attach(b *Body, shape *cp.Shape) {
	b.shapes = append(b.shapes, shape)
	w.byShape[shape] = b
	w.space.AddShape(shape)
}

// BoxSpec describes a dynamic box body.
type BoxSpec struct {
	X, Y          float64
	Width, Height float64
	Mass          float64
	Friction      float64
}

// AddBox creates a dynamic, non-rotating box centred on (X, Y).
func (w *World) AddBox(spec BoxSpec) *Body {
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	cpBody := cp.NewBody(spec.Mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
	w.space.AddBody(cpBody)

	b := w.newBody(nil)
	b.cp = cpBody

	shape := cp.NewBox(cpBody, spec.Width, spec.Height, 0)
	shape.SetFriction(spec.Friction)
	shape.SetCollisionType(collisionTypeDynamic)
	w.attach(b, shape)
	return b
}

// AddSensor creates a static trigger area centred on (x, y). Sensors report
// contacts but never push anything.
func (w *World) AddSensor(x, y, width, height float64) *Body {
	b := w.newBody(nil)
	b.x, b.y = x, y
	bb := cp.BB{L: x - width/2, B: y - height/2, R: x + width/2, T: y + height/2}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeSensor)
	w.attach(b, shape)
	return b
}

// AddStatic creates a solid static box centred on (x, y) with an optional
// parent.
func (w *World) AddStatic(parent *Body, x, y, width, height float64) *Body {
	b := w.newBody(parent)
	b.x, b.y = x, y
	bb := cp.BB{L: x - width/2, B: y - height/2, R: x + width/2, T: y + height/2}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(tileFriction)
	shape.SetCollisionType(collisionTypeTile)
	w.attach(b, shape)
	return b
}

// Tiles is what AddTiles built.
type Tiles struct {
	// Ground holds one body per merged rectangle of ground tiles plus the
	// world bounds.
	Ground []*Body
	// Spikes is the root every spike tile is parented to. Nil when the
	// layer has no spikes.
	Spikes *Body
}

// AddTiles builds static geometry for a width x height layer. Adjacent
// ground tiles are merged into rectangles; every spike tile becomes its own
// part of a single spikes body.
func (w *World) AddTiles(width, height int, layer []int) Tiles {
	var out Tiles
	if width <= 0 || height <= 0 || len(layer) != width*height {
		w.log.WithFields(logrus.Fields{"width": width, "height": height, "tiles": len(layer)}).Warn("tile layer size mismatch")
		return out
	}

	ts := w.tileSize
	processed := make([]bool, width*height)
	solid := func(idx int) bool {
		return !processed[idx] && layer[idx] == TileGround
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			switch layer[idx] {
			case TileSpikes:
				if out.Spikes == nil {
					out.Spikes = w.newBody(nil)
				}
				w.AddStatic(out.Spikes, (float64(x)+0.5)*ts, (float64(y)+0.5)*ts, ts, ts)
				processed[idx] = true
				continue
			case TileGround:
			default:
				processed[idx] = true
				continue
			}

			rw := 1
			for x+rw < width && solid(y*width+x+rw) {
				rw++
			}
			rh := 1
		grow:
			for y+rh < height {
				for xi := x; xi < x+rw; xi++ {
					if !solid((y+rh)*width + xi) {
						break grow
					}
				}
				rh++
			}

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*width+xx] = true
				}
			}

			fw, fh := float64(rw)*ts, float64(rh)*ts
			out.Ground = append(out.Ground, w.AddStatic(nil, float64(x)*ts+fw/2, float64(y)*ts+fh/2, fw, fh))
		}
	}

	out.Ground = append(out.Ground, w.addBounds(float64(width)*ts, float64(height)*ts)...)

	w.log.WithFields(logrus.Fields{"ground": len(out.Ground), "spikes": out.Spikes != nil}).Debug("tiles built")
	return out
}

// addBounds walls the level in on all four sides.
func (w *World) addBounds(worldW, worldH float64) []*Body {
	segments := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	out := make([]*Body, 0, len(segments))
	for _, seg := range segments {
		b := w.newBody(nil)
		b.x, b.y = (seg.a.X+seg.b.X)/2, (seg.a.Y+seg.b.Y)/2
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(tileFriction)
		shape.SetCollisionType(collisionTypeTile)
		w.attach(b, shape)
		out = append(out, b)
	}
	return out
}

// Remove takes b and its shapes out of the space. Calling it twice is a
// no-op; calling it during Step defers the work until the step is done.
func (w *World) Remove(b *Body) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	if w.stepping {
		w.removals = append(w.removals, b)
		return
	}
	w.detach(b)
}

func (w *World) detach(b *Body) {
	for _, shape := range b.shapes {
		w.space.RemoveShape(shape)
		delete(w.byShape, shape)
	}
	b.shapes = nil
	if b.cp != nil {
		w.space.RemoveBody(b.cp)
	}
	delete(w.bodies, b.id)
}

func (w *World) flushRemovals() {
	pending := w.removals
	w.removals = nil
	for _, b := range pending {
		w.detach(b)
	}
}

// Step advances the simulation by dt and then delivers the begin contacts
// it produced, in the order chipmunk reported them.
func (w *World) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	w.stepping = true
	w.space.Step(dt.Seconds())
	w.stepping = false
	w.flushRemovals()

	contacts := w.contacts
	w.contacts = nil
	for _, pair := range contacts {
		w.dispatch(pair[0], pair[1])
	}
	w.flushRemovals()
}

func (w *World) dispatch(a, b *Body) {
	c := body.Contact{A: a, B: b}
	if a.alive() && b.alive() {
		if fn := a.collider(); fn != nil {
			fn(c)
		}
	}
	if a.alive() && b.alive() {
		if fn := b.collider(); fn != nil {
			fn(c)
		}
	}
}

func (w *World) setupHandlers() {
	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := world.byShape[shapeA]
		b, okB := world.byShape[shapeB]
		if okA && okB {
			world.contacts = append(world.contacts, [2]*Body{a, b})
		}
		return true
	}

	pairs := [][2]cp.CollisionType{
		{collisionTypeDynamic, collisionTypeTile},
		{collisionTypeDynamic, collisionTypeDynamic},
		{collisionTypeDynamic, collisionTypeSensor},
	}
	for _, p := range pairs {
		h := w.space.NewCollisionHandler(p[0], p[1])
		h.UserData = w
		h.BeginFunc = begin
	}
}
