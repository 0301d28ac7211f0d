// Package level builds a playable level from a level file and the prefab
// set, and runs one tick of it: physics, then controllers, then sprites.
package level

import (
	"fmt"
	"image/color"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/common"
	"github.com/milk9111/penguin/controller"
	"github.com/milk9111/penguin/events"
	"github.com/milk9111/penguin/levels"
	"github.com/milk9111/penguin/obstacle"
	"github.com/milk9111/penguin/physics"
	"github.com/milk9111/penguin/prefabs"
	"github.com/milk9111/penguin/script"
	"github.com/milk9111/penguin/sprite"
)

// Deps are the inputs of Build.
type Deps struct {
	Prefabs *prefabs.Set
	Input   controller.Input
	// Patrol picks snowman directions; nil means a plain random roll.
	Patrol *script.Patrol
	Seed   uint64
	Log    logrus.FieldLogger
}

type enemy struct {
	ctrl   *controller.Enemy
	body   *physics.Body
	sprite *sprite.Sprite
}

// Level is one live run of a level file. It owns the event bus; Close ends
// every subscription made against it.
type Level struct {
	def       *levels.Level
	log       logrus.FieldLogger
	world     *physics.World
	obstacles *obstacle.Registry
	bus       *events.Bus
	tiles     physics.Tiles

	player       *controller.Player
	playerBody   *physics.Body
	playerSprite *sprite.Sprite
	enemies      []*enemy
	pickups      []*Pickup

	camera   *Camera
	palette  palette
	stars    int
	defeated bool
	ticks    int
}

type palette struct {
	background, ground, spikes color.Color
}

// Build creates the physics world, registers obstacles and spawns every
// entity of def.
func Build(def *levels.Level, deps Deps) (*Level, error) {
	if def == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	if deps.Prefabs == nil {
		return nil, fmt.Errorf("level: nil prefab set")
	}
	if deps.Input == nil {
		return nil, fmt.Errorf("level: nil input")
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	log := deps.Log.WithField("level", def.Name)
	world := physics.NewWorld(physics.Options{Log: log})
	ts := world.TileSize()

	l := &Level{
		def:       def,
		log:       log,
		world:     world,
		obstacles: obstacle.NewRegistry(),
		bus:       events.NewBus(log),
	}
	l.palette = newPalette(deps.Prefabs.HUD)

	l.tiles = world.AddTiles(def.Width, def.Height, def.Tiles)
	if l.tiles.Spikes != nil {
		l.obstacles.Register(obstacle.Hazard, l.tiles.Spikes.ID())
	}

	events.Subscribe(l.bus, events.StarCollectedTopic, func(events.StarCollected) { l.stars++ })
	events.Subscribe(l.bus, events.PlayerDefeatedTopic, func(events.PlayerDefeated) { l.defeated = true })

	worldW, worldH := float64(def.Width)*ts, float64(def.Height)*ts
	for i, e := range def.Entities {
		var err error
		switch e.Type {
		case levels.EntityPlayer:
			err = l.spawnPlayer(e, deps)
		case levels.EntitySnowman:
			err = l.spawnSnowman(e, deps, worldW)
		case levels.EntityStar, levels.EntityHealth:
			l.spawnPickup(e, deps.Prefabs.Pickups)
		}
		if err != nil {
			l.bus.Close()
			return nil, fmt.Errorf("level %s: entity %d: %w", def.Name, i, err)
		}
	}

	l.camera = NewCamera(common.ScreenWidth, common.ScreenHeight, worldW, worldH, def.CameraY)
	px, _ := l.player.Position()
	l.camera.Snap(px)

	log.WithFields(logrus.Fields{
		"bodies":    world.Len(),
		"obstacles": l.obstacles.Len(),
		"snowmen":   len(l.enemies),
		"pickups":   len(l.pickups),
	}).Info("level built")
	return l, nil
}

func newPalette(hud *prefabs.HUDSpec) palette {
	p := palette{
		background: color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
		ground:     color.NRGBA{R: 0x5c, G: 0x40, B: 0x33, A: 0xff},
		spikes:     color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff},
	}
	if hud != nil {
		p.background = hud.Background.Or(p.background)
		p.ground = hud.Ground.Or(p.ground)
		p.spikes = hud.Spikes.Or(p.spikes)
	}
	return p
}

// spawnAt returns the centre of a w x h box standing on the floor of tile
// cell (tx, ty).
func (l *Level) spawnAt(tx, ty int, h float64) (float64, float64) {
	ts := l.world.TileSize()
	return (float64(tx) + 0.5) * ts, float64(ty+1)*ts - h/2
}

func (l *Level) spawnPlayer(e levels.Entity, deps Deps) error {
	spec := deps.Prefabs.Player
	w, h := collider(spec.Collider, 20, 28)
	x, y := l.spawnAt(e.X, e.Y, h)

	b := l.world.AddBox(physics.BoxSpec{X: x, Y: y, Width: w, Height: h})
	spr := sprite.New(b, w, h, Animations(spec.Animation, color.White), l.log.WithField("sprite", "player"))

	p, err := controller.NewPlayer(controller.PlayerDeps{
		Sprite:    spr,
		Body:      b,
		Input:     deps.Input,
		Obstacles: l.obstacles,
		Bus:       l.bus,
		Log:       l.log,
	}, PlayerConfig(spec))
	if err != nil {
		return err
	}
	b.SetObject(actor(body.KindPlayer))
	l.player, l.playerBody, l.playerSprite = p, b, spr
	return nil
}

func (l *Level) spawnSnowman(e levels.Entity, deps Deps, worldW float64) error {
	spec := deps.Prefabs.Snowman
	w, h := collider(spec.Collider, 26, 30)
	x, y := l.spawnAt(e.X, e.Y, h)

	b := l.world.AddBox(physics.BoxSpec{X: x, Y: y, Width: w, Height: h, Mass: 2})
	b.SetObject(actor(body.KindSnowman))
	l.obstacles.Register(obstacle.Enemy, b.ID())

	seed := deps.Seed ^ uint64(b.ID())*0x9e3779b97f4a7c15
	var picker controller.DirectionPicker = controller.NewRandomPicker(seed)
	if deps.Patrol != nil {
		picker = deps.Patrol.Picker(seed, x, y, worldW)
	}

	spr := sprite.New(b, w, h, Animations(spec.Animation, color.White), l.log.WithField("sprite", "snowman"))
	ctrl, err := controller.NewEnemy(controller.EnemyDeps{
		Sprite: spr,
		Body:   b,
		Bus:    l.bus,
		Picker: picker,
		Log:    l.log,
	}, EnemyConfig(spec))
	if err != nil {
		return err
	}
	l.enemies = append(l.enemies, &enemy{ctrl: ctrl, body: b, sprite: spr})
	return nil
}

func (l *Level) spawnPickup(e levels.Entity, spec *prefabs.PickupsSpec) {
	kind := body.KindStar
	ps := prefabs.PickupSpec{}
	fallback := color.Color(color.NRGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff})
	if spec != nil {
		ps = spec.Star
	}
	if e.Type == levels.EntityHealth {
		kind = body.KindHealth
		fallback = color.NRGBA{R: 0xef, G: 0x47, B: 0x6f, A: 0xff}
		if spec != nil {
			ps = spec.Health
		}
	}
	size := ps.Size
	if size <= 0 {
		size = 16
	}
	x, y := l.spawnAt(e.X, e.Y, l.world.TileSize())

	b := l.world.AddSensor(x, y, size, size)
	name := string(kind)
	spr := sprite.New(b, size, size, []sprite.Animation{{Name: name, Color: ps.Color.Or(fallback)}}, l.log)
	spr.Play(name)

	p := &Pickup{kind: kind, amount: e.IntProp("amount", ps.Amount), body: b, sprite: spr}
	b.SetObject(p)
	l.pickups = append(l.pickups, p)
}

func collider(c prefabs.ColliderSpec, w, h float64) (float64, float64) {
	if c.Width > 0 {
		w = c.Width
	}
	if c.Height > 0 {
		h = c.Height
	}
	return w, h
}

// Update runs one tick: the physics step delivers contacts, then every
// controller updates, then sprites advance.
func (l *Level) Update(dt time.Duration) {
	l.ticks++
	l.world.Step(dt)

	l.player.Update(dt)
	for _, e := range l.enemies {
		e.ctrl.Update(dt)
	}

	l.playerSprite.Update(dt)
	alive := l.enemies[:0]
	for _, e := range l.enemies {
		e.sprite.Update(dt)
		if e.body.Removed() {
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(l.enemies); i++ {
		l.enemies[i] = nil
	}
	l.enemies = alive

	px, _ := l.player.Position()
	l.camera.Follow(px)
}

// Configure applies reloaded prefabs to live entities.
func (l *Level) Configure(set *prefabs.Set) {
	if set == nil {
		return
	}
	l.player.Configure(PlayerConfig(set.Player))
	cfg := EnemyConfig(set.Snowman)
	for _, e := range l.enemies {
		e.ctrl.Configure(cfg)
	}
	l.palette = newPalette(set.HUD)
	l.log.Info("prefabs applied")
}

// Close drops every subscription on the level bus.
func (l *Level) Close() {
	l.bus.Close()
}

func (l *Level) Name() string                  { return l.def.Name }
func (l *Level) Bus() *events.Bus              { return l.bus }
func (l *Level) Player() *controller.Player    { return l.player }
func (l *Level) Camera() *Camera               { return l.camera }
func (l *Level) Stars() int                    { return l.stars }
func (l *Level) Defeated() bool                { return l.defeated }
func (l *Level) Ticks() int                    { return l.ticks }
func (l *Level) Obstacles() *obstacle.Registry { return l.obstacles }

// Enemies returns the snowmen whose bodies are still in the world.
func (l *Level) Enemies() []*controller.Enemy {
	out := make([]*controller.Enemy, 0, len(l.enemies))
	for _, e := range l.enemies {
		out = append(out, e.ctrl)
	}
	return out
}

// PickupsLeft counts uncollected pickups of kind.
func (l *Level) PickupsLeft(kind body.Kind) int {
	n := 0
	for _, p := range l.pickups {
		if p.kind == kind && !p.taken {
			n++
		}
	}
	return n
}

// actor tags player and snowman bodies. Controllers own their lifetime, so
// Destroy does nothing here.
type actor body.Kind

func (a actor) Kind() body.Kind { return body.Kind(a) }
func (actor) Amount() int       { return 0 }
func (actor) Destroy()          {}
