package controller

import (
	"image/color"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/body/bodytest"
	"github.com/milk9111/penguin/events"
)

type fakeSprite struct {
	played  []string
	flipped bool
	flashes []color.Color
	fades   int
	onFaded func()
}

func (s *fakeSprite) Play(anim string)            { s.played = append(s.played, anim) }
func (s *fakeSprite) SetFlipHorizontal(flip bool) { s.flipped = flip }
func (s *fakeSprite) Flash(_, to color.Color, _ time.Duration) {
	s.flashes = append(s.flashes, to)
}
func (s *fakeSprite) ShrinkFade(_ time.Duration, done func()) {
	s.fades++
	s.onFaded = done
}

func (s *fakeSprite) last() string {
	if len(s.played) == 0 {
		return ""
	}
	return s.played[len(s.played)-1]
}

type fakeMover struct {
	bodytest.Body
	vx, vy    float64
	collide   func(body.Contact)
	destroyed int
}

func newMover(id body.ID, x, y float64) *fakeMover {
	return &fakeMover{Body: bodytest.Body{BodyID: id, X: x, Y: y}}
}

func (m *fakeMover) Velocity() (x, y float64)          { return m.vx, m.vy }
func (m *fakeMover) SetVelocity(x, y float64)          { m.vx, m.vy = x, y }
func (m *fakeMover) OnCollide(fn func(c body.Contact)) { m.collide = fn }
func (m *fakeMover) Destroy()                          { m.destroyed++ }

// touch delivers a contact between the mover and other through the
// registered collide callback, the same way the physics world does.
func (m *fakeMover) touch(other body.Body) {
	if m.collide != nil {
		m.collide(body.Contact{A: other, B: m})
	}
}

type fakeInput struct {
	held    map[Action]bool
	pressed map[Action]bool
}

func newInput() *fakeInput {
	return &fakeInput{held: map[Action]bool{}, pressed: map[Action]bool{}}
}

func (i *fakeInput) IsHeld(a Action) bool         { return i.held[a] }
func (i *fakeInput) WasJustPressed(a Action) bool { return i.pressed[a] }

func (i *fakeInput) release() {
	i.held = map[Action]bool{}
	i.pressed = map[Action]bool{}
}

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestBus() *events.Bus {
	return events.NewBus(quietLog())
}

const tick = 16 * time.Millisecond
