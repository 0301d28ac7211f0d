// Package sprite plays placeholder frame animations and the flash and
// shrink effects the controllers ask for.
package sprite

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/common"
)

// Animation is one named loop of generated frames.
type Animation struct {
	Name   string
	Frames int
	FPS    float64
	Loop   bool
	Color  color.Color
}

// Positioner supplies the centre the sprite is drawn at.
type Positioner interface {
	Position() (x, y float64)
}

type flash struct {
	from, to color.Color
	dur      time.Duration
	elapsed  time.Duration
}

type shrink struct {
	dur     time.Duration
	elapsed time.Duration
	done    func()
}

// Sprite is a rectangle animated through generated frames. Its logic runs
// without a graphics context; images are created on first Draw.
type Sprite struct {
	log    logrus.FieldLogger
	pos    Positioner
	width  float64
	height float64
	anims  map[string]Animation

	current string
	frame   int
	elapsed time.Duration
	flip    bool

	flash  *flash
	shrink *shrink
	hidden bool

	images map[string][]*ebiten.Image
}

func New(pos Positioner, width, height float64, anims []Animation, log logrus.FieldLogger) *Sprite {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Sprite{
		log:    log,
		pos:    pos,
		width:  width,
		height: height,
		anims:  make(map[string]Animation, len(anims)),
	}
	for _, a := range anims {
		if a.Frames <= 0 {
			a.Frames = 1
		}
		if a.FPS <= 0 {
			a.FPS = 10
		}
		if a.Color == nil {
			a.Color = color.White
		}
		s.anims[a.Name] = a
	}
	return s
}

// Play switches to the named animation. Playing the current animation again
// does not restart it; unknown names are logged and ignored.
func (s *Sprite) Play(name string) {
	if name == s.current {
		return
	}
	if _, ok := s.anims[name]; !ok {
		s.log.WithField("anim", name).Warn("unknown animation")
		return
	}
	s.current = name
	s.frame = 0
	s.elapsed = 0
}

func (s *Sprite) SetFlipHorizontal(flip bool) { s.flip = flip }

// Flash tints the sprite with to and fades back to from over d.
func (s *Sprite) Flash(from, to color.Color, d time.Duration) {
	if d <= 0 {
		return
	}
	s.flash = &flash{from: from, to: to, dur: d}
}

// ShrinkFade scales the sprite to nothing while fading it out, hides it and
// then calls done exactly once.
func (s *Sprite) ShrinkFade(d time.Duration, done func()) {
	if s.shrink != nil || s.hidden {
		return
	}
	s.shrink = &shrink{dur: d, done: done}
	if d <= 0 {
		s.finishShrink()
	}
}

func (s *Sprite) finishShrink() {
	done := s.shrink.done
	s.shrink = nil
	s.hidden = true
	if done != nil {
		done()
	}
}

// Update advances frames and effects.
func (s *Sprite) Update(dt time.Duration) {
	if anim, ok := s.anims[s.current]; ok && anim.Frames > 1 {
		s.elapsed += dt
		per := time.Duration(float64(time.Second) / anim.FPS)
		for s.elapsed >= per {
			s.elapsed -= per
			if s.frame+1 < anim.Frames {
				s.frame++
			} else if anim.Loop {
				s.frame = 0
			}
		}
	}

	if s.flash != nil {
		s.flash.elapsed += dt
		if s.flash.elapsed >= s.flash.dur {
			s.flash = nil
		}
	}

	if s.shrink != nil {
		s.shrink.elapsed += dt
		if s.shrink.elapsed >= s.shrink.dur {
			s.finishShrink()
		}
	}
}

// Current returns the playing animation and frame.
func (s *Sprite) Current() (string, int) { return s.current, s.frame }

func (s *Sprite) Flipped() bool { return s.flip }

// Visible is false once a shrink-fade finished.
func (s *Sprite) Visible() bool { return !s.hidden }

// Tint is the colour scale applied this tick.
func (s *Sprite) Tint() color.Color {
	if s.flash == nil {
		return color.White
	}
	t := float64(s.flash.elapsed) / float64(s.flash.dur)
	return lerpColor(s.flash.to, s.flash.from, t)
}

// Scale is the uniform draw scale; it doubles as alpha while shrinking.
func (s *Sprite) Scale() float64 {
	if s.hidden {
		return 0
	}
	if s.shrink == nil || s.shrink.dur <= 0 {
		return 1
	}
	return 1 - common.Clamp(float64(s.shrink.elapsed)/float64(s.shrink.dur), 0, 1)
}

func lerpColor(a, b color.Color, t float64) color.Color {
	t = common.Clamp(t, 0, 1)
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint16 {
		return uint16(math.Round(common.Lerp(float64(x), float64(y), t)))
	}
	return color.RGBA64{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}
