package sprite

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders the sprite centred on its position, offset by the camera.
func (s *Sprite) Draw(screen *ebiten.Image, camX, camY float64) {
	scale := s.Scale()
	if scale <= 0 || s.pos == nil {
		return
	}
	frames := s.framesFor(s.current)
	if len(frames) == 0 {
		return
	}
	img := frames[s.frame%len(frames)]

	fx := 1.0
	if s.flip {
		fx = -1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.width/2, -s.height/2)
	op.GeoM.Scale(fx*scale, scale)
	x, y := s.pos.Position()
	op.GeoM.Translate(math.Round(x-camX), math.Round(y-camY))
	op.ColorScale.ScaleWithColor(s.Tint())
	op.ColorScale.ScaleAlpha(float32(scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

// framesFor builds placeholder frames: a filled body with a darker band that
// moves one step per frame, and an eye on the facing side.
func (s *Sprite) framesFor(name string) []*ebiten.Image {
	if frames, ok := s.images[name]; ok {
		return frames
	}
	anim, ok := s.anims[name]
	if !ok {
		return nil
	}
	if s.images == nil {
		s.images = make(map[string][]*ebiten.Image)
	}

	w, h := int(math.Max(1, s.width)), int(math.Max(1, s.height))
	band := shade(anim.Color, 0.7)
	frames := make([]*ebiten.Image, anim.Frames)
	for i := range frames {
		img := ebiten.NewImage(w, h)
		img.Fill(anim.Color)
		bandY := h / 2
		if anim.Frames > 1 {
			bandY = (h - h/6) * i / (anim.Frames - 1)
		}
		for y := bandY; y < bandY+h/6 && y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, band)
			}
		}
		img.Set(w-w/4, h/4, color.Black)
		frames[i] = img
	}
	s.images[name] = frames
	return frames
}

func shade(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * f),
		G: uint16(float64(g) * f),
		B: uint16(float64(b) * f),
		A: uint16(a),
	}
}
