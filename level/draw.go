package level

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/penguin/common"
	"github.com/milk9111/penguin/physics"
)

// Draw renders tiles, pickups, snowmen and the player through the camera.
func (l *Level) Draw(screen *ebiten.Image) {
	screen.Fill(l.palette.background)
	camX, camY := l.camera.X, l.camera.Y
	l.drawTiles(screen, camX, camY)

	for _, p := range l.pickups {
		if !p.taken {
			p.sprite.Draw(screen, camX, camY)
		}
	}
	for _, e := range l.enemies {
		e.sprite.Draw(screen, camX, camY)
	}
	l.playerSprite.Draw(screen, camX, camY)
}

func (l *Level) drawTiles(screen *ebiten.Image, camX, camY float64) {
	ts := l.world.TileSize()
	x0 := int(math.Max(0, math.Floor(camX/ts)))
	y0 := int(math.Max(0, math.Floor(camY/ts)))
	x1 := min(l.def.Width, int(math.Ceil((camX+common.ScreenWidth)/ts))+1)
	y1 := min(l.def.Height, int(math.Ceil((camY+common.ScreenHeight)/ts))+1)

	size := float32(ts)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sx := float32(float64(x)*ts - camX)
			sy := float32(float64(y)*ts - camY)
			switch l.def.Tiles[y*l.def.Width+x] {
			case physics.TileGround:
				vector.FillRect(screen, sx, sy, size, size, l.palette.ground, false)
			case physics.TileSpikes:
				drawSpike(screen, sx, sy, size, l.palette.spikes)
			}
		}
	}
}

// drawSpike stacks narrowing bars into a stepped triangle.
func drawSpike(screen *ebiten.Image, sx, sy, size float32, c color.Color) {
	const steps = 4
	bar := size / steps
	for i := 0; i < steps; i++ {
		w := size * float32(steps-i) / steps
		vector.FillRect(screen, sx+(size-w)/2, sy+size-bar*float32(i+1), w, bar, c, false)
	}
}
