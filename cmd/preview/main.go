// preview shows the animations defined in the prefab files, one at a time.
// Left/Right cycle through them; F flips the sprite.
package main

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/level"
	"github.com/milk9111/penguin/prefabs"
	"github.com/milk9111/penguin/sprite"
)

const size = 256

type entry struct {
	prefab string
	anim   string
	sprite *sprite.Sprite
}

type center struct{}

func (center) Position() (x, y float64) { return size / 2, size / 2 }

type previewGame struct {
	entries []entry
	current int
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.current = (g.current + 1) % len(g.entries)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.current = (g.current + len(g.entries) - 1) % len(g.entries)
	}
	e := g.entries[g.current]
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		e.sprite.SetFlipHorizontal(!e.sprite.Flipped())
	}
	e.sprite.Update(time.Second / 60)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	e := g.entries[g.current]
	e.sprite.Draw(screen, 0, 0)
	_, frame := e.sprite.Current()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s: %s frame %d", e.prefab, e.anim, frame))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return size, size
}

// entriesFor makes one sprite per animation, each already playing.
func entriesFor(prefab string, spec prefabs.AnimationSpec, w, h float64, log logrus.FieldLogger) []entry {
	anims := level.Animations(spec, color.White)
	sort.Slice(anims, func(i, j int) bool { return anims[i].Name < anims[j].Name })

	out := make([]entry, 0, len(anims))
	for _, a := range anims {
		s := sprite.New(center{}, w*3, h*3, anims, log)
		s.Play(a.Name)
		out = append(out, entry{prefab: prefab, anim: a.Name, sprite: s})
	}
	return out
}

func main() {
	log := logrus.New()
	set, err := prefabs.LoadSet()
	if err != nil {
		log.WithError(err).Fatal("load prefabs")
	}

	var entries []entry
	entries = append(entries, entriesFor(prefabs.PlayerFile, set.Player.Animation,
		set.Player.Collider.Width, set.Player.Collider.Height, log)...)
	entries = append(entries, entriesFor(prefabs.SnowmanFile, set.Snowman.Animation,
		set.Snowman.Collider.Width, set.Snowman.Collider.Height, log)...)
	if len(entries) == 0 {
		log.Error("no animations defined")
		os.Exit(1)
	}

	ebiten.SetWindowSize(size*2, size*2)
	ebiten.SetWindowTitle("Animation Preview")
	if err := ebiten.RunGame(&previewGame{entries: entries}); err != nil {
		log.Fatal(err)
	}
}
