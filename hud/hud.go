// Package hud draws the star counter and the animated health bar. It learns
// about the run only through the level's event bus.
package hud

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/penguin/events"
	"github.com/milk9111/penguin/prefabs"
)

type style struct {
	barWidth, barHeight, margin float64
	track, fill, text           color.Color
}

func newStyle(spec *prefabs.HUDSpec) style {
	s := style{
		barWidth:  200,
		barHeight: 12,
		margin:    12,
		track:     color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
		fill:      color.NRGBA{R: 0x3c, G: 0xb0, B: 0x43, A: 0xff},
		text:      color.White,
	}
	if spec == nil {
		return s
	}
	if spec.BarWidth > 0 {
		s.barWidth = spec.BarWidth
	}
	if spec.BarHeight > 0 {
		s.barHeight = spec.BarHeight
	}
	if spec.Margin > 0 {
		s.margin = spec.Margin
	}
	s.track = spec.Track.Or(s.track)
	s.fill = spec.Fill.Or(s.fill)
	s.text = spec.Text.Or(s.text)
	return s
}

func tweenOf(spec *prefabs.HUDSpec) time.Duration {
	if spec == nil {
		return 200 * time.Millisecond
	}
	return prefabs.Millis(spec.TweenMS, 200*time.Millisecond)
}

// HUD keeps the counters shown on screen.
type HUD struct {
	log   logrus.FieldLogger
	style style
	bar   *Bar

	stars     int
	health    int
	maxHealth int
	subs      []*events.Subscription

	ui    *ebitenui.UI
	label *widget.Text
}

func New(spec *prefabs.HUDSpec, log logrus.FieldLogger) *HUD {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HUD{
		log:   log.WithField("component", "hud"),
		style: newStyle(spec),
		bar:   NewBar(1, tweenOf(spec)),
	}
}

// Attach follows a new level's bus. Subscriptions on the previous bus are
// dropped and the counters snap to the given values.
func (h *HUD) Attach(bus *events.Bus, stars, health, maxHealth int) {
	h.Detach()
	h.stars = stars
	h.health = health
	h.maxHealth = max(maxHealth, 1)
	h.bar.Snap(h.fraction())
	h.log.WithFields(logrus.Fields{"stars": stars, "health": health}).Debug("hud attached")

	h.subs = append(h.subs,
		events.Subscribe(bus, events.StarCollectedTopic, func(events.StarCollected) {
			h.stars++
		}),
		events.Subscribe(bus, events.HealthChangedTopic, func(ev events.HealthChanged) {
			h.health = ev.Current
			h.bar.Set(h.fraction())
		}),
	)
}

func (h *HUD) Detach() {
	for _, s := range h.subs {
		s.Unsubscribe()
	}
	h.subs = nil
}

// Configure applies a reloaded hud.yaml.
func (h *HUD) Configure(spec *prefabs.HUDSpec) {
	h.style = newStyle(spec)
	h.bar.SetTween(tweenOf(spec))
	h.ui, h.label = nil, nil
}

func (h *HUD) Stars() int        { return h.stars }
func (h *HUD) Health() int       { return h.health }
func (h *HUD) Bar() *Bar         { return h.bar }
func (h *HUD) StarLabel() string { return fmt.Sprintf("Stars: %d", h.stars) }

func (h *HUD) fraction() float64 {
	return float64(h.health) / float64(h.maxHealth)
}

// Update advances the bar tween.
func (h *HUD) Update(dt time.Duration) {
	h.bar.Update(dt)
	if h.ui != nil {
		h.label.Label = h.StarLabel()
		h.ui.Update()
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	s := h.style
	x, y := float32(s.margin), float32(s.margin)
	w, bh := float32(s.barWidth), float32(s.barHeight)
	vector.FillRect(screen, x, y, w, bh, s.track, false)
	if fill := w * float32(h.bar.Shown()); fill > 0 {
		vector.FillRect(screen, x, y, fill, bh, s.fill, false)
	}

	if h.ui == nil {
		h.build()
	}
	h.ui.Draw(screen)
}

// build lays the star label out under the health bar.
func (h *HUD) build() {
	face := ebtext.Face(ebtext.NewGoXFace(basicfont.Face7x13))
	h.label = widget.NewText(
		widget.TextOpts.Text(h.StarLabel(), &face, h.style.text),
	)

	top := int(h.style.margin + h.style.barHeight + 6)
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: top, Left: int(h.style.margin)}),
		)),
	)
	root.AddChild(h.label)
	h.ui = &ebitenui.UI{Container: root}
}
