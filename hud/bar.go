package hud

import (
	"time"

	"github.com/milk9111/penguin/common"
)

// Bar animates a fill fraction toward its latest target.
type Bar struct {
	tween   time.Duration
	from    float64
	to      float64
	shown   float64
	elapsed time.Duration
}

func NewBar(fraction float64, tween time.Duration) *Bar {
	f := common.Clamp(fraction, 0, 1)
	return &Bar{tween: tween, from: f, to: f, shown: f}
}

// Set starts a tween from the fraction currently shown to fraction.
func (b *Bar) Set(fraction float64) {
	b.from = b.shown
	b.to = common.Clamp(fraction, 0, 1)
	b.elapsed = 0
	if b.tween <= 0 {
		b.shown = b.to
	}
}

// Snap jumps to fraction without animating.
func (b *Bar) Snap(fraction float64) {
	f := common.Clamp(fraction, 0, 1)
	b.from, b.to, b.shown = f, f, f
	b.elapsed = 0
}

func (b *Bar) SetTween(d time.Duration) { b.tween = d }

func (b *Bar) Update(dt time.Duration) {
	if b.shown == b.to {
		return
	}
	b.elapsed += dt
	if b.tween <= 0 || b.elapsed >= b.tween {
		b.shown = b.to
		return
	}
	b.shown = common.Lerp(b.from, b.to, float64(b.elapsed)/float64(b.tween))
}

// Shown is the fraction drawn this frame.
func (b *Bar) Shown() float64 { return b.shown }

// Target is the fraction the bar is heading to.
func (b *Bar) Target() float64 { return b.to }
