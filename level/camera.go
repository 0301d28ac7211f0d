package level

import "github.com/milk9111/penguin/common"

// Camera is the top-left corner of the view in world pixels. It follows a
// target horizontally and keeps the vertical scroll the level starts with.
type Camera struct {
	X, Y float64

	screenW, screenH float64
	worldW, worldH   float64
	// smooth is the share of the remaining distance covered per follow
	smooth float64
}

func NewCamera(screenW, screenH, worldW, worldH, startY float64) *Camera {
	c := &Camera{
		screenW: screenW,
		screenH: screenH,
		worldW:  worldW,
		worldH:  worldH,
		smooth:  0.15,
	}
	c.Y = c.clampY(startY)
	return c
}

// Snap centres the view on x immediately.
func (c *Camera) Snap(x float64) {
	c.X = c.clampX(x - c.screenW/2)
}

// Follow eases the view toward centring x.
func (c *Camera) Follow(x float64) {
	target := c.clampX(x - c.screenW/2)
	c.X = c.clampX(common.Lerp(c.X, target, c.smooth))
}

func (c *Camera) clampX(x float64) float64 {
	if c.worldW <= c.screenW {
		return 0
	}
	return common.Clamp(x, 0, c.worldW-c.screenW)
}

func (c *Camera) clampY(y float64) float64 {
	if c.worldH <= c.screenH {
		return 0
	}
	return common.Clamp(y, 0, c.worldH-c.screenH)
}
