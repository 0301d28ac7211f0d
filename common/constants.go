package common

const (
	TileSize = 32

	ScreenWidth  = 640
	ScreenHeight = 360

	// Gravity is in pixels per second squared; y grows downward.
	Gravity = 1400.0

	TPS = 60
)
