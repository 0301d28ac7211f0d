// Package input turns keyboard and gamepad state into controller actions.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/penguin/controller"
)

// Source is polled once at the start of every tick by the game loop.
type Source interface {
	controller.Input
	Poll()
	PausePressed() bool
}

// Frame is the action state of one tick.
type Frame struct {
	Held    map[controller.Action]bool
	Pressed map[controller.Action]bool
	Pause   bool
}

func (f Frame) IsHeld(a controller.Action) bool         { return f.Held[a] }
func (f Frame) WasJustPressed(a controller.Action) bool { return f.Pressed[a] }

// Device holds the frame polled at the start of the current tick. It
// satisfies controller.Input.
type Device struct {
	frame Frame
	// stick deadzone for the left analog stick
	deadzone float64
}

func NewDevice() *Device {
	return &Device{deadzone: 0.3}
}

func (d *Device) IsHeld(a controller.Action) bool         { return d.frame.IsHeld(a) }
func (d *Device) WasJustPressed(a controller.Action) bool { return d.frame.WasJustPressed(a) }

// PausePressed reports whether pause was pressed this tick.
func (d *Device) PausePressed() bool { return d.frame.Pause }

// Frame returns the current frame.
func (d *Device) Frame() Frame { return d.frame }

// Poll reads ebiten's input state. Call it once per Update.
func (d *Device) Poll() {
	f := Frame{
		Held:    map[controller.Action]bool{},
		Pressed: map[controller.Action]bool{},
	}

	f.Held[controller.ActionLeft] = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	f.Held[controller.ActionRight] = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	f.Held[controller.ActionJump] = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	f.Pressed[controller.ActionJump] = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	f.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if x < -d.deadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			f.Held[controller.ActionLeft] = true
		}
		if x > d.deadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			f.Held[controller.ActionRight] = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			f.Held[controller.ActionJump] = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			f.Pressed[controller.ActionJump] = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
			f.Pause = true
		}
	}

	// pressing both directions cancels out, like a centred stick
	if f.Held[controller.ActionLeft] && f.Held[controller.ActionRight] {
		f.Held[controller.ActionLeft] = false
		f.Held[controller.ActionRight] = false
	}

	d.frame = f
}
