package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/pixelplatformer/input"
)

var keyNames = map[ebiten.Key][]string{
	ebiten.KeyArrowLeft:  {"ArrowLeft"},
	ebiten.KeyArrowRight: {"ArrowRight"},
	ebiten.KeyArrowUp:    {"ArrowUp"},
	ebiten.KeyA:          {"a"},
	ebiten.KeyD:          {"d"},
	ebiten.KeyW:          {"w"},
	ebiten.KeySpace:      {" "},
}

// controlEvents holds the control keys that went down this frame.
type controlEvents struct {
	Escape  bool
	Restart bool
}

// pollInput copies the ebiten keyboard and first gamepad into ks and returns
// the one-shot control events for this frame.
func pollInput(ks *input.KeyState) controlEvents {
	const stickDeadzone = 0.2

	for key, names := range keyNames {
		pressed := ebiten.IsKeyPressed(key)
		for _, name := range names {
			ks.Set(name, pressed)
		}
	}

	ev := controlEvents{
		Escape:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		left := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		right := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		if math.Abs(leftX) > stickDeadzone {
			left = left || leftX < 0
			right = right || leftX > 0
		}
		// the gamepad writes to its own names so it cannot release a held key
		ks.Set("PadLeft", left)
		ks.Set("PadRight", right)
		ks.Set("PadJump", ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom))

		ev.Escape = ev.Escape || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		ev.Restart = ev.Restart || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}
	return ev
}
