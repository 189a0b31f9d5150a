package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/motion"
)

const defaultStickDeadzone = 0.2

// Keyboard reads A/D or the arrow keys and Space, plus the first standard
// gamepad when one is connected. It must be polled from ebiten's Update.
type Keyboard struct {
	StickDeadzone float64
}

func NewKeyboard() *Keyboard {
	return &Keyboard{StickDeadzone: defaultStickDeadzone}
}

func (k *Keyboard) Poll() motion.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		moveX = stickOverride(moveX, leftX, k.StickDeadzone)
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return motion.Input{JumpPressed: jumpPressed, Horizontal: moveX}
}

// stickOverride lets an analog stick outside the deadzone replace the
// digital axis.
func stickOverride(digital, stick, deadzone float64) float64 {
	if math.Abs(stick) > deadzone {
		return stick
	}
	return digital
}
