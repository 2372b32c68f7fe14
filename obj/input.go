package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the per-frame input snapshot consumed by the gameplay
// controllers. It is polled once per update tick; edge fields are true only
// on the frame the key went down or up.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpHeld is true while the jump key is held down.
	JumpHeld bool
	// JumpReleased is true on the frame the jump key is let go.
	JumpReleased bool
	// MeltPressed is true on the frame the melt toggle key is pressed.
	MeltPressed bool
	// RestartPressed is true on the frame the restart key is pressed.
	RestartPressed bool
	// PausePressed is true on the frame the pause key is pressed.
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and gamepad into the snapshot.
func (i *Input) Update() {
	const stickDeadzone = 0.3

	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}

	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpReleased := inpututil.IsKeyJustReleased(ebiten.KeySpace)
	meltPressed := inpututil.IsKeyJustPressed(ebiten.KeyE)
	restartPressed := inpututil.IsKeyJustPressed(ebiten.KeyR)
	pausePressed := inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			if leftX < 0 {
				moveX = -1
			} else {
				moveX = 1
			}
		}

		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		jumpHeld = jumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		jumpReleased = jumpReleased || inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightBottom)
		meltPressed = meltPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		restartPressed = restartPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		pausePressed = pausePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	i.MoveX = moveX
	i.JumpPressed = jumpPressed
	i.JumpHeld = jumpHeld
	i.JumpReleased = jumpReleased
	i.MeltPressed = meltPressed
	i.RestartPressed = restartPressed
	i.PausePressed = pausePressed
}
