package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/motion"
	"golang.org/x/image/colornames"
)

// groundGizmoLength is the drawn ground ray, slightly longer than the
// ledge probe so a miss is visible.
const groundGizmoLength = 1.25

// DrawBody draws the actor box.
func DrawBody(screen *ebiten.Image, cam *Camera, pos mgl64.Vec3, body motion.Body, clr color.Color) {
	x, y := cam.ToScreen(pos.X()-body.HalfWidth, pos.Y()+body.HalfHeight)
	w := float32(2 * body.HalfWidth * cam.Scale())
	h := float32(2 * body.HalfHeight * cam.Scale())
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
}

// DrawActorDebug draws the collision shapes, the ground ray gizmo and a
// state readout for one controller.
func DrawActorDebug(screen *ebiten.Image, cam *Camera, space *collision.Space, ctrl *motion.Controller) {
	if screen == nil || cam == nil || ctrl == nil {
		return
	}
	collision.DrawDebug(space, screen, cam.ToScreen)

	st := ctrl.State()
	body := ctrl.Config().Body
	pos := st.Position

	rayColor := colornames.Red
	if st.Contact.Grounded() {
		rayColor = colornames.Lime
	}
	x0, y0 := cam.ToScreen(pos.X(), pos.Y())
	x1, y1 := cam.ToScreen(pos.X(), pos.Y()-groundGizmoLength)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, rayColor, true)

	bx, by := cam.ToScreen(pos.X()-body.HalfWidth, pos.Y()+body.HalfHeight)
	vector.StrokeRect(screen, bx, by, float32(2*body.HalfWidth*cam.Scale()), float32(2*body.HalfHeight*cam.Scale()), 1, colornames.Yellow, false)

	ebitenutil.DebugPrintAt(screen, stateText(st), 10, 10)
}

func stateText(st motion.State) string {
	return fmt.Sprintf(
		"Pos: %.2f, %.2f\nVel: %.2f, %.2f\nContact: %s\nWall: %v dir=%.0f power=%.2f\nFacing: %.0f Speed: %.2f\nCoyote: %.3f Buffer: %.3f\nAccel: %.1f",
		st.Position.X(), st.Position.Y(),
		st.Velocity.X(), st.Velocity.Y(),
		st.Contact.State,
		st.Contact.TouchingWall, st.WallDirection, st.WallPower,
		st.FacingModifier, st.HorizontalSpeed,
		st.CoyoteTimer, st.JumpBufferTimer,
		st.VerticalAcceleration,
	)
}
