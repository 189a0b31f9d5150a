package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera maps y-up world units to y-down screen pixels, centred on a
// followed point.
type Camera struct {
	Pos mgl64.Vec2

	screenW int
	screenH int
	ppu     float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64

	lo, hi    mgl64.Vec2
	hasBounds bool
}

// NewCamera creates a camera for a logical screen size with ppu pixels per
// world unit.
func NewCamera(screenW, screenH int, ppu float64) *Camera {
	return &Camera{screenW: screenW, screenH: screenH, ppu: ppu, smooth: 0.15}
}

func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetBounds constrains the view to the world rectangle lo..hi.
func (c *Camera) SetBounds(lo, hi mgl64.Vec2) {
	c.lo, c.hi = lo, hi
	c.hasBounds = true
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = mgl64.Clamp(f, 0, 1)
}

// Scale returns pixels per world unit.
func (c *Camera) Scale() float64 {
	return c.ppu
}

// Follow eases the camera toward target. Call once per Update.
func (c *Camera) Follow(target mgl64.Vec3) {
	goal := mgl64.Vec2{target.X(), target.Y()}
	if c.smooth <= 0 {
		c.Pos = goal
	} else {
		c.Pos = c.Pos.Add(goal.Sub(c.Pos).Mul(c.smooth))
	}
	c.settle()
}

// SnapTo centres the camera on target without smoothing, e.g. after a
// respawn.
func (c *Camera) SnapTo(target mgl64.Vec3) {
	c.Pos = mgl64.Vec2{target.X(), target.Y()}
	c.settle()
}

// settle snaps to the pixel grid and clamps to the world bounds.
func (c *Camera) settle() {
	if c.ppu != 0 {
		c.Pos[0] = math.Round(c.Pos[0]*c.ppu) / c.ppu
		c.Pos[1] = math.Round(c.Pos[1]*c.ppu) / c.ppu
	}
	if !c.hasBounds || c.ppu == 0 {
		return
	}
	half := mgl64.Vec2{float64(c.screenW) / c.ppu / 2, float64(c.screenH) / c.ppu / 2}
	for axis := 0; axis < 2; axis++ {
		lo := c.lo[axis] + half[axis]
		hi := c.hi[axis] - half[axis]
		if hi < lo {
			c.Pos[axis] = (c.lo[axis] + c.hi[axis]) / 2
			continue
		}
		c.Pos[axis] = mgl64.Clamp(c.Pos[axis], lo, hi)
	}
}

// ToScreen converts a world point to screen pixels.
func (c *Camera) ToScreen(x, y float64) (float32, float32) {
	sx := (x-c.Pos.X())*c.ppu + float64(c.screenW)/2
	sy := float64(c.screenH)/2 - (y-c.Pos.Y())*c.ppu
	return float32(sx), float32(sy)
}
