package motion

import "github.com/go-gl/mathgl/mgl64"

// Layer is a bitmask of collision categories.
type Layer uint

// AllLayers matches every category.
const AllLayers Layer = ^Layer(0)

// Hit is the contact reported by a collision probe.
type Hit struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// CollisionWorld answers synchronous probes against static geometry.
// A miss is reported with ok == false and is not an error.
type CollisionWorld interface {
	Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask Layer) (hit Hit, ok bool)
	Linecast(from, to mgl64.Vec3, mask Layer) (hit Hit, ok bool)
}

var (
	up    = mgl64.Vec3{0, 1, 0}
	down  = mgl64.Vec3{0, -1, 0}
	right = mgl64.Vec3{1, 0, 0}
	left  = mgl64.Vec3{-1, 0, 0}
)
