package collision

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
)

// Space holds static level geometry in a Chipmunk space and answers the
// controller's probes with segment queries. Geometry lives in the z = 0
// plane; the z of a probe is carried through to the hit point.
type Space struct {
	space  *cp.Space
	shapes int
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	return &Space{space: space}
}

// CP returns the underlying Chipmunk space.
func (s *Space) CP() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Len reports how many static shapes have been added.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return s.shapes
}

// AddBox adds a static axis-aligned box on the given layers.
func (s *Space) AddBox(minX, minY, maxX, maxY float64, layer motion.Layer) *cp.Shape {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	shape := cp.NewBox2(s.space.StaticBody, cp.BB{L: minX, B: minY, R: maxX, T: maxY}, 0)
	return s.add(shape, layer)
}

// AddSegment adds a static line segment with the given thickness radius.
func (s *Space) AddSegment(a, b mgl64.Vec2, radius float64, layer motion.Layer) *cp.Shape {
	shape := cp.NewSegment(s.space.StaticBody, cp.Vector{X: a.X(), Y: a.Y()}, cp.Vector{X: b.X(), Y: b.Y()}, radius)
	return s.add(shape, layer)
}

func (s *Space) add(shape *cp.Shape, layer motion.Layer) *cp.Shape {
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	shape.SetFriction(0.8)
	s.space.AddShape(shape)
	s.shapes++
	return shape
}

// Raycast implements motion.CollisionWorld.
func (s *Space) Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask motion.Layer) (motion.Hit, bool) {
	if direction.Len() == 0 || maxDistance <= 0 {
		return motion.Hit{}, false
	}
	end := origin.Add(direction.Normalize().Mul(maxDistance))
	return s.Linecast(origin, end, mask)
}

// Linecast implements motion.CollisionWorld. The closest hit along the
// segment wins.
func (s *Space) Linecast(from, to mgl64.Vec3, mask motion.Layer) (motion.Hit, bool) {
	if s == nil || s.space == nil || from == to {
		return motion.Hit{}, false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	info := s.space.SegmentQueryFirst(toVector(from), toVector(to), 0, filter)
	if info.Shape == nil {
		return motion.Hit{}, false
	}
	z := from.Z() + (to.Z()-from.Z())*info.Alpha
	return motion.Hit{
		Point:  mgl64.Vec3{info.Point.X, info.Point.Y, z},
		Normal: mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
	}, true
}

func toVector(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}
