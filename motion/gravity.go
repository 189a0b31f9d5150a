package motion

// GravityModel accumulates vertical acceleration and derives the tick's
// vertical movement. Implementations must not keep per-actor state; the
// accumulator is owned by the caller and passed in and out by value.
type GravityModel interface {
	Apply(accel, mass, downMultiplier float64, descending bool, dt float64) (newAccel, vy float64)
}

// Gravity is a constant downward (negative) acceleration shared by a set
// of actors.
type Gravity float64

// Apply implements GravityModel.
func (g Gravity) Apply(accel, mass, downMultiplier float64, descending bool, dt float64) (float64, float64) {
	return ApplyGravity(accel, mass, float64(g), downMultiplier, descending, dt)
}

// ApplyGravity adds mass*gravity*dt to accel and returns the new
// accumulator together with the vertical movement for this tick. The down
// multiplier is only applied while the actor was already descending, so a
// jump rises normally and falls faster.
func ApplyGravity(accel, mass, gravity, downMultiplier float64, descending bool, dt float64) (newAccel, vy float64) {
	newAccel = accel + mass*gravity*dt
	scale := 1.0
	if descending {
		scale = downMultiplier
	}
	return newAccel, newAccel * scale * dt
}
