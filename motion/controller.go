package motion

import (
	"errors"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

var (
	ErrNilCollisionWorld = errors.New("motion: collision world is nil")
	ErrNilGravity        = errors.New("motion: gravity model is nil")
)

// axisDeadzone treats near-zero axis values as released so the last
// direction is held while decelerating.
const axisDeadzone = 1e-6

// State is a read-only snapshot of a controller after a tick.
type State struct {
	Position             mgl64.Vec3
	Velocity             mgl64.Vec3
	Contact              Contact
	HorizontalSpeed      float64
	MoveDirection        float64
	FacingModifier       float64
	WallDirection        float64
	WallPower            float64
	VerticalAcceleration float64
	CoyoteTimer          float64
	JumpBufferTimer      float64
	// Jumped is set on the tick a jump executed.
	Jumped bool
}

// Controller advances one actor's kinematics once per tick. It is not safe
// for concurrent use.
type Controller struct {
	cfg     Config
	world   CollisionWorld
	gravity GravityModel
	effects EffectSpawner
	log     logrus.FieldLogger

	position         mgl64.Vec3
	previousPosition mgl64.Vec3
	movement         mgl64.Vec3

	horizontalSpeed float64
	moveDirection   float64
	facingModifier  float64
	wallDirection   float64
	wallPower       float64
	verticalAccel   float64

	contact         Contact
	coyoteTimer     float64
	jumpBufferTimer float64
	jumped          bool
}

// NewController spawns a controller at spawn. The collision world and
// gravity model are required.
func NewController(cfg Config, spawn mgl64.Vec3, world CollisionWorld, gravity GravityModel) (*Controller, error) {
	if world == nil {
		return nil, ErrNilCollisionWorld
	}
	if gravity == nil {
		return nil, ErrNilGravity
	}
	c := &Controller{
		cfg:     cfg,
		world:   world,
		gravity: gravity,
		effects: NopEffects{},
		log:     discardLogger(),
	}
	c.Reset(spawn)
	return c, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetEffects replaces the effect spawner. A nil spawner disables effects.
func (c *Controller) SetEffects(effects EffectSpawner) {
	if effects == nil {
		effects = NopEffects{}
	}
	c.effects = effects
}

// SetLogger replaces the logger. A nil logger silences the controller.
func (c *Controller) SetLogger(log logrus.FieldLogger) {
	if log == nil {
		log = discardLogger()
	}
	c.log = log
}

// SetConfig swaps the tuning between ticks. Runtime state is kept.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

// SetGravity swaps the gravity model between ticks. nil is ignored.
func (c *Controller) SetGravity(gravity GravityModel) {
	if gravity == nil {
		return
	}
	c.gravity = gravity
}

// Config returns the current tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// Reset puts the actor back at spawn with zeroed timers and flags.
func (c *Controller) Reset(spawn mgl64.Vec3) {
	c.position = spawn
	c.previousPosition = spawn
	c.movement = mgl64.Vec3{}
	c.horizontalSpeed = 0
	c.moveDirection = 0
	c.facingModifier = 1
	c.wallDirection = 0
	c.wallPower = 0
	c.verticalAccel = 0
	c.contact = Contact{}
	c.coyoteTimer = 0
	c.jumpBufferTimer = 0
	c.jumped = false
}

// Position returns the actor's world position.
func (c *Controller) Position() mgl64.Vec3 {
	return c.position
}

// Velocity returns the movement applied on the last tick.
func (c *Controller) Velocity() mgl64.Vec3 {
	return c.movement
}

// Grounded reports whether the actor is standing on ground.
func (c *Controller) Grounded() bool {
	return c.contact.Grounded()
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Position:             c.position,
		Velocity:             c.movement,
		Contact:              c.contact,
		HorizontalSpeed:      c.horizontalSpeed,
		MoveDirection:        c.moveDirection,
		FacingModifier:       c.facingModifier,
		WallDirection:        c.wallDirection,
		WallPower:            c.wallPower,
		VerticalAcceleration: c.verticalAccel,
		CoyoteTimer:          c.coyoteTimer,
		JumpBufferTimer:      c.jumpBufferTimer,
		Jumped:               c.jumped,
	}
}

// Tick advances the actor by dt seconds.
func (c *Controller) Tick(dt float64, in Input) State {
	c.jumped = false

	c.updateTimers(dt, in.JumpPressed)
	c.computeHorizontalVelocity(dt, in.Horizontal)
	c.resolveJump()
	c.integrate(dt)
	c.verticalCollisionCheck()
	c.horizontalCollisionCheck()

	c.previousPosition = c.position
	return c.State()
}

func (c *Controller) updateTimers(dt float64, jumpPressed bool) {
	if c.contact.Grounded() {
		c.coyoteTimer = c.cfg.CoyoteTime
	} else {
		c.coyoteTimer -= dt
	}

	if jumpPressed {
		c.jumpBufferTimer = c.cfg.JumpBufferTime
	} else {
		c.jumpBufferTimer -= dt
	}
}

func (c *Controller) computeHorizontalVelocity(dt, axis float64) {
	drag := c.cfg.LinearDrag
	control := 1.0
	if !c.contact.Grounded() {
		drag *= c.cfg.AirDrag
		control = c.cfg.AirControl
	}

	c.horizontalSpeed = decay(c.horizontalSpeed, drag*dt)
	if c.wallPower != 0 {
		sign := math.Copysign(1, c.wallPower)
		c.wallPower = sign * decay(math.Abs(c.wallPower), drag*dt)
	}

	axis = mgl64.Clamp(axis, -1, 1)
	if math.Abs(axis) > axisDeadzone {
		c.moveDirection = math.Copysign(1, axis)
	}

	c.horizontalSpeed += c.cfg.MoveSpeed * math.Abs(axis) * control * dt
	c.horizontalSpeed = math.Min(c.horizontalSpeed, c.cfg.MaxSpeed)

	c.movement[0] = c.horizontalSpeed*c.moveDirection*c.facingModifier + c.wallPower
}

// decay reduces v by amount without crossing zero.
func decay(v, amount float64) float64 {
	if v <= 0 {
		return v
	}
	v -= amount
	if v < 0 {
		return 0
	}
	return v
}

func (c *Controller) resolveJump() {
	if c.jumpBufferTimer <= 0 || c.coyoteTimer <= 0 {
		return
	}

	if !c.contact.Grounded() {
		c.effects.Spawn(EffectAirJump, c.position.Add(down.Mul(c.cfg.Body.EffectOffset)))
		if c.contact.TouchingWall {
			c.facingModifier = 1
			c.wallPower = c.wallDirection * c.cfg.WallJumpPower
			c.log.WithField("wall_power", c.wallPower).Debug("wall jump")
		}
	}

	c.position[1] += c.cfg.Body.JumpNudge
	c.contact = c.contact.Apply(EventJumped)

	c.jumpBufferTimer = 0
	c.coyoteTimer = 0

	c.movement[1] = 0
	c.verticalAccel = c.cfg.JumpPower * c.cfg.Mass
	c.jumped = true
	c.log.WithField("accel", c.verticalAccel).Debug("jump")
}

func (c *Controller) integrate(dt float64) {
	if !c.contact.Grounded() {
		if c.movement.Y() > c.cfg.MaxFallSpeed {
			descending := c.movement.Y() < 0
			accel, vy := c.gravity.Apply(c.verticalAccel, c.cfg.Mass, c.cfg.DownMultiplier, descending, dt)
			c.verticalAccel = accel
			c.movement[1] = math.Max(vy, c.cfg.MaxFallSpeed)
		} else {
			c.movement[1] = c.cfg.MaxFallSpeed
		}
	}

	c.log.WithField("y", c.movement.Y()).Trace("vertical movement")
	c.position = c.position.Add(c.movement.Mul(dt))
}

// verticalCollisionCheck sweeps from the previous position so a fast fall
// cannot tunnel through thin ground. Roof is checked before ground.
func (c *Controller) verticalCollisionCheck() {
	body := c.cfg.Body
	reach := body.HalfHeight + body.TunnelMargin

	if c.contact.RoofArmed {
		if hit, ok := c.world.Linecast(c.previousPosition, c.position.Add(up.Mul(reach)), c.cfg.GroundMask); ok {
			c.position = hit.Point.Add(hit.Normal.Mul(body.HalfHeight))
			c.verticalAccel = 0
			c.movement[1] = 0
			c.contact = c.contact.Apply(EventHitRoof)
			c.effects.Spawn(EffectRoofHit, c.position.Add(up.Mul(body.EffectOffset)))
			c.log.WithField("position", c.position).Debug("hit roof")
		}
	}

	if !c.contact.Grounded() {
		if hit, ok := c.world.Linecast(c.previousPosition, c.position.Add(down.Mul(reach)), c.cfg.GroundMask); ok {
			c.position = hit.Point.Add(hit.Normal.Mul(body.HalfHeight))
			c.verticalAccel = 0
			c.movement[1] = 0
			c.contact = c.contact.Apply(EventLanded)
			c.effects.Spawn(EffectLanding, c.position.Add(down.Mul(body.EffectOffset)))
			c.log.WithField("position", c.position).Debug("landed")
		}
	}

	if c.contact.Grounded() {
		if _, ok := c.world.Raycast(c.position, down, body.LedgeProbe, c.cfg.GroundMask); !ok {
			c.contact = c.contact.Apply(EventLeftLedge)
			c.log.Debug("left ledge")
		}
	}
}

// wallProbeOffsets returns the vertical probe offsets, top to bottom. The
// first probe that hits decides the contact.
func wallProbeOffsets(spread float64) [3]float64 {
	return [3]float64{spread, 0, -spread}
}

func (c *Controller) horizontalCollisionCheck() {
	body := c.cfg.Body

	// An actor that has never moved probes to its left.
	dir := left
	if c.moveDirection > 0 {
		dir = right
	}

	var (
		hit Hit
		ok  bool
	)
	// The probes reach WallSkin past the flush distance so a resting
	// contact keeps hitting after the snap.
	reach := body.HalfWidth + body.WallSkin
	for _, offset := range wallProbeOffsets(body.ProbeSpread) {
		origin := c.position.Add(mgl64.Vec3{0, offset, 0})
		if hit, ok = c.world.Raycast(origin, dir, reach, c.cfg.GroundMask); ok {
			break
		}
	}

	if !ok {
		if c.contact.TouchingWall {
			c.contact = c.contact.Apply(EventWallReleased)
			c.facingModifier = 1
			c.log.Debug("wall released")
		}
		return
	}

	c.position[0] = hit.Point.X() - dir.X()*body.HalfWidth
	// Probes only look along the travel direction, so a hit always blocks
	// further motion into the wall; turning away clears the contact.
	c.facingModifier = 0

	if !c.contact.TouchingWall {
		c.wallDirection = -dir.X()
		c.coyoteTimer = c.cfg.CoyoteTime * 3
		c.contact = c.contact.Apply(EventWallTouched)
		c.wallPower = 0
		c.log.WithField("wall_direction", c.wallDirection).Debug("wall touched")
	}
}
