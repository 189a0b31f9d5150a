package motion

// Body describes the actor's probe geometry. The actor is a box centred on
// its position; probes are cast from the centre.
type Body struct {
	HalfHeight   float64
	HalfWidth    float64
	ProbeSpread  float64
	LedgeProbe   float64
	TunnelMargin float64
	// WallSkin extends the side probes past HalfWidth.
	WallSkin     float64
	JumpNudge    float64
	EffectOffset float64
}

// DefaultBody matches a 1x2 actor box.
func DefaultBody() Body {
	return Body{
		HalfHeight:   1,
		HalfWidth:    0.5,
		ProbeSpread:  0.95,
		LedgeProbe:   1.1,
		TunnelMargin: 1.0 / 60,
		WallSkin:     0.01,
		JumpNudge:    0.0001,
		EffectOffset: 0.9,
	}
}

// Config holds the read-only tuning for a controller.
type Config struct {
	// Horizontal movement
	MoveSpeed     float64
	MaxSpeed      float64
	LinearDrag    float64
	AirControl    float64
	AirDrag       float64
	WallJumpPower float64

	// Vertical movement
	JumpPower      float64
	Mass           float64
	DownMultiplier float64
	CoyoteTime     float64
	JumpBufferTime float64
	// MaxFallSpeed is negative: the most negative vertical movement allowed.
	MaxFallSpeed float64

	GroundMask Layer
	Body       Body
}

// DefaultConfig returns tuning that produces a jump of roughly three units
// at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:      120,
		MaxSpeed:       8,
		LinearDrag:     60,
		AirControl:     0.5,
		AirDrag:        0.05,
		WallJumpPower:  10,
		JumpPower:      72,
		Mass:           10,
		DownMultiplier: 1.5,
		CoyoteTime:     0.1,
		JumpBufferTime: 0.15,
		MaxFallSpeed:   -20,
		GroundMask:     AllLayers,
		Body:           DefaultBody(),
	}
}
