package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/motion"
	"gopkg.in/yaml.v3"
)

var (
	ErrNonPositiveMaxSpeed = errors.New("prefabs: max_speed must be positive")
	ErrFallSpeedSign       = errors.New("prefabs: max_fall_speed must be negative")
	ErrGravitySign         = errors.New("prefabs: gravity must be negative")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ActorSpec is the tuning document for one controllable actor.
type ActorSpec struct {
	Name           string      `yaml:"name"`
	Gravity        float64     `yaml:"gravity"`
	MoveSpeed      float64     `yaml:"move_speed"`
	MaxSpeed       float64     `yaml:"max_speed"`
	LinearDrag     float64     `yaml:"linear_drag"`
	AirControl     float64     `yaml:"air_control"`
	AirDrag        float64     `yaml:"air_drag"`
	WallJumpPower  float64     `yaml:"wall_jump_power"`
	JumpPower      float64     `yaml:"jump_power"`
	Mass           float64     `yaml:"mass"`
	DownMultiplier float64     `yaml:"down_multiplier"`
	CoyoteTime     float64     `yaml:"coyote_time"`
	JumpBufferTime float64     `yaml:"jump_buffer_time"`
	MaxFallSpeed   float64     `yaml:"max_fall_speed"`
	GroundLayers   []string    `yaml:"ground_layers"`
	Body           BodySpec    `yaml:"body"`
	Effects        EffectsSpec `yaml:"effects"`
}

type BodySpec struct {
	HalfHeight   float64 `yaml:"half_height"`
	HalfWidth    float64 `yaml:"half_width"`
	ProbeSpread  float64 `yaml:"probe_spread"`
	LedgeProbe   float64 `yaml:"ledge_probe"`
	TunnelMargin float64 `yaml:"tunnel_margin"`
	WallSkin     float64 `yaml:"wall_skin"`
	JumpNudge    float64 `yaml:"jump_nudge"`
	EffectOffset float64 `yaml:"effect_offset"`
}

type EffectsSpec struct {
	Landing EffectSpec `yaml:"landing"`
	AirJump EffectSpec `yaml:"air_jump"`
	RoofHit EffectSpec `yaml:"roof_hit"`
}

type EffectSpec struct {
	Color    *YAMLColor `yaml:"color"`
	Count    int        `yaml:"count"`
	Speed    float64    `yaml:"speed"`
	Lifetime float64    `yaml:"lifetime"`
	Size     float64    `yaml:"size"`
}

// LoadActorSpec loads and validates an actor document, e.g. "player.yaml".
func LoadActorSpec(filename string) (*ActorSpec, error) {
	spec, err := LoadSpec[ActorSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate rejects sign mistakes that would silently break the controller.
func (s *ActorSpec) Validate() error {
	if s.MaxSpeed <= 0 {
		return ErrNonPositiveMaxSpeed
	}
	if s.MaxFallSpeed >= 0 {
		return ErrFallSpeedSign
	}
	if s.Gravity >= 0 {
		return ErrGravitySign
	}
	return nil
}

// Config converts the spec into controller tuning. Body fields left at
// zero fall back to motion.DefaultBody.
func (s *ActorSpec) Config(groundMask motion.Layer) motion.Config {
	return motion.Config{
		MoveSpeed:      s.MoveSpeed,
		MaxSpeed:       s.MaxSpeed,
		LinearDrag:     s.LinearDrag,
		AirControl:     s.AirControl,
		AirDrag:        s.AirDrag,
		WallJumpPower:  s.WallJumpPower,
		JumpPower:      s.JumpPower,
		Mass:           s.Mass,
		DownMultiplier: s.DownMultiplier,
		CoyoteTime:     s.CoyoteTime,
		JumpBufferTime: s.JumpBufferTime,
		MaxFallSpeed:   s.MaxFallSpeed,
		GroundMask:     groundMask,
		Body:           s.Body.body(),
	}
}

// GravityModel returns the gravity shared by actors using this spec.
func (s *ActorSpec) GravityModel() motion.Gravity {
	return motion.Gravity(s.Gravity)
}

func (b BodySpec) body() motion.Body {
	def := motion.DefaultBody()
	pick := func(v, fallback float64) float64 {
		if v == 0 {
			return fallback
		}
		return v
	}
	return motion.Body{
		HalfHeight:   pick(b.HalfHeight, def.HalfHeight),
		HalfWidth:    pick(b.HalfWidth, def.HalfWidth),
		ProbeSpread:  pick(b.ProbeSpread, def.ProbeSpread),
		LedgeProbe:   pick(b.LedgeProbe, def.LedgeProbe),
		TunnelMargin: pick(b.TunnelMargin, def.TunnelMargin),
		WallSkin:     pick(b.WallSkin, def.WallSkin),
		JumpNudge:    pick(b.JumpNudge, def.JumpNudge),
		EffectOffset: pick(b.EffectOffset, def.EffectOffset),
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
