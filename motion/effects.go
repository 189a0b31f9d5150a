package motion

import "github.com/go-gl/mathgl/mgl64"

// EffectID names a visual feedback effect.
type EffectID uint8

const (
	EffectLanding EffectID = iota + 1
	EffectAirJump
	EffectRoofHit
)

func (id EffectID) String() string {
	switch id {
	case EffectLanding:
		return "landing"
	case EffectAirJump:
		return "air_jump"
	case EffectRoofHit:
		return "roof_hit"
	default:
		return "unknown"
	}
}

// EffectSpawner is fire-and-forget; the controller never inspects the result.
type EffectSpawner interface {
	Spawn(id EffectID, position mgl64.Vec3)
}

// NopEffects discards every effect.
type NopEffects struct{}

func (NopEffects) Spawn(EffectID, mgl64.Vec3) {}
