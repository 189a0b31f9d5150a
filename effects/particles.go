package effects

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"golang.org/x/image/colornames"
)

// particleGravity pulls spark particles down in world units per second².
const particleGravity = -30.0

// Burst describes the particles emitted for one effect.
type Burst struct {
	Color    color.Color
	Count    int
	Speed    float64
	Lifetime float64
	Size     float64
}

func DefaultBursts() map[motion.EffectID]Burst {
	return map[motion.EffectID]Burst{
		motion.EffectLanding: {Color: colornames.Lightgray, Count: 14, Speed: 4, Lifetime: 0.35, Size: 0.12},
		motion.EffectAirJump: {Color: colornames.Lightskyblue, Count: 10, Speed: 3, Lifetime: 0.3, Size: 0.1},
		motion.EffectRoofHit: {Color: colornames.Orange, Count: 8, Speed: 2.5, Lifetime: 0.25, Size: 0.1},
	}
}

// BurstsFromSpec overlays the configured effects on DefaultBursts. Entries
// with no particle count keep the default.
func BurstsFromSpec(spec prefabs.EffectsSpec) map[motion.EffectID]Burst {
	bursts := DefaultBursts()
	for id, es := range map[motion.EffectID]prefabs.EffectSpec{
		motion.EffectLanding: spec.Landing,
		motion.EffectAirJump: spec.AirJump,
		motion.EffectRoofHit: spec.RoofHit,
	} {
		if es.Count <= 0 {
			continue
		}
		b := Burst{Color: bursts[id].Color, Count: es.Count, Speed: es.Speed, Lifetime: es.Lifetime, Size: es.Size}
		if es.Color != nil && es.Color.Color != nil {
			b.Color = es.Color.Color
		}
		bursts[id] = b
	}
	return bursts
}

type particle struct {
	pos     mgl64.Vec2
	vel     mgl64.Vec2
	age     float64
	life    float64
	size    float64
	color   color.Color
	falling bool
}

// Particles is a fire-and-forget motion.EffectSpawner that draws short
// bursts with ebiten.
type Particles struct {
	bursts map[motion.EffectID]Burst
	live   []particle
	rng    *rand.Rand
}

func NewParticles(bursts map[motion.EffectID]Burst, seed uint64) *Particles {
	if bursts == nil {
		bursts = DefaultBursts()
	}
	return &Particles{
		bursts: bursts,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (p *Particles) SetBursts(bursts map[motion.EffectID]Burst) {
	p.bursts = bursts
}

func (p *Particles) Len() int {
	return len(p.live)
}

func (p *Particles) Spawn(id motion.EffectID, pos mgl64.Vec3) {
	b, ok := p.bursts[id]
	if !ok || b.Count <= 0 || b.Lifetime <= 0 {
		return
	}

	origin := mgl64.Vec2{pos.X(), pos.Y()}
	for i := 0; i < b.Count; i++ {
		angle := p.spread(id)
		speed := b.Speed * (0.5 + 0.5*p.rng.Float64())
		p.live = append(p.live, particle{
			pos:     origin,
			vel:     mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(speed),
			life:    b.Lifetime * (0.75 + 0.25*p.rng.Float64()),
			size:    b.Size,
			color:   b.Color,
			falling: id != motion.EffectAirJump,
		})
	}
}

// spread picks an emission angle: landing dust fans out above the floor,
// everything else scatters below the spawn point.
func (p *Particles) spread(id motion.EffectID) float64 {
	r := p.rng.Float64()
	if id == motion.EffectLanding {
		return r * math.Pi
	}
	return math.Pi + r*math.Pi
}

// Update ages particles by dt seconds and drops expired ones.
func (p *Particles) Update(dt float64) {
	n := 0
	for _, pt := range p.live {
		pt.age += dt
		if pt.age >= pt.life {
			continue
		}
		if pt.falling {
			pt.vel[1] += particleGravity * dt
		}
		pt.pos = pt.pos.Add(pt.vel.Mul(dt))
		p.live[n] = pt
		n++
	}
	clear(p.live[n:])
	p.live = p.live[:n]
}

// Draw renders the live particles. scale converts world units to pixels.
func (p *Particles) Draw(screen *ebiten.Image, toScreen collision.ToScreen, scale float64) {
	for _, pt := range p.live {
		x, y := toScreen(pt.pos.X(), pt.pos.Y())
		size := float32(pt.size * scale * (1 - pt.age/pt.life))
		if size < 1 {
			size = 1
		}
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, fade(pt.color, 1-pt.age/pt.life), false)
	}
}

func fade(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * mgl64.Clamp(alpha, 0, 1))
	return n
}
