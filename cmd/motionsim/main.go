package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/effects"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
	"github.com/sirupsen/logrus"
)

type simOptions struct {
	Level  string
	Actor  string
	Script string
	Ticks  int
	DT     float64
	Jitter float64
	Seed   uint64
	Every  int
}

type summary struct {
	Ticks       int
	Jumps       int
	Landings    int
	AirJumps    int
	RoofHits    int
	WallTouches int
	WallJumps   int
	// DeadWallJumps counts jumps taken from an airborne wall contact that
	// got no push away from the wall.
	DeadWallJumps int
	Respawns      int
	MaxHeight     float64
	Final         motion.State
	SimulatedSec  float64
}

func main() {
	opts := simOptions{}
	flag.StringVar(&opts.Level, "level", "tutorial", "level name in levels/ (basename, .json optional)")
	flag.StringVar(&opts.Actor, "actor", "player", "actor prefab (basename, .yaml optional)")
	flag.StringVar(&opts.Script, "script", "run_and_jump", "input script in prefabs/scripts/")
	flag.IntVar(&opts.Ticks, "ticks", 600, "number of ticks to simulate")
	flag.Float64Var(&opts.DT, "dt", 1.0/60, "frame delta in seconds")
	flag.Float64Var(&opts.Jitter, "jitter", 0, "random frame delta variation as a fraction of -dt (0..1)")
	flag.Uint64Var(&opts.Seed, "seed", 1, "seed for -jitter")
	flag.IntVar(&opts.Every, "every", 30, "log the actor state every N ticks (0 disables)")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefabs before the embedded copies")
	debug := flag.Bool("debug", false, "log controller events")
	trace := flag.Bool("trace", false, "log vertical movement every tick")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case *trace:
		log.SetLevel(logrus.TraceLevel)
	case *debug:
		log.SetLevel(logrus.DebugLevel)
	}

	prefabs.Dir = *prefabDir

	sum, err := run(opts, log)
	if err != nil {
		log.WithError(err).Fatal("simulation failed")
	}

	log.WithFields(logrus.Fields{
		"ticks":        sum.Ticks,
		"seconds":      fmt.Sprintf("%.3f", sum.SimulatedSec),
		"jumps":        sum.Jumps,
		"landings":     sum.Landings,
		"air_jumps":    sum.AirJumps,
		"roof_hits":    sum.RoofHits,
		"wall_touches": sum.WallTouches,
		"wall_jumps":   sum.WallJumps,
		"respawns":     sum.Respawns,
		"max_height":   fmt.Sprintf("%.3f", sum.MaxHeight),
		"final_x":      fmt.Sprintf("%.3f", sum.Final.Position.X()),
		"final_y":      fmt.Sprintf("%.3f", sum.Final.Position.Y()),
		"contact":      sum.Final.Contact.State,
	}).Info("simulation finished")
}

func run(opts simOptions, log logrus.FieldLogger) (summary, error) {
	if opts.DT <= 0 {
		return summary{}, fmt.Errorf("motionsim: dt must be positive, got %v", opts.DT)
	}
	if opts.Jitter < 0 || opts.Jitter >= 1 {
		return summary{}, fmt.Errorf("motionsim: jitter must be in [0, 1), got %v", opts.Jitter)
	}

	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return summary{}, err
	}
	space, err := lvl.BuildSpace()
	if err != nil {
		return summary{}, err
	}
	spec, err := prefabs.LoadActorSpec(opts.Actor)
	if err != nil {
		return summary{}, err
	}
	mask, err := lvl.Mask(spec.GroundLayers...)
	if err != nil {
		return summary{}, err
	}
	script, err := input.LoadScript(opts.Script, log)
	if err != nil {
		return summary{}, err
	}

	spawn := lvl.SpawnPosition()
	ctrl, err := motion.NewController(spec.Config(mask), spawn, space, spec.GravityModel())
	if err != nil {
		return summary{}, err
	}
	ctrl.SetLogger(log.WithField("actor", spec.Name))
	rec := effects.NewRecorder(log.WithField("actor", spec.Name))
	ctrl.SetEffects(rec)

	actor := system.NewActor(ctrl, script, spawn, lvl.KillY, log)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	sum := summary{MaxHeight: math.Inf(-1)}
	prev := actor.Last()
	for tick := 0; tick < opts.Ticks; tick++ {
		dt := opts.DT
		if opts.Jitter > 0 {
			dt *= 1 + opts.Jitter*(2*rng.Float64()-1)
		}
		actor.Update(dt)
		st := actor.Last()

		sum.Ticks++
		sum.SimulatedSec += dt
		sum.MaxHeight = math.Max(sum.MaxHeight, st.Position.Y())
		if st.Jumped {
			sum.Jumps++
			if prev.Contact.TouchingWall && !prev.Contact.Grounded() {
				sum.WallJumps++
				if st.WallPower == 0 {
					sum.DeadWallJumps++
				}
			}
		}
		if st.Contact.TouchingWall && !prev.Contact.TouchingWall {
			sum.WallTouches++
		}
		prev = st

		if opts.Every > 0 && tick%opts.Every == 0 {
			log.WithFields(logrus.Fields{
				"tick": tick,
				"pos":  formatVec(st.Position),
				"vel":  formatVec(st.Velocity),
				"ctc":  st.Contact.State,
				"wall": st.Contact.TouchingWall,
			}).Info("state")
		}
	}

	sum.Landings = rec.Count(motion.EffectLanding)
	sum.AirJumps = rec.Count(motion.EffectAirJump)
	sum.RoofHits = rec.Count(motion.EffectRoofHit)
	sum.Respawns = actor.Respawns()
	sum.Final = actor.Last()
	return sum, nil
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X(), v.Y())
}
