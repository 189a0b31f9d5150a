package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/motion"
	"github.com/sirupsen/logrus"
)

// Observer receives the controller state after every tick.
type Observer interface {
	Observe(motion.State)
}

// Actor polls input, ticks one controller and respawns it after it falls
// below KillY.
type Actor struct {
	Controller *motion.Controller
	Input      motion.InputSource
	Spawn      mgl64.Vec3
	KillY      float64
	// OnRespawn runs after a respawn, e.g. to snap the camera.
	OnRespawn func(spawn mgl64.Vec3)

	log      logrus.FieldLogger
	last     motion.State
	respawns int
}

func NewActor(ctrl *motion.Controller, in motion.InputSource, spawn mgl64.Vec3, killY float64, log logrus.FieldLogger) *Actor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Actor{
		Controller: ctrl,
		Input:      in,
		Spawn:      spawn,
		KillY:      killY,
		log:        log,
		last:       ctrl.State(),
	}
}

func (a *Actor) Update(dt float64) {
	var in motion.Input
	if a.Input != nil {
		in = a.Input.Poll()
	}

	a.last = a.Controller.Tick(dt, in)
	if a.last.Position.Y() < a.KillY {
		a.respawns++
		a.log.WithFields(logrus.Fields{
			"y":        a.last.Position.Y(),
			"kill_y":   a.KillY,
			"respawns": a.respawns,
		}).Info("actor fell out of the level, respawning")
		a.Controller.Reset(a.Spawn)
		a.last = a.Controller.State()
		if a.OnRespawn != nil {
			a.OnRespawn(a.Spawn)
		}
	}

	if obs, ok := a.Input.(Observer); ok {
		obs.Observe(a.last)
	}
}

// Last returns the state produced by the most recent Update.
func (a *Actor) Last() motion.State {
	return a.last
}

func (a *Actor) Respawns() int {
	return a.respawns
}

func (a *Actor) Position() mgl64.Vec3 {
	return a.Controller.Position()
}
