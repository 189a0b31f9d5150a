package effects

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/motion"
	"github.com/sirupsen/logrus"
)

type Spawned struct {
	ID       motion.EffectID
	Position mgl64.Vec3
}

// Recorder keeps every spawn request, for headless runs and tests.
type Recorder struct {
	Spawned []Spawned
	log     logrus.FieldLogger
}

// NewRecorder returns a Recorder that also logs each spawn at Debug when
// log is non-nil.
func NewRecorder(log logrus.FieldLogger) *Recorder {
	return &Recorder{log: log}
}

func (r *Recorder) Spawn(id motion.EffectID, pos mgl64.Vec3) {
	r.Spawned = append(r.Spawned, Spawned{ID: id, Position: pos})
	if r.log != nil {
		r.log.WithFields(logrus.Fields{
			"effect": id.String(),
			"x":      pos.X(),
			"y":      pos.Y(),
		}).Debug("effect spawned")
	}
}

func (r *Recorder) Count(id motion.EffectID) int {
	n := 0
	for _, s := range r.Spawned {
		if s.ID == id {
			n++
		}
	}
	return n
}
