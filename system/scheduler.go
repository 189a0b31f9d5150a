package system

import "github.com/go-gl/mathgl/mgl64"

// System is advanced once per game tick with the frame delta in seconds.
type System interface {
	Update(dt float64)
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(dt float64) {
	for _, system := range s.systems {
		system.Update(dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Positioner exposes a followed actor's position.
type Positioner interface {
	Position() mgl64.Vec3
}

// CameraFollow moves a camera toward a target every tick.
type CameraFollow struct {
	Camera *Camera
	Target Positioner
}

func (f *CameraFollow) Update(float64) {
	if f.Camera == nil || f.Target == nil {
		return
	}
	f.Camera.Follow(f.Target.Position())
}
