package system

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/motion"
)

func TestCameraToScreen(t *testing.T) {
	cam := NewCamera(320, 240, 16)
	cam.SetSmooth(0)
	cam.SnapTo(mgl64.Vec3{10, 5, 0})

	cases := []struct {
		name   string
		x, y   float64
		sx, sy float32
	}{
		{"centre", 10, 5, 160, 120},
		{"right", 11, 5, 176, 120},
		{"up is screen up", 10, 6, 160, 104},
		{"down is screen down", 10, 3, 160, 152},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := cam.ToScreen(tc.x, tc.y)
			if sx != tc.sx || sy != tc.sy {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tc.sx, tc.sy, sx, sy)
			}
		})
	}
}

func TestCameraFollowSmoothsAndClamps(t *testing.T) {
	cam := NewCamera(320, 240, 16)
	cam.SetSmooth(0.5)
	cam.Follow(mgl64.Vec3{8, 0, 0})
	if cam.Pos.X() != 4 {
		t.Fatalf("expected half-way follow to x=4, got %v", cam.Pos.X())
	}

	// View is 20x15 world units.
	cam.SetBounds(mgl64.Vec2{0, 0}, mgl64.Vec2{100, 10})
	cam.SnapTo(mgl64.Vec3{-50, 3, 0})
	if cam.Pos.X() != 10 {
		t.Fatalf("expected x clamped to half view 10, got %v", cam.Pos.X())
	}
	if cam.Pos.Y() != 5 {
		t.Fatalf("world shorter than view should centre at 5, got %v", cam.Pos.Y())
	}
}

type countingSystem struct {
	order *[]string
	name  string
	dt    float64
}

func (c *countingSystem) Update(dt float64) {
	c.dt = dt
	*c.order = append(*c.order, c.name)
}

func TestSchedulerOrder(t *testing.T) {
	var order []string
	a := &countingSystem{order: &order, name: "a"}
	b := &countingSystem{order: &order, name: "b"}
	s := NewScheduler(a, nil, b)
	s.Add(nil)

	if len(s.Systems()) != 2 {
		t.Fatalf("nil systems should be skipped, got %d", len(s.Systems()))
	}
	s.Update(0.5)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" || b.dt != 0.5 {
		t.Fatalf("unexpected run order %v dt=%v", order, b.dt)
	}
}

type scriptedInput struct {
	polls    int
	observed []motion.State
}

func (s *scriptedInput) Poll() motion.Input {
	s.polls++
	return motion.Input{}
}

func (s *scriptedInput) Observe(st motion.State) {
	s.observed = append(s.observed, st)
}

func TestActorRespawnsBelowKillY(t *testing.T) {
	spawn := mgl64.Vec3{2, 0, 0}
	ctrl, err := motion.NewController(motion.DefaultConfig(), spawn, collision.NewSpace(), motion.Gravity(-144))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	in := &scriptedInput{}
	actor := NewActor(ctrl, in, spawn, -5, nil)

	var respawnedAt []mgl64.Vec3
	actor.OnRespawn = func(p mgl64.Vec3) { respawnedAt = append(respawnedAt, p) }

	cam := NewCamera(320, 240, 16)
	cam.SetSmooth(0)
	s := NewScheduler(actor, &CameraFollow{Camera: cam, Target: actor})

	for i := 0; i < 120 && actor.Respawns() == 0; i++ {
		s.Update(1.0 / 60)
		if actor.Respawns() == 0 && cam.Pos.Y() != math.Round(actor.Position().Y()*16)/16 {
			t.Fatalf("camera not following: cam %v actor %v", cam.Pos, actor.Position())
		}
	}

	if actor.Respawns() != 1 || len(respawnedAt) != 1 || respawnedAt[0] != spawn {
		t.Fatalf("expected one respawn at spawn, got %d %v", actor.Respawns(), respawnedAt)
	}
	if actor.Position() != spawn || actor.Last().Position != spawn {
		t.Fatalf("controller not reset: %v", actor.Position())
	}
	if in.polls != len(in.observed) {
		t.Fatalf("every poll should be observed: %d polls, %d observed", in.polls, len(in.observed))
	}
	if last := in.observed[len(in.observed)-1]; last.Position != spawn {
		t.Fatalf("observer should see the respawned state, got %v", last.Position)
	}
}

func TestStateText(t *testing.T) {
	text := stateText(motion.State{Position: mgl64.Vec3{1, 2, 0}, Contact: motion.Contact{State: motion.Grounded}})
	if !strings.Contains(text, "Contact: grounded") || !strings.Contains(text, "Pos: 1.00, 2.00") {
		t.Fatalf("unexpected state text %q", text)
	}
}
