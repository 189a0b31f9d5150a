package main

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunTutorial(t *testing.T) {
	sum, err := run(simOptions{
		Level:  "tutorial",
		Actor:  "player",
		Script: "run_and_jump",
		Ticks:  240,
		DT:     1.0 / 60,
	}, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Ticks != 240 {
		t.Fatalf("expected 240 ticks, got %d", sum.Ticks)
	}
	if math.Abs(sum.SimulatedSec-4) > 1e-9 {
		t.Fatalf("expected 4 simulated seconds, got %v", sum.SimulatedSec)
	}
	if sum.Landings < 1 || sum.Jumps < 1 {
		t.Fatalf("expected the actor to land and jump, got %+v", sum)
	}
	if sum.Respawns == 0 && sum.Final.Position.X() <= 0 {
		t.Fatalf("script runs right, final x %v", sum.Final.Position.X())
	}
}

func TestRunShaftWallJumps(t *testing.T) {
	sum, err := run(simOptions{
		Level:  "shaft",
		Actor:  "player",
		Script: "wall_climb",
		Ticks:  180,
		DT:     1.0 / 60,
	}, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.WallTouches < 1 || sum.WallJumps < 1 {
		t.Fatalf("expected wall contact and wall jumps, got %+v", sum)
	}
	if sum.DeadWallJumps != 0 {
		t.Fatalf("%d of %d wall jumps had no push off the wall", sum.DeadWallJumps, sum.WallJumps)
	}
	// Each contact is pressed once, so contacts cannot outnumber jumps by
	// more than the one still held at the end.
	if sum.WallTouches > sum.Jumps+1 {
		t.Fatalf("wall contact flickered: %d touches for %d jumps", sum.WallTouches, sum.Jumps)
	}
	if sum.MaxHeight <= 2.5 {
		t.Fatalf("expected wall jumps to gain height, max %v", sum.MaxHeight)
	}
	if x := sum.Final.Position.X(); x < -1.5-1e-9 || x > 1.5+1e-9 {
		t.Fatalf("actor escaped the shaft walls: x=%v", x)
	}
}

func TestRunJitterIsDeterministic(t *testing.T) {
	opts := simOptions{
		Level:  "tutorial",
		Actor:  "player",
		Script: "run_and_jump",
		Ticks:  120,
		DT:     1.0 / 60,
		Jitter: 0.3,
		Seed:   42,
	}
	a, err := run(opts, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := run(opts, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if a.Final.Position != b.Final.Position || a.SimulatedSec != b.SimulatedSec {
		t.Fatalf("same seed should replay identically: %v vs %v", a.Final.Position, b.Final.Position)
	}
	if a.SimulatedSec == 2 {
		t.Fatalf("jitter did not vary the frame delta")
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opts simOptions
	}{
		{"zero dt", simOptions{Level: "tutorial", Actor: "player", Script: "run_and_jump", DT: 0}},
		{"jitter too large", simOptions{Level: "tutorial", Actor: "player", Script: "run_and_jump", DT: 0.01, Jitter: 1}},
		{"unknown level", simOptions{Level: "nope", Actor: "player", Script: "run_and_jump", DT: 0.01}},
		{"unknown actor", simOptions{Level: "tutorial", Actor: "nope", Script: "run_and_jump", DT: 0.01}},
		{"unknown script", simOptions{Level: "tutorial", Actor: "player", Script: "nope", DT: 0.01}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := run(tc.opts, quietLogger()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
