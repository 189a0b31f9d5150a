package input

import (
	"fmt"
	"io"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/sirupsen/logrus"
)

// Scripts define `input := func(tick, actor) { ... }` returning a map with
// optional `horizontal` (number) and `jump` (bool) keys. actor exposes the
// last observed controller state. The whole script runs on every Poll, so
// globals do not carry over between ticks.
const scriptDispatch = `
__out := input(__tick, __actor)
`

// Script produces input from a tengo script, one call per Poll.
type Script struct {
	name     string
	compiled *tengo.Compiled
	tick     int64
	actor    map[string]any
	log      logrus.FieldLogger
}

// LoadScript compiles a script from the prefab scripts directory.
func LoadScript(name string, log logrus.FieldLogger) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", name, err)
	}
	return NewScript(name, src, log)
}

func NewScript(name string, src []byte, log logrus.FieldLogger) (*Script, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__tick", 0)
	_ = script.Add("__actor", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}

	return &Script{
		name:     name,
		compiled: compiled,
		actor:    actorMap(motion.State{}),
		log:      log.WithField("script", name),
	}, nil
}

// Observe feeds the controller state back to the script for the next Poll.
// was_touching_wall carries the contact from the state before, so scripts
// can press jump on the tick contact begins.
func (s *Script) Observe(st motion.State) {
	wasTouching, _ := s.actor["touching_wall"].(bool)
	s.actor = actorMap(st)
	s.actor["was_touching_wall"] = wasTouching
}

func (s *Script) Tick() int64 {
	return s.tick
}

func (s *Script) Poll() motion.Input {
	tick := s.tick
	s.tick++

	in, err := s.run(tick)
	if err != nil {
		s.log.WithField("tick", tick).WithError(err).Warn("input script failed")
		return motion.Input{}
	}
	return in
}

func (s *Script) run(tick int64) (motion.Input, error) {
	if err := s.compiled.Set("__tick", tick); err != nil {
		return motion.Input{}, err
	}
	if err := s.compiled.Set("__actor", s.actor); err != nil {
		return motion.Input{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return motion.Input{}, err
	}

	out := s.compiled.Get("__out").Map()
	if out == nil {
		return motion.Input{}, fmt.Errorf("input: script %s: input must return a map", s.name)
	}

	var in motion.Input
	switch v := out["horizontal"].(type) {
	case float64:
		in.Horizontal = v
	case int64:
		in.Horizontal = float64(v)
	case nil:
	default:
		return motion.Input{}, fmt.Errorf("input: script %s: horizontal must be a number, got %T", s.name, v)
	}
	switch v := out["jump"].(type) {
	case bool:
		in.JumpPressed = v
	case nil:
	default:
		return motion.Input{}, fmt.Errorf("input: script %s: jump must be a bool, got %T", s.name, v)
	}
	return in, nil
}

func actorMap(st motion.State) map[string]any {
	return map[string]any{
		"x":             st.Position.X(),
		"y":             st.Position.Y(),
		"vx":            st.Velocity.X(),
		"vy":            st.Velocity.Y(),
		"grounded":      st.Contact.Grounded(),
		"touching_wall": st.Contact.TouchingWall,
		"wall_dir":      st.WallDirection,

		"was_touching_wall": false,
	}
}
