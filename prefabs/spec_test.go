package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/platformer/motion"
	"gopkg.in/yaml.v3"
)

func withDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedPlayerMatchesDefaults(t *testing.T) {
	withDir(t, t.TempDir())

	spec, err := LoadActorSpec("player.yaml")
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	if spec.Name != "player" {
		t.Fatalf("expected name player, got %q", spec.Name)
	}
	if got, want := spec.Config(motion.AllLayers), motion.DefaultConfig(); got != want {
		t.Fatalf("config mismatch:\n got %+v\nwant %+v", got, want)
	}
	if spec.GravityModel() != motion.Gravity(-144) {
		t.Fatalf("expected gravity -144, got %v", spec.GravityModel())
	}
	if len(spec.GroundLayers) != 1 || spec.GroundLayers[0] != "ground" {
		t.Fatalf("unexpected ground layers %v", spec.GroundLayers)
	}
	if spec.Effects.Landing.Count == 0 || spec.Effects.Landing.Color == nil {
		t.Fatalf("landing effect not configured: %+v", spec.Effects.Landing)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)

	doc := []byte("name: floaty\ngravity: -20\nmax_speed: 4\nmax_fall_speed: -3\n")
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), doc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadActorSpec("player")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "floaty" {
		t.Fatalf("expected disk copy, got %q", spec.Name)
	}
	cfg := spec.Config(motion.Layer(2))
	if cfg.GroundMask != 2 || cfg.MaxFallSpeed != -3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Body != motion.DefaultBody() {
		t.Fatalf("omitted body should fall back to defaults, got %+v", cfg.Body)
	}
	if _, ok := ModTime("player.yaml"); !ok {
		t.Fatalf("expected mod time for disk prefab")
	}
}

func TestValidate(t *testing.T) {
	base := ActorSpec{Gravity: -10, MaxSpeed: 5, MaxFallSpeed: -10}
	cases := []struct {
		name   string
		mutate func(*ActorSpec)
		want   error
	}{
		{"valid", func(*ActorSpec) {}, nil},
		{"zero max speed", func(s *ActorSpec) { s.MaxSpeed = 0 }, ErrNonPositiveMaxSpeed},
		{"negative max speed", func(s *ActorSpec) { s.MaxSpeed = -1 }, ErrNonPositiveMaxSpeed},
		{"positive fall speed", func(s *ActorSpec) { s.MaxFallSpeed = 20 }, ErrFallSpeedSign},
		{"upward gravity", func(s *ActorSpec) { s.Gravity = 9.8 }, ErrGravitySign},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := base
			tc.mutate(&spec)
			if err := spec.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadActorSpecWrapsValidation(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)

	doc := []byte("gravity: -10\nmax_speed: 5\nmax_fall_speed: 10\n")
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), doc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadActorSpec("broken.yaml"); !errors.Is(err, ErrFallSpeedSign) {
		t.Fatalf("expected ErrFallSpeedSign, got %v", err)
	}
	if _, err := LoadActorSpec("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff8000"`, want: color.NRGBA{R: 255, G: 128, B: 0, A: 255}},
		{in: `"10203040"`, want: color.NRGBA{R: 16, G: 32, B: 48, A: 64}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#zz0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.Color != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, c.Color)
			}
		})
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{cleanPrefabPath, "player", "player.yaml"},
		{cleanPrefabPath, "prefabs/player.yaml", "player.yaml"},
		{cleanPrefabPath, "", ""},
		{cleanScriptPath, "run_and_jump", "scripts/run_and_jump.tengo"},
		{cleanScriptPath, "prefabs/scripts/run_and_jump.tengo", "scripts/run_and_jump.tengo"},
		{cleanScriptPath, "scripts/wall_climb.tengo", "scripts/wall_climb.tengo"},
	}
	for _, tc := range cases {
		if got := tc.fn(tc.in); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestEmbeddedScripts(t *testing.T) {
	withDir(t, t.TempDir())
	for _, name := range []string{"run_and_jump", "wall_climb"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("script %s is empty", name)
		}
	}
}

func TestWatcherReloadsActorSpec(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	// Rename into place so the watcher never sees a half-written file.
	tmp := filepath.Join(dir, "player.tmp")
	doc := []byte("name: hot\ngravity: -50\nmax_speed: 6\nmax_fall_speed: -15\n")
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, "player.yaml")); err != nil {
		t.Fatalf("rename: %v", err)
	}

	timeout := time.After(3 * time.Second)
	for {
		select {
		case r := <-w.Reloads:
			if r.Name != "player.yaml" {
				continue
			}
			if r.Err != nil {
				t.Fatalf("reload error: %v", r.Err)
			}
			if r.Actor.Name != "hot" || r.Actor.MaxSpeed != 6 {
				t.Fatalf("unexpected reloaded spec %+v", r.Actor)
			}
			return
		case <-timeout:
			t.Fatalf("timed out waiting for reload")
		}
	}
}
