package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/effects"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/motion"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit = 32
)

type GameOptions struct {
	Level   string
	Actor   string
	Script  string
	Debug   bool
	Watcher *prefabs.Watcher
}

type Game struct {
	frames int
	debug  bool

	log       logrus.FieldLogger
	level     *levels.Level
	space     *collision.Space
	mask      motion.Layer
	ctrl      *motion.Controller
	actor     *system.Actor
	particles *effects.Particles
	camera    *system.Camera
	scheduler *system.Scheduler
	watcher   *prefabs.Watcher
	actorName string
}

func NewGame(opts GameOptions, log logrus.FieldLogger) (*Game, error) {
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	space, err := lvl.BuildSpace()
	if err != nil {
		return nil, err
	}

	spec, err := prefabs.LoadActorSpec(opts.Actor)
	if err != nil {
		return nil, err
	}
	mask, err := lvl.Mask(spec.GroundLayers...)
	if err != nil {
		return nil, err
	}

	spawn := lvl.SpawnPosition()
	ctrl, err := motion.NewController(spec.Config(mask), spawn, space, spec.GravityModel())
	if err != nil {
		return nil, err
	}
	ctrl.SetLogger(log.WithField("actor", spec.Name))

	particles := effects.NewParticles(effects.BurstsFromSpec(spec.Effects), 1)
	ctrl.SetEffects(particles)

	var src motion.InputSource = input.NewKeyboard()
	if opts.Script != "" {
		script, err := input.LoadScript(opts.Script, log)
		if err != nil {
			return nil, err
		}
		src = script
	}

	camera := system.NewCamera(baseWidth, baseHeight, pixelsPerUnit)
	lo, hi := lvl.Bounds()
	camera.SetBounds(lo.Sub(mgl64.Vec2{4, 4}), hi.Add(mgl64.Vec2{4, 8}))
	camera.SnapTo(spawn)

	actor := system.NewActor(ctrl, src, spawn, lvl.KillY, log)
	actor.OnRespawn = camera.SnapTo

	log.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"actor":  spec.Name,
		"shapes": space.Len(),
	}).Info("level loaded")

	return &Game{
		debug:     opts.Debug,
		log:       log,
		level:     lvl,
		space:     space,
		mask:      mask,
		ctrl:      ctrl,
		actor:     actor,
		particles: particles,
		camera:    camera,
		scheduler: system.NewScheduler(actor, particles, &system.CameraFollow{Camera: camera, Target: ctrl}),
		watcher:   opts.Watcher,
		actorName: opts.Actor,
	}, nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset(g.actor.Spawn)
		g.camera.SnapTo(g.actor.Spawn)
	}
	g.applyReloads()

	g.scheduler.Update(1 / float64(ebiten.TPS()))
	return nil
}

// applyReloads swaps in actor specs the watcher re-read since the last
// tick. It never blocks.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-g.watcher.Reloads:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyReload(r)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("prefab watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) applyReload(r prefabs.Reload) {
	if r.Actor == nil && r.Err == nil {
		g.log.WithField("file", r.Name).Info("script changed, restart to pick it up")
		return
	}
	if prefabs.CleanName(r.Name) != prefabs.CleanName(g.actorName) {
		return
	}
	if r.Err != nil {
		g.log.WithField("file", r.Name).WithError(r.Err).Warn("actor reload rejected")
		return
	}
	mask, err := g.level.Mask(r.Actor.GroundLayers...)
	if err != nil {
		g.log.WithField("file", r.Name).WithError(err).Warn("actor reload rejected")
		return
	}
	g.mask = mask
	g.ctrl.SetConfig(r.Actor.Config(mask))
	g.ctrl.SetGravity(r.Actor.GravityModel())
	g.particles.SetBursts(effects.BurstsFromSpec(r.Actor.Effects))
	g.log.WithField("file", r.Name).Info("actor tuning reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.drawLevel(screen)
	system.DrawBody(screen, g.camera, g.ctrl.Position(), g.ctrl.Config().Body, colornames.Crimson)
	g.particles.Draw(screen, g.camera.ToScreen, g.camera.Scale())

	if g.debug {
		system.DrawActorDebug(screen, g.camera, g.space, g.ctrl)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, baseHeight-20)
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	scale := g.camera.Scale()
	for _, s := range g.level.Solids {
		x, y := g.camera.ToScreen(s.X, s.Y+s.H)
		vector.DrawFilledRect(screen, x, y, float32(s.W*scale), float32(s.H*scale), g.layerColor(s.Layer), false)
	}
	for _, seg := range g.level.Segments {
		x0, y0 := g.camera.ToScreen(seg.A.X, seg.A.Y)
		x1, y1 := g.camera.ToScreen(seg.B.X, seg.B.Y)
		width := float32(2 * seg.Radius * scale)
		if width < 2 {
			width = 2
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, width, g.layerColor(seg.Layer), true)
	}
}

// layerColor shades geometry the actor stands on differently from scenery.
func (g *Game) layerColor(name string) color.Color {
	bit, err := g.level.Layer(name)
	if err != nil || bit&g.mask == 0 {
		return colornames.Darkslategray
	}
	return colornames.Lightslategray
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
