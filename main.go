package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/prefabs"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "tutorial", "level name in levels/ (basename, .json optional)")
	actorName := flag.String("actor", "player", "actor prefab (basename, .yaml optional)")
	scriptName := flag.String("script", "", "drive the actor from prefabs/scripts/<name>.tengo instead of the keyboard")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefabs before the embedded copies")
	watch := flag.Bool("watch", true, "hot reload actor prefabs when they change on disk")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	prefabs.Dir = *prefabDir

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher(*prefabDir)
		if err != nil {
			log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer")

	game, err := NewGame(GameOptions{
		Level:   *levelName,
		Actor:   *actorName,
		Script:  *scriptName,
		Debug:   *debug,
		Watcher: watcher,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
